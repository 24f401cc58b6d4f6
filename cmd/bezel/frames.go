package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/adapter/input"
	"github.com/jmylchreest/bezel/internal/adapter/output"
	"github.com/jmylchreest/bezel/internal/clock"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/daemon"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/tui"
)

var framesOpts struct {
	outputOpts

	centerX      float64
	topY         float64
	notchWidth   float64
	hasNotch     bool
	screenWidth  float64
	screenHeight float64

	trace string
	tail  time.Duration
}

var framesCmd = &cobra.Command{
	Use:   "frames",
	Short: "Show the notch, collapsed and expanded frames",
	Long: `Derive the three frames the overlay animates between from notch metrics.

Without notch flags the notch is synthesized at the top centre of a screen
of --screen-width x --screen-height. Coordinates are y-up: a rect's y is its
bottom edge.

With --trace, pointer events are replayed against a headless overlay on a
logical clock and every surface update is written as a timeline. The trace
is "demo" for a built-in hover, "-" for stdin, or a file. Traces are either a
JSON array of {"at_ms", "kind", "x", "y"} objects or lines of "ms x y" and
"ms kind", where kind is move, leave, expand, collapse, enable or disable.

Examples:
  # Frames for a 2560x1600 screen with a 220 wide hardware notch
  bezel frames --screen-width 2560 --screen-height 1600 --notch-width 220 --has-notch

  # Draw the frames
  bezel frames --format svg > frames.svg

  # Replay the built-in hover and print the animation
  bezel frames --trace demo`,
	RunE: runFrames,
}

func init() {
	rootCmd.AddCommand(framesCmd)

	framesOpts.register(framesCmd)
	framesCmd.Flags().Float64Var(&framesOpts.centerX, "center-x", 0,
		"Notch centre (default: screen centre)")
	framesCmd.Flags().Float64Var(&framesOpts.topY, "top-y", 0,
		"Top edge of the screen (default: screen height)")
	framesCmd.Flags().Float64Var(&framesOpts.notchWidth, "notch-width", 0,
		"Notch width (default: notch.width, or bezel.collapsed_width)")
	framesCmd.Flags().BoolVar(&framesOpts.hasNotch, "has-notch", false,
		"Treat the notch as hardware (default: notch.has_notch)")
	framesCmd.Flags().Float64Var(&framesOpts.screenWidth, "screen-width", tui.DefaultScreen.Width,
		"Screen width used to synthesize the notch")
	framesCmd.Flags().Float64Var(&framesOpts.screenHeight, "screen-height", tui.DefaultScreen.Height,
		"Screen height used to synthesize the notch")
	framesCmd.Flags().StringVar(&framesOpts.trace, "trace", "",
		"Replay a pointer trace (demo, -, or a file) and output the timeline")
	framesCmd.Flags().DurationVar(&framesOpts.tail, "tail", time.Second,
		"Logical time to keep running after the last trace event")
}

func runFrames(cmd *cobra.Command, args []string) error {
	cfg := getConfig()
	info := notchInfo(cmd, cfg)

	formatter, format, err := framesOpts.formatter()
	if err != nil {
		return err
	}
	w, closeFn, err := framesOpts.writer(format)
	if err != nil {
		return err
	}

	if framesOpts.trace == "" {
		frames := output.NewFrames(geometry.NewModel(info, cfg.Sizing()))
		if err := formatter.FormatFrames(w, frames); err != nil {
			_ = closeFn()
			return err
		}
		return closeFn()
	}

	timeline, err := replayTrace(cmd.Context(), cfg, info, framesOpts.trace, framesOpts.tail)
	if err != nil {
		_ = closeFn()
		return err
	}
	if err := formatter.FormatTimeline(w, timeline); err != nil {
		_ = closeFn()
		return fmt.Errorf("format %s: %w", format, err)
	}
	return closeFn()
}

// notchInfo builds the notch metrics from the flags, synthesizing whatever
// was not given.
func notchInfo(cmd *cobra.Command, cfg *config.Config) geometry.NotchInfo {
	screen := geometry.Rect{Width: framesOpts.screenWidth, Height: framesOpts.screenHeight}
	info := geometry.Synthesize(screen, cfg.FallbackNotchWidth())
	info.HasNotch = cfg.Notch.HasNotch

	flags := cmd.Flags()
	if flags.Changed("center-x") {
		info.CenterX = framesOpts.centerX
	}
	if flags.Changed("top-y") {
		info.TopY = framesOpts.topY
	}
	if flags.Changed("notch-width") {
		info.NotchWidth = framesOpts.notchWidth
	}
	if flags.Changed("has-notch") {
		info.HasNotch = framesOpts.hasNotch
	}
	return info
}

// framesFor returns one of the frames of a synthesized notch on the default
// screen.
func framesFor(cfg *config.Config, hasNotch bool, state string) (geometry.Rect, error) {
	info := geometry.Synthesize(tui.DefaultScreen, cfg.FallbackNotchWidth())
	info.HasNotch = hasNotch
	m := geometry.NewModel(info, cfg.Sizing())

	switch state {
	case "notch":
		return m.NotchFrame(), nil
	case "collapsed", "":
		return m.CollapsedFrame(), nil
	case "expanded":
		return m.ExpandedFrame(), nil
	default:
		return geometry.Rect{}, fmt.Errorf("unknown state %q (valid: notch, collapsed, expanded)", state)
	}
}

// replayTrace runs a headless overlay through a trace on a logical clock and
// returns the recorded surface updates.
func replayTrace(ctx context.Context, cfg *config.Config, info geometry.NotchInfo, source string, tail time.Duration) (output.Timeline, error) {
	m := clock.NewManual(time.Now())
	rec := output.NewRecorder(m.Now)

	overlay := daemon.NewOverlay(daemon.Options{
		Scheduler: m,
		Surface:   rec,
		Detector:  geometry.StaticDetector(info),
		Config:    cfg,
		Logger:    logger.With("component", "replay"),
	})
	overlay.OnStateChange(rec.StateChanged)
	overlay.Start()

	frames := overlay.Controller().Frames()
	adapter, err := input.NewAdapter(source, input.DemoFrames{
		Collapsed: frames.Collapsed,
		Expanded:  frames.Expanded,
	})
	if err != nil {
		return nil, err
	}

	events, err := adapter.Import(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read trace: %w", err)
	}
	logger.Debug("replaying trace", "source", adapter.Name(), "events", len(events))

	input.Replay(m, overlay, events, tail)
	return rec.Timeline(), nil
}
