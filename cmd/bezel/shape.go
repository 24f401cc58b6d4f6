package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/adapter/output"
	"github.com/jmylchreest/bezel/internal/shape"
)

var shapeOpts struct {
	outputOpts

	morph    float64
	family   string
	width    float64
	height   float64
	state    string
	hasNotch bool
}

var shapeCmd = &cobra.Command{
	Use:   "shape",
	Short: "Export the bezel silhouette",
	Long: `Generate the silhouette the overlay draws for a frame size and morph
progress, and write it as plain text, JSON, YAML, SVG or PNG.

Morph 0 is the notch-hugging shape and 1 the plain panel. Without --width
and --height the frame size comes from --state and the config.

Examples:
  # Silhouette of the collapsed bar as SVG
  bezel shape --format svg > bezel.svg

  # Halfway through the launch morph, rendered at 2x
  bezel shape --morph 0.5 --format png --scale 2 -o bezel.png

  # The expanded panel using the ear family
  bezel shape --state expanded --family ear --format json`,
	RunE: runShape,
}

func init() {
	rootCmd.AddCommand(shapeCmd)

	shapeOpts.register(shapeCmd)
	shapeCmd.Flags().Float64Var(&shapeOpts.morph, "morph", 1,
		"Morph progress from 0 (notch) to 1 (panel)")
	shapeCmd.Flags().StringVar(&shapeOpts.family, "family", "",
		"Shape family (bezel, ear; default: shape.family)")
	shapeCmd.Flags().Float64Var(&shapeOpts.width, "width", 0,
		"Frame width (default: from --state)")
	shapeCmd.Flags().Float64Var(&shapeOpts.height, "height", 0,
		"Frame height (default: from --state)")
	shapeCmd.Flags().StringVar(&shapeOpts.state, "state", "collapsed",
		"Frame used for the default size (notch, collapsed, expanded)")
	shapeCmd.Flags().BoolVar(&shapeOpts.hasNotch, "has-notch", false,
		"Use the sizing and shape for displays with a hardware notch")
}

func runShape(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	params := cfg.ShapeParams().Pick(shapeOpts.hasNotch)
	if shapeOpts.family != "" {
		family := shape.Family(shapeOpts.family)
		if !slices.Contains(shape.ValidFamilies(), family) {
			return fmt.Errorf("unknown family %q (valid: %v)", shapeOpts.family, shape.ValidFamilies())
		}
		params.Family = family
	}

	width, height := shapeOpts.width, shapeOpts.height
	if width <= 0 || height <= 0 {
		frames, err := framesFor(cfg, shapeOpts.hasNotch, shapeOpts.state)
		if err != nil {
			return err
		}
		if width <= 0 {
			width = frames.Width
		}
		if height <= 0 {
			height = frames.Height
		}
	}

	formatter, format, err := shapeOpts.formatter()
	if err != nil {
		return err
	}
	w, closeFn, err := shapeOpts.writer(format)
	if err != nil {
		return err
	}

	s := output.NewShape(width, height, shapeOpts.morph, params)
	logger.Debug("generated shape", "family", s.Family, "width", width, "height", height, "morph", s.Morph)

	if err := formatter.FormatShape(w, s); err != nil {
		_ = closeFn()
		return err
	}
	return closeFn()
}
