package main

import (
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/audio"
	"github.com/jmylchreest/bezel/internal/geometry"
	"github.com/jmylchreest/bezel/internal/theme"
	"github.com/jmylchreest/bezel/internal/tui"
)

var simulateOpts struct {
	screenWidth  float64
	screenHeight float64
	theme        string
	clipboard    string
	chime        bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the overlay in the terminal",
	Long: `Run the overlay against a simulated display in the terminal. Hover intent,
the morph and the countdown behave exactly as in bezeld; the mouse stands in
for the pointer.

Key bindings:
  e / c       Expand / collapse
  l           Pointer leaves the surface
  d           Enable or disable the overlay
  n           Toggle hardware notch
  f           Next shape family
  t, space    Start or pause the countdown
  r           Reset the countdown
  z           Show hover zones
  s           Slow motion
  p           Pause the clock
  y           Copy the current silhouette as SVG
  ?           Show help
  q           Quit`,
	RunE: runSimulate,
}

func init() {
	rootCmd.AddCommand(simulateCmd)

	simulateCmd.Flags().Float64Var(&simulateOpts.screenWidth, "screen-width", tui.DefaultScreen.Width,
		"Simulated screen width")
	simulateCmd.Flags().Float64Var(&simulateOpts.screenHeight, "screen-height", tui.DefaultScreen.Height,
		"Simulated screen height")
	simulateCmd.Flags().StringVar(&simulateOpts.theme, "theme", "",
		"Theme for the silhouette colour (default: display.theme)")
	simulateCmd.Flags().StringVar(&simulateOpts.clipboard, "clipboard", "",
		"Command that receives copied text on stdin (default: auto-detect)")
	simulateCmd.Flags().BoolVar(&simulateOpts.chime, "chime", false,
		"Play timer.chime when the countdown completes")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg := getConfig()

	themeName := simulateOpts.theme
	if themeName == "" {
		themeName = cfg.Display.Theme
	}
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no themes directory", "error", err)
	}
	th, err := theme.Resolve(themeName, dir)
	if err != nil {
		logger.Warn("theme fallback", "theme", themeName, "error", err)
	}

	opts := tui.RunOptions{
		Options: tui.Options{
			Config:           cfg,
			Theme:            th,
			Screen:           geometry.Rect{Width: simulateOpts.screenWidth, Height: simulateOpts.screenHeight},
			ClipboardCommand: simulateOpts.clipboard,
		},
	}
	if simulateOpts.chime {
		player := audio.NewPlayer(logger)
		defer player.Close()
		opts.Chime = player
	}

	return tui.Run(opts)
}
