// Package main provides the CLI entrypoint for bezel.
package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/adapter/output"
	"github.com/jmylchreest/bezel/internal/config"
	"github.com/jmylchreest/bezel/internal/theme"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	logger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "bezel",
	Short: "Notch-hugging overlay for Linux desktops",
	Long: `bezel controls and inspects the bezeld overlay, a black silhouette that
sits at the top centre of the screen and grows into a small panel when the
pointer rests on it.

The shape and frames commands work without a running daemon and export the
geometry the daemon would draw. The simulate command runs the whole overlay
in the terminal.`,
	Version:      fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.Load(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/bezel/bezel.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

// getConfig returns the global config instance.
func getConfig() *config.Config {
	return cfg
}

// outputOpts are the flags shared by the commands that export documents.
type outputOpts struct {
	format   string
	template string
	output   string
	theme    string
	fill     string
	scale    float64
	padding  float64
}

func (o *outputOpts) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.format, "format", "f", "",
		"Output format (plain, json, yaml, svg, png; default plain on a terminal, json otherwise)")
	cmd.Flags().StringVar(&o.template, "template", "",
		"Custom Go template for plain output")
	cmd.Flags().StringVarP(&o.output, "output", "o", "",
		"Write to a file instead of stdout")
	cmd.Flags().StringVar(&o.theme, "theme", "",
		"Take the fill colour from a theme (default: display.theme)")
	cmd.Flags().StringVar(&o.fill, "fill", "",
		"Fill colour for svg and png, e.g. #000 or rgba(0,0,0,0.8)")
	cmd.Flags().Float64Var(&o.scale, "scale", 1,
		"Pixel scale for png")
	cmd.Flags().Float64Var(&o.padding, "padding", 4,
		"Margin around the drawing for svg and png")
}

// formatter builds the formatter selected by the flags.
func (o *outputOpts) formatter() (output.Formatter, output.FormatType, error) {
	format := output.FormatType(o.format)
	if format == "" {
		format = output.FormatJSON
		if isTerminal(os.Stdout) {
			format = output.FormatPlain
		}
	}

	opts := output.DefaultFormatterOptions()
	opts.Template = o.template
	opts.Scale = o.scale
	opts.Padding = o.padding

	themeName := o.theme
	if themeName == "" {
		themeName = getConfig().Display.Theme
	}
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Debug("no themes directory", "error", err)
	}
	th, err := theme.Resolve(themeName, dir)
	if err != nil {
		logger.Warn("theme fallback", "theme", themeName, "error", err)
	}
	opts.Fill = th.Fill

	if o.fill != "" {
		c, err := theme.ParseColor(o.fill)
		if err != nil {
			return nil, "", fmt.Errorf("invalid --fill: %w", err)
		}
		opts.Fill = c
	}

	f, err := output.NewFormatter(format, opts)
	if err != nil {
		return nil, "", err
	}
	return f, format, nil
}

// writer opens the destination selected by --output. Binary output is
// refused on a terminal.
func (o *outputOpts) writer(format output.FormatType) (io.Writer, func() error, error) {
	if o.output == "" || o.output == "-" {
		if format == output.FormatPNG && isTerminal(os.Stdout) {
			return nil, nil, fmt.Errorf("refusing to write png to a terminal; use --output or a pipe")
		}
		return os.Stdout, func() error { return nil }, nil
	}

	f, err := os.Create(o.output)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
