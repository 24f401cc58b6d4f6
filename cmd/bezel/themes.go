package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/theme"
)

var themesOpts struct {
	json bool
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Long: `List the bundled themes and the CSS files in ~/.config/bezel/themes.

A theme sets the silhouette colour with @define-color bezel_fill and the
timer colour with @define-color bezel_text. A user theme with the same name
as a bundled one replaces it.`,
	RunE: runThemes,
}

func init() {
	rootCmd.AddCommand(themesCmd)

	themesCmd.Flags().BoolVar(&themesOpts.json, "json", false,
		"Output as JSON")
}

func runThemes(cmd *cobra.Command, args []string) error {
	dir, err := theme.ThemesDir()
	if err != nil {
		logger.Warn("failed to get themes directory", "error", err)
		dir = ""
	}

	infos, err := theme.List(dir)
	if err != nil {
		logger.Warn("failed to read themes directory", "dir", dir, "error", err)
	}

	if themesOpts.json {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	active := getConfig().Display.Theme
	tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, info := range infos {
		marker := " "
		if info.Name == active {
			marker = "*"
		}
		source := "bundled"
		if !info.IsBundled {
			source = info.Path
		}
		fmt.Fprintf(tw, "%s %s\t%s\n", marker, info.Name, source)
	}
	return tw.Flush()
}
