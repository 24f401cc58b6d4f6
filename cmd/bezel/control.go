package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/dbus"
)

const controlTimeout = 5 * time.Second

var controlOpts struct {
	quiet bool // Suppress output, return exit code only
	json  bool
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the overlay state",
	Long: `Ask the running bezeld for its state.

Exit code is 0 when the overlay is enabled and 1 when it is disabled, so the
command can drive a status bar indicator.`,
	RunE: statusRun,
}

var expandCmd = &cobra.Command{
	Use:   "expand",
	Short: "Expand the overlay",
	Long:  `Expand the overlay without waiting for hover. Rejected while another animation runs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestRun("expanded", func(ctx context.Context, c *dbus.Client) (bool, error) {
			return c.Expand(ctx)
		})
	},
}

var collapseCmd = &cobra.Command{
	Use:   "collapse",
	Short: "Collapse the overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return requestRun("collapsed", func(ctx context.Context, c *dbus.Client) (bool, error) {
			return c.Collapse(ctx)
		})
	},
}

var enableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Show the overlay and react to the pointer",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabledRun(true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Hide the overlay",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setEnabledRun(false)
	},
}

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Toggle the overlay between enabled and disabled",
	RunE:  toggleRun,
}

func init() {
	for _, cmd := range []*cobra.Command{statusCmd, expandCmd, collapseCmd, enableCmd, disableCmd, toggleCmd} {
		cmd.Flags().BoolVarP(&controlOpts.quiet, "quiet", "q", false,
			"Suppress output")
		rootCmd.AddCommand(cmd)
	}
	statusCmd.Flags().BoolVar(&controlOpts.json, "json", false,
		"Output as JSON")
}

// withClient connects to bezeld and runs f with a bounded context.
func withClient(f func(ctx context.Context, c *dbus.Client) error) error {
	ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
	defer cancel()

	client, err := dbus.Dial()
	if err != nil {
		return err
	}
	if err := f(ctx, client); err != nil {
		return fmt.Errorf("is bezeld running? %w", err)
	}
	return nil
}

func statusRun(cmd *cobra.Command, args []string) error {
	var st dbus.Status
	err := withClient(func(ctx context.Context, c *dbus.Client) error {
		var err error
		st, err = c.Status(ctx)
		return err
	})
	if err != nil {
		return err
	}

	if !controlOpts.quiet {
		if controlOpts.json {
			if err := json.NewEncoder(os.Stdout).Encode(st); err != nil {
				return err
			}
		} else {
			enabled := "enabled"
			if !st.Enabled {
				enabled = "disabled"
			}
			fmt.Printf("Bezel: %s, %s\n", st.State, enabled)
			fmt.Printf("  Last change: %s\n", formatChangeTime(st.ChangedAt))
		}
	}

	// Exit code: 0=enabled, 1=disabled
	if !st.Enabled {
		os.Exit(1)
	}
	return nil
}

func requestRun(target string, call func(ctx context.Context, c *dbus.Client) (bool, error)) error {
	var ok bool
	err := withClient(func(ctx context.Context, c *dbus.Client) error {
		var err error
		ok, err = call(ctx, c)
		return err
	})
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("request rejected: overlay cannot become %s now", target)
	}
	if !controlOpts.quiet {
		fmt.Printf("Bezel: %s\n", target)
	}
	return nil
}

func setEnabledRun(enabled bool) error {
	err := withClient(func(ctx context.Context, c *dbus.Client) error {
		return c.SetEnabled(ctx, enabled)
	})
	if err != nil {
		return err
	}
	printEnabled(enabled)
	return nil
}

func toggleRun(cmd *cobra.Command, args []string) error {
	var enabled bool
	err := withClient(func(ctx context.Context, c *dbus.Client) error {
		var err error
		enabled, err = c.Toggle(ctx)
		return err
	})
	if err != nil {
		return err
	}
	printEnabled(enabled)
	return nil
}

func printEnabled(enabled bool) {
	if controlOpts.quiet {
		return
	}
	if enabled {
		fmt.Println("Bezel: enabled")
	} else {
		fmt.Println("Bezel: disabled")
	}
}

// formatChangeTime formats a state change time as a human-readable relative time.
func formatChangeTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return humanize.Time(t)
}
