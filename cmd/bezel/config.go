package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/bezel/internal/config"
)

var configOpts struct {
	force bool
}

// configCmd represents the config command group.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create the configuration file",
	Long: `Inspect and create the bezel configuration file.

Use 'bezel config show' to print the effective configuration.
Use 'bezel config init' to write the defaults and a JSON schema.
Use 'bezel config path' to print where the file is read from.
Use 'bezel config schema' to print the JSON schema.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default to showing the config
		return configShowRun(cmd, args)
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long:  `Print the configuration after defaults are applied, as TOML.`,
	RunE:  configShowRun,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Long: `Write the default configuration to the config path, with a JSON schema
next to it for editor completion. An existing file is kept unless --force
is given.`,
	RunE: configInitRun,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file path",
	RunE:  configPathRun,
}

var configSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of the config file",
	RunE:  configSchemaRun,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSchemaCmd)

	configInitCmd.Flags().BoolVar(&configOpts.force, "force", false,
		"Overwrite an existing config file")

	rootCmd.AddCommand(configCmd)
}

func resolvedConfigPath() (string, error) {
	if globalOpts.configPath != "" {
		return globalOpts.configPath, nil
	}
	return config.ConfigPath()
}

func configShowRun(cmd *cobra.Command, args []string) error {
	enc := toml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndentTables(true)
	return enc.Encode(getConfig())
}

func configInitRun(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if _, err := os.Stat(path); err == nil && !configOpts.force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to check config file: %w", err)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)

	schema, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	schemaPath := filepath.Join(filepath.Dir(path), "bezel.schema.json")
	if err := os.WriteFile(schemaPath, schema, 0600); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", schemaPath)
	return nil
}

func configPathRun(cmd *cobra.Command, args []string) error {
	path, err := resolvedConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}

func configSchemaRun(cmd *cobra.Command, args []string) error {
	schema, err := config.SchemaJSON()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(schema))
	return err
}
