package cmd

import (
	"fmt"
	"io"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the site configuration",
	Long: `Inspect the site configuration and where its values come from.

Examples:
  sitecfg config show                  # Show the resolved configuration
  sitecfg config show --format json    # Show it as JSON
  sitecfg config env                   # List the environment overrides`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Display the site configuration after:

- Starting from the built-in values
- Loading the configuration file
- Applying SITECFG_* environment overrides

The configuration must be valid to be shown; use 'sitecfg validate' to see
what is wrong with an invalid one.

Examples:
  sitecfg config show                  # Show in YAML format
  sitecfg config show --format json    # Show in JSON format`,
	RunE: runConfigShow,
}

var configEnvCmd = &cobra.Command{
	Use:   "env",
	Short: "List environment overrides",
	Long: `List every environment variable that overrides a single configuration
field, with its current value when set.`,
	RunE: runConfigEnv,
}

var configFormat string

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configEnvCmd)

	addFormatFlag(configShowCmd, &configFormat, "yaml", "yaml", "json")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadViper(viper.GetViper())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format, err := export.ParseFormat(configFormat)
	if err != nil {
		return err
	}

	return export.Write(cmd.OutOrStdout(), registry.Site(), format)
}

func runConfigEnv(cmd *cobra.Command, args []string) error {
	return writeEnvOverrides(cmd.OutOrStdout(), viper.GetViper())
}

func writeEnvOverrides(w io.Writer, v *viper.Viper) error {
	for _, key := range config.OverrideKeys() {
		name := config.EnvName(key)

		value, ok := lookupEnv(name)
		if !ok {
			if _, err := fmt.Fprintf(w, "%s (unset)\n", name); err != nil {
				return err
			}
			continue
		}

		if _, err := fmt.Fprintf(w, "%s=%q\n", name, value); err != nil {
			return err
		}
	}

	if used := v.ConfigFileUsed(); used != "" {
		_, err := fmt.Fprintf(w, "Config file: %s\n", used)
		return err
	}

	return nil
}
