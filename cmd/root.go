// Package cmd provides the command-line interface for sitecfg with
// configuration management supporting multiple configuration sources.
//
// Configuration System:
//
//	The CLI supports flexible configuration through multiple sources with clear precedence:
//	1. Individual environment variables (SITECFG_SITE_TITLE, etc.) - highest priority
//	2. The config file, chosen by --config, then SITECFG_CONFIG_FILE, then .sitecfg.yml
//	3. The built-in site dataset - lowest priority
//
// Environment Variables:
//
//	SITECFG_CONFIG_FILE: Path to custom configuration file
//	SITECFG_SITE_TITLE: Override the site title
//	SITECFG_SITE_SITEURL: Override the canonical site URL
//	SITECFG_COPYRIGHT_TEXT: Override the footer copyright text
//	And the rest following the SITECFG_<SECTION>_<FIELD> pattern
package cmd

import (
	"fmt"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile   string
	logLevel  string
	logFormat string

	// logger is replaced in setup once the log flags are parsed.
	logger = logging.Discard()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sitecfg",
	Short: "Site configuration registry for a blog theme",
	Long: `sitecfg manages the site configuration of a blog theme: the site metadata
used for titles and meta tags, the grouped navigation links rendered in menus,
and the footer copyright.

Quick Start:
  sitecfg validate                Validate the resolved configuration
  sitecfg config show             Show the resolved configuration
  sitecfg export --format js      Write consts.js for the theme
  sitecfg watch                   Re-validate the config file on every save
  sitecfg doctor                  Diagnose configuration problems

Configuration is read from .sitecfg.yml when present; every scalar can be
overridden with SITECFG_<SECTION>_<FIELD> environment variables.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default is "+config.DefaultConfigFile+", can also use "+config.ConfigFileEnv+" env var)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
}

// setup builds the logger and points the global Viper instance at the config
// file before any command runs.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := logging.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	if logFormat != "text" && logFormat != "json" {
		return fmt.Errorf("unsupported log format %q (supported: text, json)", logFormat)
	}

	logger = logging.NewLogger(&logging.LoggerConfig{
		Level:  level,
		Format: logFormat,
		Output: cmd.ErrOrStderr(),
	})

	used, err := config.Configure(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	if used != "" {
		logger.Debug(cmd.Context(), "Using config file", "path", used)
	}

	return nil
}
