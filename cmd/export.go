package cmd

import (
	"fmt"
	"io"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/export"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the configuration for a site generator",
	Long: `Export the validated site configuration in a format a site generator can
consume. The js format writes an ES module with the constants a theme imports
(SITE_TITLE, SITE_URL, NAV_LINKS, COPYRIGHT_TEXT, ...).

An invalid configuration is never exported.

Examples:
  sitecfg export                             # JSON to stdout
  sitecfg export --format yaml               # YAML to stdout
  sitecfg export --format js -o src/consts.js  # ES module for the theme`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "Output format (json|yaml|js)")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(exportFormat)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	op := logger.StartOperation("export")

	registry, err := config.LoadViper(viper.GetViper())
	if err != nil {
		err = fmt.Errorf("failed to load configuration: %w", err)
		op.EndWithError(ctx, err)
		return err
	}

	s := registry.Site()
	if err := writeOutput(cmd, exportOutput, func(w io.Writer) error {
		return export.Write(w, s, format)
	}); err != nil {
		op.EndWithError(ctx, err)
		return err
	}
	op.End(ctx)

	if exportOutput != "" && exportOutput != "-" {
		logger.Info(ctx, "Exported configuration",
			"format", string(format),
			"path", exportOutput,
			"sections", s.Navigation.Len(),
		)
	}

	return nil
}
