package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	validateFile   string
	validateStrict bool
	validateFormat string
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the site configuration",
	Long: `Validate the site configuration and report every problem at once:

- Missing metadata fields
- Malformed emails, URLs and language tags
- Empty or malformed navigation sections and links
- A site name that does not match the site URL (warning)

Without --file the resolved configuration is validated: built-in values,
the config file and SITECFG_* environment overrides. With --file only that
file is read on top of the built-in values.

Examples:
  sitecfg validate                         # Validate the resolved configuration
  sitecfg validate --file site.yml         # Validate a specific file
  sitecfg validate --strict                # Treat warnings as errors
  sitecfg validate --format json           # Output results as JSON`,
	RunE: runValidateCommand,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "", "Configuration file to validate")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Treat warnings as errors")
	addFormatFlag(validateCmd, &validateFormat, "text", "text", "json")
}

// validationIssue is one finding in the JSON report.
type validationIssue struct {
	Field       string   `json:"field"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type validationReport struct {
	Source   string            `json:"source"`
	Valid    bool              `json:"valid"`
	Errors   []validationIssue `json:"errors"`
	Warnings []validationIssue `json:"warnings"`
}

func runValidateCommand(cmd *cobra.Command, args []string) error {
	source, result, err := validateTarget()
	if err != nil {
		return err
	}

	logger.Debug(cmd.Context(), "Validated configuration",
		"source", source,
		"errors", len(result.Errors),
		"warnings", len(result.Warnings),
	)

	out := cmd.OutOrStdout()
	if validateFormat == "json" {
		if err := writeValidationJSON(out, source, result); err != nil {
			return err
		}
	} else {
		writeValidationText(out, source, result)
	}

	if result.HasErrors() {
		return fmt.Errorf("configuration validation failed with %d errors", len(result.Errors))
	}

	if validateStrict && result.HasWarnings() {
		return fmt.Errorf(
			"configuration validation failed in strict mode with %d warnings",
			len(result.Warnings),
		)
	}

	return nil
}

// validateTarget returns what was validated and the findings.
func validateTarget() (string, *site.ValidationResult, error) {
	if validateFile != "" {
		_, result, err := config.LoadFile(validateFile)
		if err != nil {
			return "", nil, err
		}
		return validateFile, result, nil
	}

	v := viper.GetViper()
	s, err := config.Resolve(v)
	if err != nil {
		return "", nil, err
	}

	source := v.ConfigFileUsed()
	if source == "" {
		source = "built-in defaults"
	}

	return source, site.Validate(s), nil
}

func writeValidationText(w io.Writer, source string, result *site.ValidationResult) {
	fmt.Fprintf(w, "🔍 Validating configuration: %s\n", source)
	fmt.Fprintln(w, "=====================================")

	if result.Valid && !result.HasWarnings() {
		fmt.Fprintln(w, "✅ Configuration is valid!")
		fmt.Fprintln(w, "No errors or warnings found.")
		return
	}

	fmt.Fprint(w, result.String())

	if result.Valid {
		fmt.Fprintln(w, "✅ Configuration is valid with warnings.")
		if !validateStrict {
			fmt.Fprintf(w, "Found %d warnings. Use --strict to treat warnings as errors.\n",
				len(result.Warnings))
		}
	}
}

func writeValidationJSON(w io.Writer, source string, result *site.ValidationResult) error {
	report := validationReport{
		Source:   source,
		Valid:    result.Valid,
		Errors:   toIssues(result.Errors),
		Warnings: toIssues(result.Warnings),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func toIssues(errs []site.ValidationError) []validationIssue {
	issues := make([]validationIssue, 0, len(errs))
	for _, e := range errs {
		issues = append(issues, validationIssue{
			Field:       e.Field,
			Message:     e.Message,
			Suggestions: e.Suggestions,
		})
	}

	return issues
}
