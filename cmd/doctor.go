package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/conneroisu/sitecfg/internal/config"
	"github.com/conneroisu/sitecfg/internal/site"
	"github.com/conneroisu/sitecfg/internal/validation"
	"github.com/conneroisu/sitecfg/internal/version"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose configuration problems",
	Long: `Diagnose the site configuration and explain where each problem comes from.

The doctor command checks:

- Which config file is used and whether it parses
- Which fields are overridden from the environment
- Validation errors and warnings of the resolved configuration
- Navigation shape (sections, links, internal and external links)

Examples:
  sitecfg doctor                    # Full diagnosis
  sitecfg doctor --verbose          # Include details of each check
  sitecfg doctor --format json      # Output as JSON for tooling`,
	RunE: runDoctor,
}

var (
	doctorVerbose bool
	doctorFormat  string

	lookupEnv = os.LookupEnv
)

// DiagnosticResult represents the result of a diagnostic check
type DiagnosticResult struct {
	Name       string                 `json:"name" yaml:"name"`
	Category   string                 `json:"category" yaml:"category"`
	Status     string                 `json:"status" yaml:"status"` // "ok", "warning", "error", "info"
	Message    string                 `json:"message" yaml:"message"`
	Suggestion string                 `json:"suggestion,omitempty" yaml:"suggestion,omitempty"`
	Details    map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// DoctorReport represents the complete diagnostic report
type DoctorReport struct {
	Timestamp   time.Time          `json:"timestamp" yaml:"timestamp"`
	Environment map[string]string  `json:"environment" yaml:"environment"`
	Results     []DiagnosticResult `json:"results" yaml:"results"`
	Summary     ReportSummary      `json:"summary" yaml:"summary"`
}

// ReportSummary provides an overview of diagnostic results
type ReportSummary struct {
	Total    int `json:"total" yaml:"total"`
	OK       int `json:"ok" yaml:"ok"`
	Warnings int `json:"warnings" yaml:"warnings"`
	Errors   int `json:"errors" yaml:"errors"`
	Info     int `json:"info" yaml:"info"`
}

func init() {
	rootCmd.AddCommand(doctorCmd)

	doctorCmd.Flags().BoolVarP(&doctorVerbose, "verbose", "v", false, "Show verbose diagnostic information")
	addFormatFlag(doctorCmd, &doctorFormat, "text", "text", "json", "yaml")
}

func runDoctor(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	report := buildDoctorReport(ctx, viper.GetViper())

	out := cmd.OutOrStdout()
	switch doctorFormat {
	case "json":
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report)
	case "yaml":
		encoder := yaml.NewEncoder(out)
		if err := encoder.Encode(report); err != nil {
			return err
		}
		return encoder.Close()
	default:
		writeDoctorText(out, report)
		return nil
	}
}

func buildDoctorReport(ctx context.Context, v *viper.Viper) *DoctorReport {
	report := &DoctorReport{
		Timestamp:   time.Now(),
		Environment: gatherEnvironmentInfo(),
		Results:     []DiagnosticResult{},
	}

	checks := []func(context.Context, *viper.Viper) DiagnosticResult{
		checkConfigFile,
		checkEnvironmentOverrides,
		checkValidation,
		checkNavigation,
	}

	for _, check := range checks {
		result := check(ctx, v)
		report.Results = append(report.Results, result)

		logger.Debug(ctx, "Diagnostic check finished",
			"check", result.Name,
			"status", result.Status,
		)
	}

	report.Summary = calculateSummary(report.Results)

	return report
}

func gatherEnvironmentInfo() map[string]string {
	info := version.Get()

	env := map[string]string{
		"os":         runtime.GOOS,
		"arch":       runtime.GOARCH,
		"go_version": runtime.Version(),
		"sitecfg":    info.Short(),
	}

	if wd, err := os.Getwd(); err == nil {
		env["working_dir"] = wd
	}

	return env
}

func checkConfigFile(_ context.Context, v *viper.Viper) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Config File",
		Category: "Configuration",
		Status:   "ok",
	}

	path := v.ConfigFileUsed()
	if path == "" {
		result.Status = "info"
		result.Message = "No config file found, using built-in values"
		result.Suggestion = fmt.Sprintf("Create %s to override the built-in site configuration", config.DefaultConfigFile)
		return result
	}

	if _, _, err := config.LoadFile(path); err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Config file %s cannot be loaded: %v", path, err)
		result.Suggestion = "Fix the YAML syntax or remove unknown keys"
		return result
	}

	result.Message = fmt.Sprintf("Using config file %s", path)
	result.Details = map[string]interface{}{"path": path}

	return result
}

func checkEnvironmentOverrides(_ context.Context, _ *viper.Viper) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Environment Overrides",
		Category: "Configuration",
		Status:   "info",
	}

	var set []string
	for _, key := range config.OverrideKeys() {
		if _, ok := lookupEnv(config.EnvName(key)); ok {
			set = append(set, config.EnvName(key))
		}
	}

	if len(set) == 0 {
		result.Message = "No fields are overridden from the environment"
		return result
	}

	result.Message = fmt.Sprintf("%d fields are overridden from the environment: %s",
		len(set), strings.Join(set, ", "))
	result.Details = map[string]interface{}{"variables": set}

	return result
}

func checkValidation(_ context.Context, v *viper.Viper) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Validation",
		Category: "Site",
		Status:   "ok",
	}

	s, err := config.Resolve(v)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Configuration cannot be resolved: %v", err)
		return result
	}

	validated := site.Validate(s)
	result.Details = map[string]interface{}{
		"errors":   validated.Fields(),
		"warnings": len(validated.Warnings),
	}

	switch {
	case validated.HasErrors():
		result.Status = "error"
		result.Message = fmt.Sprintf("%d invalid fields: %s",
			len(validated.Errors), strings.Join(validated.Fields(), ", "))
		result.Suggestion = "Run 'sitecfg validate' for suggestions on each field"
	case validated.HasWarnings():
		result.Status = "warning"
		result.Message = fmt.Sprintf("Configuration is valid with %d warnings", len(validated.Warnings))
		result.Suggestion = "Run 'sitecfg validate' to see the warnings"
	default:
		result.Message = "Configuration is valid"
	}

	return result
}

func checkNavigation(_ context.Context, v *viper.Viper) DiagnosticResult {
	result := DiagnosticResult{
		Name:     "Navigation",
		Category: "Site",
		Status:   "ok",
	}

	s, err := config.Resolve(v)
	if err != nil {
		result.Status = "error"
		result.Message = fmt.Sprintf("Configuration cannot be resolved: %v", err)
		return result
	}

	links, internal := 0, 0
	for _, section := range s.Navigation.Sections() {
		for _, link := range section.Links {
			links++
			if validation.IsRootRelative(link.URL) {
				internal++
			}
		}
	}

	result.Details = map[string]interface{}{
		"sections": s.Navigation.Keys(),
		"links":    links,
		"internal": internal,
		"external": links - internal,
	}

	if s.Navigation.Len() == 0 {
		result.Status = "warning"
		result.Message = "Navigation has no sections"
		result.Suggestion = "Add at least one section under navigation in the config file"
		return result
	}

	result.Message = fmt.Sprintf("%d sections with %d links", s.Navigation.Len(), links)

	return result
}

func displayResult(w io.Writer, result DiagnosticResult) {
	var icon string
	switch result.Status {
	case "ok":
		icon = "✅"
	case "warning":
		icon = "⚠️"
	case "error":
		icon = "❌"
	case "info":
		icon = "ℹ️"
	default:
		icon = "•"
	}

	fmt.Fprintf(w, "%s [%s] %s: %s\n", icon, strings.ToUpper(result.Category), result.Name, result.Message)

	if result.Suggestion != "" {
		fmt.Fprintf(w, "   💡 %s\n", result.Suggestion)
	}

	if doctorVerbose && len(result.Details) > 0 {
		fmt.Fprintf(w, "   📋 Details: %+v\n", result.Details)
	}

	fmt.Fprintln(w)
}

func calculateSummary(results []DiagnosticResult) ReportSummary {
	summary := ReportSummary{
		Total: len(results),
	}

	for _, result := range results {
		switch result.Status {
		case "ok":
			summary.OK++
		case "warning":
			summary.Warnings++
		case "error":
			summary.Errors++
		case "info":
			summary.Info++
		}
	}

	return summary
}

func writeDoctorText(w io.Writer, report *DoctorReport) {
	fmt.Fprintln(w, "🔍 sitecfg Doctor")
	fmt.Fprintln(w, "=================")
	fmt.Fprintln(w)

	for _, result := range report.Results {
		displayResult(w, result)
	}

	fmt.Fprintln(w, "📊 Summary")
	fmt.Fprintln(w, "==========")
	fmt.Fprintf(w, "Total Checks: %d\n", report.Summary.Total)
	fmt.Fprintf(w, "✅ OK: %d\n", report.Summary.OK)
	fmt.Fprintf(w, "⚠️  Warnings: %d\n", report.Summary.Warnings)
	fmt.Fprintf(w, "❌ Errors: %d\n", report.Summary.Errors)
	fmt.Fprintf(w, "ℹ️  Info: %d\n", report.Summary.Info)
}
