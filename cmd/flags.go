package cmd

import (
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"github.com/conneroisu/sitecfg/internal/validation"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// formatValue is a string flag restricted to a fixed set of names, so a bad
// --format fails while flags are parsed.
type formatValue struct {
	value   *string
	allowed []string
}

var _ pflag.Value = (*formatValue)(nil)

func (f *formatValue) String() string {
	if f.value == nil {
		return ""
	}
	return *f.value
}

func (f *formatValue) Set(val string) error {
	normalized := strings.ToLower(strings.TrimSpace(val))
	if !slices.Contains(f.allowed, normalized) {
		return fmt.Errorf("invalid format %q, must be one of: %s", val, strings.Join(f.allowed, ", "))
	}

	*f.value = normalized
	return nil
}

func (f *formatValue) Type() string {
	return "format"
}

// addFormatFlag adds --format/-f to cmd with the given default.
func addFormatFlag(cmd *cobra.Command, target *string, def string, allowed ...string) {
	*target = def
	cmd.Flags().VarP(&formatValue{value: target, allowed: allowed}, "format", "f",
		fmt.Sprintf("Output format (%s)", strings.Join(allowed, "|")))
}

// writeOutput writes through fn to path, or to the command's stdout when
// path is empty or "-".
func writeOutput(cmd *cobra.Command, path string, fn func(io.Writer) error) error {
	if path == "" || path == "-" {
		return fn(cmd.OutOrStdout())
	}

	if err := validation.ValidatePath(path); err != nil {
		return fmt.Errorf("invalid output path: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := fn(file); err != nil {
		file.Close()
		return err
	}

	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return nil
}
