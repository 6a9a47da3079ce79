// Package export serializes a site configuration for the tools that consume
// it: JSON and YAML documents in the config file shape, and an ES module of
// named constants for JavaScript site generators.
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/conneroisu/sitecfg/internal/site"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for an unknown export format.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format selects the output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatJS   Format = "js"
)

// Formats lists the supported formats in help order.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatJS}
}

// ParseFormat parses a format name as given on the command line. "yml" is
// accepted for YAML and "mjs" for the ES module.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "js", "mjs", "esm":
		return FormatJS, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: json, yaml, js)", ErrUnsupportedFormat, name)
	}
}

// Extension returns the file extension conventionally used for f.
func (f Format) Extension() string {
	switch f {
	case FormatYAML:
		return ".yml"
	case FormatJS:
		return ".js"
	default:
		return ".json"
	}
}

// Write encodes s to w in format f.
func Write(w io.Writer, s site.Site, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatJS:
		return writeJS(w, s)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, string(f))
	}
}

func writeJSON(w io.Writer, s site.Site) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}

	return nil
}

func writeYAML(w io.Writer, s site.Site) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)

	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return encoder.Close()
}

// writeJS emits the constants a theme imports from consts.js. String values
// are JSON literals, which are valid JavaScript string literals.
func writeJS(w io.Writer, s site.Site) error {
	var buf bytes.Buffer

	buf.WriteString("// Code generated by sitecfg export. DO NOT EDIT.\n\n")

	constants := []struct {
		name  string
		value string
	}{
		{"SITE_TITLE", s.Metadata.Title},
		{"SITE_DESCRIPTION", s.Metadata.Description},
		{"SITE_EMAIL", s.Metadata.Email},
		{"SITE_NAME", s.Metadata.Name},
		{"SITE_URL", s.Metadata.URL},
		{"SITE_LANG", s.Metadata.Lang},
	}
	for _, c := range constants {
		if err := writeConst(&buf, c.name, c.value); err != nil {
			return err
		}
	}

	buf.WriteString("\n// Used only when a page does not name its own author.\n")
	if err := writeConst(&buf, "SITE_AUTHOR", s.Metadata.Author); err != nil {
		return err
	}

	nav, err := json.MarshalIndent(s.Navigation, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode NAV_LINKS: %w", err)
	}
	buf.WriteString("\nexport const NAV_LINKS = ")
	buf.Write(nav)
	buf.WriteString(";\n\n")

	if err := writeConst(&buf, "COPYRIGHT_LINK", s.Copyright.URL); err != nil {
		return err
	}
	if err := writeConst(&buf, "COPYRIGHT_TEXT", s.Copyright.Text); err != nil {
		return err
	}

	_, err = w.Write(buf.Bytes())
	return err
}

func writeConst(buf *bytes.Buffer, name, value string) error {
	literal, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}

	fmt.Fprintf(buf, "export const %s = %s;\n", name, literal)
	return nil
}
