package site

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/conneroisu/sitecfg/internal/validation"
	"go.uber.org/multierr"
)

var sectionKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// Err combines all errors into one error naming every offending field, or
// returns nil when there are none.
func (vr *ValidationResult) Err() error {
	var err error
	for i := range vr.Errors {
		err = multierr.Append(err, &vr.Errors[i])
	}

	return err
}

// Fields returns the field paths of all errors in the order they were found.
func (vr *ValidationResult) Fields() []string {
	fields := make([]string, 0, len(vr.Errors))
	for _, e := range vr.Errors {
		fields = append(fields, e.Field)
	}

	return fields
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Errors = append(vr.Errors, ValidationError{
		Field:       field,
		Value:       value,
		Message:     message,
		Suggestions: suggestions,
	})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{
		Field:       field,
		Value:       value,
		Message:     message,
		Suggestions: suggestions,
	})
}

// Validate checks every field of s and collects all problems instead of
// stopping at the first one.
func Validate(s Site) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateMetadata(&s.Metadata, result)
	validateNavigation(&s.Navigation, result)
	validateCopyright(&s.Copyright, result)

	result.Valid = !result.HasErrors()

	return result
}

func validateMetadata(m *Metadata, result *ValidationResult) {
	required := []struct {
		field string
		value string
	}{
		{"site.title", m.Title},
		{"site.description", m.Description},
		{"site.email", m.Email},
		{"site.siteName", m.Name},
		{"site.siteUrl", m.URL},
		{"site.lang", m.Lang},
		{"site.author", m.Author},
	}

	missing := make(map[string]bool)
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			missing[r.field] = true
			result.addError(r.field, r.value, "must not be empty",
				fmt.Sprintf("Set %s in the site section of the config file", r.field))
		}
	}

	if !missing["site.email"] {
		if err := validation.ValidateEmail(m.Email); err != nil {
			result.addError("site.email", m.Email, err.Error(),
				"Use a bare address such as admin@example.com",
			)
		}
	}

	if !missing["site.siteUrl"] {
		if err := validation.ValidateURL(m.URL); err != nil {
			result.addError("site.siteUrl", m.URL, err.Error(),
				"Use an absolute URL with scheme, e.g. https://blog.example.com",
			)
		} else if strings.HasPrefix(m.URL, "http://") {
			result.addWarning("site.siteUrl", m.URL, "canonical URL does not use https",
				"Serve the site over https and update site.siteUrl",
			)
		}
	}

	if !missing["site.siteName"] {
		if err := validation.ValidateHostname(m.Name); err != nil {
			result.addError("site.siteName", m.Name, err.Error(),
				"Use the host name of the site, e.g. blog.example.com",
			)
		} else if host := validation.HostOf(m.URL); host != "" && !strings.EqualFold(host, m.Name) {
			result.addWarning("site.siteName", m.Name,
				fmt.Sprintf("site name differs from the host of site.siteUrl (%s)", host),
				"Keep site.siteName and the host of site.siteUrl in sync",
			)
		}
	}

	if !missing["site.lang"] {
		if err := validation.ValidateLanguageTag(m.Lang); err != nil {
			result.addError("site.lang", m.Lang, err.Error(),
				"Use a BCP 47 tag such as en, en-US or zh-CN",
			)
		} else if canonical := validation.CanonicalLanguageTag(m.Lang); canonical != m.Lang {
			result.addWarning("site.lang", m.Lang, "language tag is not in canonical form",
				fmt.Sprintf("Use %q", canonical),
			)
		}
	}
}

func validateNavigation(nav *Navigation, result *ValidationResult) {
	if nav.Len() == 0 {
		result.addWarning("navigation", nil, "no navigation sections defined",
			"Add at least one section so the menus are not empty",
		)
		return
	}

	for _, section := range nav.Sections() {
		base := "navigation." + section.Key

		if !sectionKeyPattern.MatchString(section.Key) {
			result.addError(fmt.Sprintf("navigation[%q]", section.Key), section.Key,
				"section key must be a non-empty identifier of letters, digits, '-' or '_'",
				"Use keys like products, social or friends",
			)
		}

		if strings.TrimSpace(section.Title) == "" {
			result.addError(base+".title", section.Title, "section title must not be empty")
		}

		if len(section.Links) == 0 {
			result.addError(base+".links", section.Links, "section must contain at least one link",
				"Add links or remove the section",
			)
			continue
		}

		seen := make(map[string]int)
		for i, link := range section.Links {
			linkPath := fmt.Sprintf("%s.links[%d]", base, i)

			if strings.TrimSpace(link.Name) == "" {
				result.addError(linkPath+".name", link.Name, "link name must not be empty")
			}

			if err := validation.ValidateLinkURL(link.URL); err != nil {
				result.addError(linkPath+".url", link.URL, err.Error(),
					"Use an absolute http(s) URL or a path starting with /",
				)
				continue
			}

			if first, dup := seen[link.URL]; dup {
				result.addWarning(linkPath+".url", link.URL,
					fmt.Sprintf("same URL as %s.links[%d]", base, first),
				)
			} else {
				seen[link.URL] = i
			}
		}
	}
}

func validateCopyright(c *Copyright, result *ValidationResult) {
	if strings.TrimSpace(c.URL) == "" {
		result.addError("copyright.url", c.URL, "must not be empty")
	} else if err := validation.ValidateURL(c.URL); err != nil {
		result.addError("copyright.url", c.URL, err.Error(),
			"Use an absolute URL with scheme, e.g. https://example.com",
		)
	}

	if strings.TrimSpace(c.Text) == "" {
		result.addError("copyright.text", c.Text, "must not be empty")
	}
}
