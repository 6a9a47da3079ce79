package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/text/language"
)

// languageTagPattern accepts the short tag forms a theme uses: "en", "zh-CN",
// "zh-Hans-CN", "es-419".
var languageTagPattern = regexp.MustCompile(
	`^[A-Za-z]{2,3}(-[A-Za-z]{4})?(-([A-Za-z]{2}|[0-9]{3}))?$`,
)

// ValidateEmail validates a bare contact address such as "admin@example.com".
// Display names ("Admin <admin@example.com>") are rejected.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email must not be empty")
	}

	addr, err := mail.ParseAddress(email)
	if err != nil {
		return fmt.Errorf("invalid email address: %w", err)
	}

	if addr.Name != "" || addr.Address != email {
		return fmt.Errorf("email %q must be a bare address", email)
	}

	domain := email[strings.LastIndex(email, "@")+1:]
	if err := ValidateHostname(domain); err != nil {
		return fmt.Errorf("invalid email domain: %w", err)
	}

	return nil
}

// ValidateLanguageTag validates a BCP 47 language tag of the form "xx" or
// "xx-XX". The tag must also be known to golang.org/x/text/language.
func ValidateLanguageTag(tag string) error {
	if !languageTagPattern.MatchString(tag) {
		return fmt.Errorf("language tag %q must look like \"en\" or \"zh-CN\"", tag)
	}

	if _, err := language.Parse(tag); err != nil {
		return fmt.Errorf("unknown language tag %q: %w", tag, err)
	}

	return nil
}

// CanonicalLanguageTag returns the canonical spelling of tag ("zh-cn" ->
// "zh-CN"). It returns tag unchanged when it does not parse.
func CanonicalLanguageTag(tag string) string {
	parsed, err := language.Parse(tag)
	if err != nil {
		return tag
	}

	return parsed.String()
}

// ValidateHostname validates a host name such as "blog.example.com".
// Internationalized names are checked through their IDNA lookup form.
func ValidateHostname(host string) error {
	if host == "" {
		return errors.New("hostname must not be empty")
	}

	if strings.ContainsAny(host, "/:@ ") {
		return fmt.Errorf("hostname %q must not contain a scheme, port or path", host)
	}

	if strings.HasPrefix(host, ".") || strings.HasSuffix(host, ".") || strings.Contains(host, "..") {
		return fmt.Errorf("hostname %q has an empty label", host)
	}

	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		return fmt.Errorf("invalid hostname %q: %w", host, err)
	}

	if len(ascii) > 253 {
		return fmt.Errorf("hostname %q is longer than 253 characters", host)
	}

	for _, label := range strings.Split(ascii, ".") {
		if len(label) > 63 {
			return fmt.Errorf("hostname label %q is longer than 63 characters", label)
		}
	}

	return nil
}
