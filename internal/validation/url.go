package validation

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// dangerousURLChars are rejected in any URL the site publishes. They never
// appear in a well-formed link and usually mean a broken or injected value.
var dangerousURLChars = []string{
	"`", "<", ">", "\"", "'", "\\", "\n", "\r", "\t",
}

// ValidateURL validates an absolute URL such as the canonical site URL or the
// copyright link. Only http and https are accepted and a host is required.
func ValidateURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.New("URL must not be empty")
	}

	if err := checkURLCharacters(rawURL); err != nil {
		return err
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only allow http/https schemes to prevent protocol handlers
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %q (only http/https allowed)", parsed.Scheme)
	}

	if parsed.Host == "" || parsed.Hostname() == "" {
		return errors.New("URL must have a valid hostname")
	}

	if parsed.User != nil {
		return errors.New("URL must not contain credentials")
	}

	return nil
}

// ValidateLinkURL validates a navigation link target. It accepts everything
// ValidateURL accepts plus root-relative paths like "/" or "/posts/".
func ValidateLinkURL(rawURL string) error {
	if strings.TrimSpace(rawURL) == "" {
		return errors.New("URL must not be empty")
	}

	if !strings.HasPrefix(rawURL, "/") {
		return ValidateURL(rawURL)
	}

	return ValidateRootRelative(rawURL)
}

// ValidateRootRelative validates a path relative to the site root.
func ValidateRootRelative(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("relative URL %q must start with /", path)
	}

	// "//host/path" is scheme-relative and would leave the site.
	if strings.HasPrefix(path, "//") {
		return fmt.Errorf("relative URL %q is scheme-relative", path)
	}

	if err := checkURLCharacters(path); err != nil {
		return err
	}

	if strings.Contains(path, " ") {
		return errors.New("URL contains spaces")
	}

	parsed, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsed.Scheme != "" || parsed.Host != "" {
		return fmt.Errorf("relative URL %q must not carry a scheme or host", path)
	}

	for _, segment := range strings.Split(parsed.Path, "/") {
		if segment == ".." {
			return fmt.Errorf("relative URL %q contains path traversal", path)
		}
	}

	return nil
}

// IsRootRelative reports whether rawURL is a path relative to the site root.
func IsRootRelative(rawURL string) bool {
	return strings.HasPrefix(rawURL, "/") && !strings.HasPrefix(rawURL, "//")
}

// HostOf returns the lower-cased host name of an absolute URL, or "" when
// rawURL does not parse or has no host.
func HostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}

	return strings.ToLower(parsed.Hostname())
}

func checkURLCharacters(rawURL string) error {
	for _, char := range dangerousURLChars {
		if strings.Contains(rawURL, char) {
			return fmt.Errorf("URL contains dangerous character: %q", char)
		}
	}

	if strings.Contains(rawURL, " ") {
		return errors.New("URL contains spaces")
	}

	return nil
}
