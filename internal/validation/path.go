// Package validation provides the field validators used for site
// configuration values: absolute and root-relative URLs, contact emails,
// language tags, host names, and the local file paths the CLI reads and writes.
package validation

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ValidatePath validates a local file path given on the command line.
func ValidatePath(path string) error {
	if path == "" {
		return errors.New("path cannot be empty")
	}

	if strings.ContainsRune(path, 0) {
		return errors.New("path contains a null byte")
	}

	cleanPath := filepath.Clean(path)
	for _, segment := range strings.Split(filepath.ToSlash(cleanPath), "/") {
		if segment == ".." {
			return fmt.Errorf("path traversal detected: %s", path)
		}
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">"}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateFileExtension validates file extensions against an allowlist.
func ValidateFileExtension(filename string, allowedExtensions []string) error {
	if filename == "" {
		return errors.New("filename cannot be empty")
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return errors.New("file must have an extension")
	}

	for _, allowed := range allowedExtensions {
		if ext == strings.ToLower(allowed) {
			return nil
		}
	}

	return fmt.Errorf("file extension '%s' is not allowed", ext)
}
