// Package validation provides input validation utilities to prevent security vulnerabilities
// such as command injection, path traversal, and other input-based attacks.
package validation

import (
	"errors"
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Common validation errors.
var (
	ErrEmptyInput       = errors.New("input cannot be empty")
	ErrPathTraversal    = errors.New("path traversal detected")
	ErrInvalidPath      = errors.New("invalid path")
	ErrCommandInjection = errors.New("potential command injection detected")
	ErrInvalidURL       = errors.New("invalid URL")
	ErrInvalidTag       = errors.New("invalid tag")
	ErrInvalidRepo      = errors.New("invalid repository")
	ErrInvalidPattern   = errors.New("invalid pattern")
	ErrInvalidAssetName = errors.New("invalid asset name")
)

// Compiled regex patterns for validation (compiled once for performance).
var (
	// urlRegex matches HTTP/HTTPS URLs with an optional port.
	// Examples: "https://api.github.com", "http://127.0.0.1:8080/api/v3"
	urlRegex = regexp.MustCompile(`^https?://[a-zA-Z0-9][a-zA-Z0-9._-]*(:[0-9]+)?(/[a-zA-Z0-9._/-]*)?$`)

	// assetNameRegex matches release asset file names.
	// Examples: "devkit_1.2.3_windows_amd64.zip", "checksums.txt"
	assetNameRegex = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._+-]*$`)

	// shellMetaChars contains shell metacharacters that could enable injection
	shellMetaChars = []string{";", "|", "&", "$", "`", "(", ")", "{", "}", "<", ">", "\n", "\r", "\\"}

	// argumentBreakers end or split a quoted command-line argument.
	argumentBreakers = []string{`"`, "\n", "\r", "\x00"}
)

// ValidateURL validates an HTTP/HTTPS API base URL.
func ValidateURL(urlStr string) error {
	if urlStr == "" {
		return ErrEmptyInput
	}

	if len(urlStr) > 2048 {
		return fmt.Errorf("%w: URL too long", ErrInvalidURL)
	}

	if !urlRegex.MatchString(urlStr) {
		return fmt.Errorf("%w: %q must be a valid HTTP/HTTPS URL", ErrInvalidURL, urlStr)
	}

	if containsShellMeta(urlStr) {
		return fmt.Errorf("%w: %q contains shell metacharacters", ErrCommandInjection, urlStr)
	}

	return nil
}

// validatePath rejects empty paths, null bytes and traversal sequences.
func validatePath(path string) error {
	if path == "" {
		return ErrEmptyInput
	}

	// Check for null bytes
	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: path contains null byte", ErrInvalidPath)
	}

	// Check for path traversal sequences
	if containsPathTraversal(path) {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, path)
	}

	return nil
}

// ValidatePathWithBase checks that path stays inside basePath once cleaned.
func ValidatePathWithBase(path, basePath string) error {
	if err := validatePath(path); err != nil {
		return err
	}

	cleanPath := filepath.Clean(path)
	cleanBase := filepath.Clean(basePath)

	rel, err := filepath.Rel(cleanBase, cleanPath)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("%w: path %q escapes base directory %q", ErrPathTraversal, path, basePath)
	}

	return nil
}

// ValidateArgumentPath validates a path that is placed inside a quoted
// command-line argument. Windows paths with spaces and parentheses are fine;
// anything that would end the quoted argument is not.
func ValidateArgumentPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return ErrEmptyInput
	}

	if len(path) > 4096 {
		return fmt.Errorf("%w: path too long", ErrInvalidPath)
	}

	for _, char := range argumentBreakers {
		if strings.Contains(path, char) {
			return fmt.Errorf("%w: %q contains %q", ErrCommandInjection, path, char)
		}
	}

	return nil
}

// ValidateAssetName validates a release asset file name.
func ValidateAssetName(name string) error {
	if name == "" {
		return ErrEmptyInput
	}

	if len(name) > 255 {
		return fmt.Errorf("%w: name too long", ErrInvalidAssetName)
	}

	if strings.Contains(name, "..") {
		return fmt.Errorf("%w: %q contains traversal sequence", ErrPathTraversal, name)
	}

	if !assetNameRegex.MatchString(name) {
		return fmt.Errorf("%w: %q must be a plain file name", ErrInvalidAssetName, name)
	}

	return nil
}

// ValidateGlobPattern validates a base-name glob pattern.
func ValidateGlobPattern(pattern string) error {
	if strings.TrimSpace(pattern) == "" {
		return ErrEmptyInput
	}

	if _, err := path.Match(pattern, ""); err != nil {
		return fmt.Errorf("%w: %q: %w", ErrInvalidPattern, pattern, err)
	}

	return nil
}

// containsShellMeta checks if a string contains shell metacharacters.
func containsShellMeta(s string) bool {
	for _, char := range shellMetaChars {
		if strings.Contains(s, char) {
			return true
		}
	}
	return false
}

// containsPathTraversal checks for common path traversal patterns.
func containsPathTraversal(path string) bool {
	// Normalize the path to catch encoded traversal attempts
	normalized := filepath.Clean(path)

	// Check for ".." sequences in the normalized path
	segments := strings.Split(normalized, string(filepath.Separator))
	for _, seg := range segments {
		if seg == ".." {
			return true
		}
	}

	// Check for URL-encoded traversal
	if strings.Contains(path, "%2e%2e") || strings.Contains(path, "%2E%2E") {
		return true
	}

	return false
}
