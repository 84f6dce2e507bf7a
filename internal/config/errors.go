package config

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorization.
const (
	ErrCodeConfigNotFound   = "CONFIG_NOT_FOUND"
	ErrCodeConfigParse      = "CONFIG_PARSE"
	ErrCodeConfigInvalid    = "CONFIG_INVALID"
	ErrCodeValidationFailed = "VALIDATION_FAILED"
	ErrCodeEnvInvalid       = "ENV_INVALID"
)

// UserError represents a user-friendly error with actionable suggestions.
type UserError struct {
	Code       string // Error code for categorization (e.g., "CONFIG_NOT_FOUND")
	Message    string // User-friendly error message
	Context    string // File path, variable or flag the error refers to
	Suggestion string // Actionable suggestion to fix the error
	Underlying error  // Wrapped error for error chain
}

// Error returns the formatted error message.
func (e *UserError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Context != "" {
		fmt.Fprintf(&b, " (at %s)", e.Context)
	}
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	return b.String()
}

// Unwrap returns the underlying error for error chain support.
func (e *UserError) Unwrap() error {
	return e.Underlying
}

// Is supports errors.Is() for comparing error codes.
func (e *UserError) Is(target error) bool {
	if t, ok := target.(*UserError); ok {
		return e.Code == t.Code
	}
	return false
}

// Format returns a fully formatted error with all details.
func (e *UserError) Format() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[%s] %s", e.Code, e.Message)
	if e.Underlying != nil {
		fmt.Fprintf(&b, ": %v", e.Underlying)
	}
	if e.Context != "" {
		fmt.Fprintf(&b, "\n  Location: %s", e.Context)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(&b, "\n  Suggestion: %s", e.Suggestion)
	}

	return b.String()
}

// WithSuggestion returns a copy of the error with suggestion set.
func (e *UserError) WithSuggestion(suggestion string) *UserError {
	c := *e
	c.Suggestion = suggestion
	return &c
}

// WithUnderlying returns a copy of the error wrapping err.
func (e *UserError) WithUnderlying(err error) *UserError {
	c := *e
	c.Underlying = err
	return &c
}

// NewConfigNotFoundError creates an error for a missing config file.
func NewConfigNotFoundError(path string) *UserError {
	return &UserError{
		Code:       ErrCodeConfigNotFound,
		Message:    "configuration file not found",
		Context:    path,
		Suggestion: "Check the --config path or unset DEVKIT_CONFIG to use the default search.",
	}
}

// NewConfigParseError creates an error for YAML parsing failures.
func NewConfigParseError(path string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeConfigParse,
		Message:    "failed to parse configuration file",
		Context:    path,
		Suggestion: "Check your YAML syntax. Common issues: incorrect indentation, missing colons, or unknown keys.",
		Underlying: err,
	}
}

// NewValidationFailedError creates a validation error.
func NewValidationFailedError(field, message string) *UserError {
	return &UserError{
		Code:    ErrCodeValidationFailed,
		Message: fmt.Sprintf("validation failed for '%s': %s", field, message),
		Context: field,
	}
}

// NewEnvInvalidError creates an error for a malformed environment variable.
func NewEnvInvalidError(key, value string, err error) *UserError {
	return &UserError{
		Code:       ErrCodeEnvInvalid,
		Message:    fmt.Sprintf("invalid value %q", value),
		Context:    key,
		Suggestion: fmt.Sprintf("Fix or unset %s.", key),
		Underlying: err,
	}
}

// IsUserError checks if an error is a UserError with a specific code.
func IsUserError(err error, code string) bool {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Code == code
	}
	return false
}

// GetUserError extracts a UserError from an error chain, if present.
func GetUserError(err error) *UserError {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue
	}
	return nil
}
