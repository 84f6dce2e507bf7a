// Package app holds the presentation layer shared by the devkit commands:
// result banners, diagnostic tails and the mapping of failures onto process
// exit codes.
package app

import (
	"errors"
	"fmt"

	"github.com/felixgeelhaar/devkit/internal/config"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// Exit codes for failures that never reached an adapter.
const (
	// ExitUsage is returned for flag, config and other user errors.
	ExitUsage = -1
	// ExitInternal is returned for any other error.
	ExitInternal = 1
)

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Code int
	Err  error
}

// Error implements error.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ExitError) Unwrap() error {
	return e.Err
}

// FromResult returns nil for a successful result and an *ExitError with the
// result code otherwise.
func FromResult(res result.Result) error {
	if res.IsSuccess() {
		return nil
	}
	return &ExitError{Code: res.Code, Err: res.Err()}
}

// ExitCode maps an error returned by a command onto a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return result.CodeSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if config.GetUserError(err) != nil {
		return ExitUsage
	}
	return ExitInternal
}
