// Package commandutil classifies errors returned when spawning processes and
// maps tool failures onto adapter codes.
package commandutil

import (
	"errors"
	"os"
	"os/exec"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// IsCommandNotFound reports whether an error indicates a missing executable.
func IsCommandNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, exec.ErrNotFound) {
		return true
	}
	var execErr *exec.Error
	if errors.As(err, &execErr) && errors.Is(execErr.Err, exec.ErrNotFound) {
		return true
	}
	var pathErr *os.PathError
	if errors.As(err, &pathErr) && errors.Is(pathErr.Err, os.ErrNotExist) {
		return true
	}
	return false
}

// IsPermissionDenied reports whether an error indicates the executable exists
// but may not be run.
func IsPermissionDenied(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, os.ErrPermission)
}

// Describe returns a short reason for a spawn failure.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case IsCommandNotFound(err):
		return "not found"
	case IsPermissionDenied(err):
		return "permission denied"
	default:
		return "cannot start"
	}
}

// MapFailure replaces the raw exit code of a failed tool run with an adapter
// code. Successful results, launch failures and timeouts pass through so
// their own codes reach the caller.
func MapFailure(res result.Result, code int) result.Result {
	if res.IsSuccess() || res.Kind != result.KindToolFailed {
		return res
	}
	return res.WithCode(code)
}
