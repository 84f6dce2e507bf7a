// Package result provides the structured outcome of a launched process or tool
// operation: a raw exit code, the captured output lines, and a typed kind that
// callers branch on instead of comparing magic numbers.
package result

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Sentinel codes.
const (
	// CodeSuccess is the only code treated as success.
	CodeSuccess = 0
	// CodeException marks an exception or a result that is not yet determined.
	CodeException = math.MaxInt32
	// CodeFail is the default failure code, also used for launch failures.
	CodeFail = math.MinInt32
	// CodeTimedOut is returned when a process is killed after its timeout.
	CodeTimedOut = -999
)

// Default output messages.
const (
	MessageSuccess   = "Success"
	MessageFail      = "Fail"
	MessageUndefined = "Undefined"
)

// Kind classifies a result.
type Kind int

const (
	// KindOK is a successful result.
	KindOK Kind = iota
	// KindUndetermined is a result whose outcome has not been decided yet.
	KindUndetermined
	// KindLaunchFailed means the executable could not be started.
	KindLaunchFailed
	// KindToolFailed means the tool ran and reported failure.
	KindToolFailed
	// KindValidation means inputs were rejected before anything ran.
	KindValidation
	// KindAPI means a remote API answered with a non-success status.
	KindAPI
	// KindTimedOut means the process was killed after its deadline.
	KindTimedOut
)

// String returns the string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUndetermined:
		return "undetermined"
	case KindLaunchFailed:
		return "launch-failed"
	case KindToolFailed:
		return "tool-failed"
	case KindValidation:
		return "validation"
	case KindAPI:
		return "api"
	case KindTimedOut:
		return "timed-out"
	default:
		return "unknown"
	}
}

// Result is the outcome of a launch or a tool operation.
// Output is never nil; methods that change a Result return a copy.
type Result struct {
	Code   int
	Output []string
	Kind   Kind
	Detail string
}

// Success returns a successful result. The message defaults to "Success".
func Success(message ...string) Result {
	msg := MessageSuccess
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	return Result{
		Code:   CodeSuccess,
		Output: []string{msg},
		Kind:   KindOK,
	}
}

// Fail returns a failed result with the given code and message.
// A zero code is replaced by CodeFail so a failure can never read as success.
func Fail(code int, message string) Result {
	if code == CodeSuccess {
		code = CodeFail
	}
	if message == "" {
		message = MessageFail
	}
	return Result{
		Code:   code,
		Output: []string{message},
		Kind:   KindToolFailed,
		Detail: message,
	}
}

// FailDefault returns a failure with CodeFail and the "Fail" message.
func FailDefault() Result {
	return Fail(CodeFail, MessageFail)
}

// New returns an undetermined result with empty output.
func New() Result {
	return Result{
		Code:   CodeException,
		Output: []string{},
		Kind:   KindUndetermined,
	}
}

// Undefined returns an undetermined result carrying the "Undefined" placeholder.
func Undefined() Result {
	return Result{
		Code:   CodeException,
		Output: []string{MessageUndefined},
		Kind:   KindUndetermined,
	}
}

// FromExit builds a result from a process exit code and its captured lines.
func FromExit(code int, lines []string) Result {
	out := copyLines(lines)
	if code == CodeSuccess {
		return Result{Code: code, Output: out, Kind: KindOK}
	}
	return Result{
		Code:   code,
		Output: out,
		Kind:   KindToolFailed,
		Detail: fmt.Sprintf("exited with code %d", code),
	}
}

// LaunchFailure builds a result for a process that could not be started.
func LaunchFailure(fileName string, err error) Result {
	detail := fmt.Sprintf("failed to start %s: %v", fileName, err)
	return Result{
		Code:   CodeFail,
		Output: []string{detail},
		Kind:   KindLaunchFailed,
		Detail: detail,
	}
}

// NotFound builds a launch failure for an executable missing from PATH.
func NotFound(fileName string) Result {
	detail := fmt.Sprintf("executable %q not found", fileName)
	return Result{
		Code:   CodeFail,
		Output: []string{detail},
		Kind:   KindLaunchFailed,
		Detail: detail,
	}
}

// TimedOut builds a result for a process killed after the given timeout.
// Lines captured before the kill are kept.
func TimedOut(timeout time.Duration, lines []string) Result {
	detail := fmt.Sprintf("timed out after %s", timeout)
	out := append(copyLines(lines), detail)
	return Result{
		Code:   CodeTimedOut,
		Output: out,
		Kind:   KindTimedOut,
		Detail: detail,
	}
}

// Canceled builds a result for a process killed because its context ended.
func Canceled(cause error, lines []string) Result {
	detail := fmt.Sprintf("canceled: %v", cause)
	out := append(copyLines(lines), detail)
	return Result{
		Code:   CodeTimedOut,
		Output: out,
		Kind:   KindTimedOut,
		Detail: detail,
	}
}

// Invalid builds a validation failure with the given domain code.
func Invalid(code int, message string) Result {
	r := Fail(code, message)
	r.Kind = KindValidation
	return r
}

// APIFailure builds a failure from an HTTP status and response body.
func APIFailure(code, status int, body string) Result {
	detail := fmt.Sprintf("API request failed with status %d", status)
	out := []string{detail}
	if body = strings.TrimSpace(body); body != "" {
		out = append(out, body)
	}
	if code == CodeSuccess {
		code = CodeFail
	}
	return Result{
		Code:   code,
		Output: out,
		Kind:   KindAPI,
		Detail: detail,
	}
}

// IsSuccess reports whether Code is zero.
func (r Result) IsSuccess() bool {
	return r.Code == CodeSuccess
}

// IsFail is the complement of IsSuccess.
func (r Result) IsFail() bool {
	return !r.IsSuccess()
}

// WithCode returns a copy of the result with a different code.
// The raw code of the original is kept in Detail when it is replaced.
func (r Result) WithCode(code int) Result {
	c := r.clone()
	if c.Code != code && c.Code != CodeSuccess && c.Detail == "" {
		c.Detail = fmt.Sprintf("raw code %d", c.Code)
	}
	c.Code = code
	if code == CodeSuccess {
		c.Kind = KindOK
	} else if c.Kind == KindOK {
		c.Kind = KindToolFailed
	}
	return c
}

// WithLines returns a copy of the result with lines appended to its output.
func (r Result) WithLines(lines ...string) Result {
	c := r.clone()
	c.Output = append(c.Output, lines...)
	return c
}

// Tail returns the last n output lines.
func (r Result) Tail(n int) []string {
	if n <= 0 || n >= len(r.Output) {
		return copyLines(r.Output)
	}
	return copyLines(r.Output[len(r.Output)-n:])
}

// Contains reports whether any output line contains substr.
func (r Result) Contains(substr string) bool {
	for _, line := range r.Output {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

// Err returns nil for a successful result and a *Failure otherwise.
func (r Result) Err() error {
	if r.IsSuccess() {
		return nil
	}
	detail := r.Detail
	if detail == "" && len(r.Output) > 0 {
		detail = r.Output[len(r.Output)-1]
	}
	return &Failure{Kind: r.Kind, Detail: detail, RawCode: r.Code}
}

// String returns a one-line summary.
func (r Result) String() string {
	if r.IsSuccess() {
		return fmt.Sprintf("ok (%d lines)", len(r.Output))
	}
	if r.Detail != "" {
		return fmt.Sprintf("%s: %s (code %d)", r.Kind, r.Detail, r.Code)
	}
	return fmt.Sprintf("%s (code %d)", r.Kind, r.Code)
}

func (r Result) clone() Result {
	c := r
	c.Output = copyLines(r.Output)
	return c
}

func copyLines(lines []string) []string {
	out := make([]string, len(lines))
	copy(out, lines)
	return out
}

// Failure is the error form of a failed Result.
type Failure struct {
	Kind    Kind
	Detail  string
	RawCode int
}

// Error implements error.
func (f *Failure) Error() string {
	return fmt.Sprintf("%s: %s (code %d)", f.Kind, f.Detail, f.RawCode)
}

// Is matches failures of the same kind.
func (f *Failure) Is(target error) bool {
	t, ok := target.(*Failure)
	if !ok {
		return false
	}
	return f.Kind == t.Kind
}
