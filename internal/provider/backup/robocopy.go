package backup

import (
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/adapters/command"
)

// Robocopy exit code bits.
const (
	ExitFilesCopied  = 1
	ExitExtraFiles   = 2
	ExitMismatched   = 4
	ExitCopyFailures = 8
	ExitFatal        = 16
)

// FailureThreshold is the lowest robocopy exit code that means failure.
const FailureThreshold = 8

// Succeeded reports whether a robocopy exit code means success.
// Codes 0-7 are informational; 8 and above mean at least one failure.
func Succeeded(code int) bool {
	return code >= 0 && code < FailureThreshold
}

// DescribeExit turns a robocopy exit code into a short summary.
func DescribeExit(code int) string {
	if code < 0 {
		return fmt.Sprintf("unexpected exit code %d", code)
	}
	if code == 0 {
		return "no changes"
	}

	var parts []string
	if code&ExitFilesCopied != 0 {
		parts = append(parts, "files copied")
	}
	if code&ExitExtraFiles != 0 {
		parts = append(parts, "extra files detected")
	}
	if code&ExitMismatched != 0 {
		parts = append(parts, "mismatched files detected")
	}
	if code&ExitCopyFailures != 0 {
		parts = append(parts, "some files could not be copied")
	}
	if code&ExitFatal != 0 {
		parts = append(parts, "fatal error")
	}
	if len(parts) == 0 {
		return fmt.Sprintf("unexpected exit code %d", code)
	}
	return strings.Join(parts, ", ")
}

// Arguments builds the robocopy command line for j. listOnly adds /L so
// robocopy reports what it would do without copying.
func (j Job) Arguments(listOnly bool) string {
	args := []string{j.Source, j.Destination}

	if j.Mirror {
		args = append(args, "/MIR")
	} else {
		args = append(args, "/E")
	}

	args = append(args,
		fmt.Sprintf("/R:%d", j.RetryCount()),
		fmt.Sprintf("/W:%d", j.WaitSeconds()),
	)
	if j.Threads > 0 {
		args = append(args, fmt.Sprintf("/MT:%d", j.Threads))
	}
	if len(j.ExcludeDirs) > 0 {
		args = append(args, "/XD")
		args = append(args, j.ExcludeDirs...)
	}
	if len(j.ExcludeFiles) > 0 {
		args = append(args, "/XF")
		args = append(args, j.ExcludeFiles...)
	}
	if j.Log != "" {
		args = append(args, "/LOG+:"+j.Log, "/TEE")
	}
	args = append(args, "/NP")
	if listOnly {
		args = append(args, "/L")
	}

	return command.JoinArguments(args...)
}
