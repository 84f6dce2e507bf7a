// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"time"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// ExecutionMode selects where a launch runs.
type ExecutionMode int

const (
	// ModeInline runs the process on the calling goroutine.
	ModeInline ExecutionMode = iota
	// ModeWorker runs the process on a dedicated goroutine and joins it.
	ModeWorker
)

// String returns the string representation of the mode.
func (m ExecutionMode) String() string {
	switch m {
	case ModeInline:
		return "inline"
	case ModeWorker:
		return "worker"
	default:
		return "unknown"
	}
}

// Parameters describes one process invocation.
// Adapters build a fresh value per call; the launcher never mutates it.
type Parameters struct {
	// FileName is the executable, resolved against PATH when not absolute.
	FileName string
	// Arguments is the raw command line. Callers quote embedded spaces.
	Arguments string
	// WorkingDir is the child's working directory (empty: inherit).
	WorkingDir string
	// RedirectStandardOutput captures stdout line by line.
	RedirectStandardOutput bool
	// RedirectStandardError captures stderr into the same ordered buffer.
	RedirectStandardError bool
	// Verbose echoes each captured line to the console as it arrives.
	Verbose bool
	// Timeout kills the process tree after the duration. Zero disables it.
	Timeout time.Duration
	// Mode selects inline or worker execution.
	Mode ExecutionMode
	// Env holds extra KEY=VALUE entries appended to the inherited environment.
	Env []string
}

// NewParameters creates parameters with stdout and stderr captured.
func NewParameters(fileName, arguments string) Parameters {
	return Parameters{
		FileName:               fileName,
		Arguments:              arguments,
		RedirectStandardOutput: true,
		RedirectStandardError:  true,
	}
}

// InDir returns a copy of p with the working directory set.
func (p Parameters) InDir(dir string) Parameters {
	p.WorkingDir = dir
	return p
}

// WithVerbose returns a copy of p with console echo toggled.
func (p Parameters) WithVerbose(verbose bool) Parameters {
	p.Verbose = verbose
	return p
}

// WithTimeout returns a copy of p with a timeout.
func (p Parameters) WithTimeout(timeout time.Duration) Parameters {
	p.Timeout = timeout
	return p
}

// WithMode returns a copy of p with the execution mode set.
func (p Parameters) WithMode(mode ExecutionMode) Parameters {
	p.Mode = mode
	return p
}

// CommandLine returns the file name and arguments joined for display.
func (p Parameters) CommandLine() string {
	if p.Arguments == "" {
		return p.FileName
	}
	return p.FileName + " " + p.Arguments
}

// Launcher runs one external process to completion.
// Start never panics and never returns an error: every outcome,
// including a failure to spawn, is a result.Result.
type Launcher interface {
	Start(ctx context.Context, params Parameters) result.Result
}

// LaunchCall records a launcher invocation.
type LaunchCall struct {
	FileName   string
	Arguments  string
	WorkingDir string
}
