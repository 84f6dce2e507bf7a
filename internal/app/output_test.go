package app

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/config"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

func newTestPrinter(tail int) (*Printer, *bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	return NewPrinter(&out, &errOut, tail, false), &out, &errOut
}

func TestPrinter_Report_Success(t *testing.T) {
	t.Parallel()

	p, out, errOut := newTestPrinter(20)

	err := p.Report("git settag", result.Success("created tag v1.2.3"), nil)

	require.NoError(t, err)
	assert.Contains(t, out.String(), "✓ git settag")
	assert.Contains(t, out.String(), "created tag v1.2.3\n")
	assert.Zero(t, errOut.Len())
}

func TestPrinter_Report_FailureShowsTail(t *testing.T) {
	t.Parallel()

	p, out, errOut := newTestPrinter(2)
	lines := []string{"one", "two", "three", "four"}
	name := func(code int) string { return fmt.Sprintf("Code%d", -code) }

	err := p.Report("backup run", result.FromExit(16, lines), name)

	require.Error(t, err)
	assert.Equal(t, 16, ExitCode(err))
	assert.Zero(t, out.Len())

	text := errOut.String()
	assert.Contains(t, text, "✗ backup run failed (Code-16, code 16)")
	assert.Contains(t, text, "2 earlier line(s) omitted")
	assert.NotContains(t, text, "  two\n")
	assert.Contains(t, text, "  three\n")
	assert.Contains(t, text, "  four\n")
	assert.NotContains(t, text, "kind:")
}

func TestPrinter_Report_ShowsKind(t *testing.T) {
	t.Parallel()

	p, _, errOut := newTestPrinter(0)

	err := p.Report("exec", result.TimedOut(time.Second, []string{"working"}), nil)

	assert.Equal(t, result.CodeTimedOut, ExitCode(err))
	assert.Contains(t, errOut.String(), "kind: timed-out")
	assert.Contains(t, errOut.String(), "  working\n")
	assert.Contains(t, errOut.String(), "timed out after 1s")
}

func TestPrinter_Error(t *testing.T) {
	t.Parallel()

	t.Run("plain", func(t *testing.T) {
		t.Parallel()
		p, _, errOut := newTestPrinter(0)
		p.Error(errors.New("boom"))
		assert.Contains(t, errOut.String(), "Error: boom")
	})

	t.Run("user error", func(t *testing.T) {
		t.Parallel()
		p, _, errOut := newTestPrinter(0)
		p.Error(config.NewConfigParseError("devkit.yaml", errors.New("line 3")))

		text := errOut.String()
		assert.Contains(t, text, "failed to parse configuration file (at devkit.yaml)")
		assert.Contains(t, text, "Suggestion: Check your YAML syntax")
		assert.NotContains(t, text, "Technical details")
	})

	t.Run("user error verbose", func(t *testing.T) {
		t.Parallel()
		var errOut bytes.Buffer
		p := NewPrinter(&bytes.Buffer{}, &errOut, 0, true)
		p.Error(config.NewConfigParseError("devkit.yaml", errors.New("line 3")))
		assert.Contains(t, errOut.String(), "Technical details: line 3")
	})

	t.Run("exit error already reported", func(t *testing.T) {
		t.Parallel()
		p, _, errOut := newTestPrinter(0)
		p.Error(&ExitError{Code: -2})
		p.Error(nil)
		assert.Zero(t, errOut.Len())
	})
}

func TestPrinter_WarnAndTitle(t *testing.T) {
	t.Parallel()

	p, out, errOut := newTestPrinter(0)
	p.Title("PATH")
	p.Warn("dry run")

	assert.Equal(t, "PATH", strings.TrimSpace(out.String()))
	assert.Contains(t, errOut.String(), "! dry run")
	assert.Same(t, out, p.Out())
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: 0},
		{name: "exit error", err: &ExitError{Code: -5}, want: -5},
		{name: "wrapped exit error", err: fmt.Errorf("release: %w", &ExitError{Code: -3}), want: -3},
		{name: "user error", err: config.NewValidationFailedError("tail", "negative"), want: ExitUsage},
		{name: "other", err: errors.New("unknown flag"), want: ExitInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestFromResult(t *testing.T) {
	t.Parallel()

	assert.NoError(t, FromResult(result.Success()))

	err := FromResult(result.NotFound("git"))
	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, result.CodeFail, exitErr.Code)
	assert.Contains(t, err.Error(), `executable "git" not found`)

	var failure *result.Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, result.KindLaunchFailed, failure.Kind)

	assert.Equal(t, "exit code 3", (&ExitError{Code: 3}).Error())
}
