package ports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewParameters(t *testing.T) {
	t.Parallel()

	p := NewParameters("git", "tag -d v1.0.0")

	assert.Equal(t, "git", p.FileName)
	assert.Equal(t, "tag -d v1.0.0", p.Arguments)
	assert.True(t, p.RedirectStandardOutput)
	assert.True(t, p.RedirectStandardError)
	assert.False(t, p.Verbose)
	assert.Equal(t, ModeInline, p.Mode)
	assert.Zero(t, p.Timeout)
}

func TestParameters_BuildersCopy(t *testing.T) {
	t.Parallel()

	base := NewParameters("robocopy", `"C:\src" "D:\dst"`)
	derived := base.InDir("/tmp").WithVerbose(true).WithTimeout(time.Minute).WithMode(ModeWorker)

	assert.Empty(t, base.WorkingDir, "builders must not mutate the receiver")
	assert.False(t, base.Verbose)
	assert.Equal(t, "/tmp", derived.WorkingDir)
	assert.True(t, derived.Verbose)
	assert.Equal(t, time.Minute, derived.Timeout)
	assert.Equal(t, ModeWorker, derived.Mode)
}

func TestParameters_CommandLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "git status", NewParameters("git", "status").CommandLine())
	assert.Equal(t, "whoami", NewParameters("whoami", "").CommandLine())
}

func TestExecutionMode_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "inline", ModeInline.String())
	assert.Equal(t, "worker", ModeWorker.String())
	assert.Equal(t, "unknown", ExecutionMode(7).String())
}

func TestAPIError_Error(t *testing.T) {
	t.Parallel()

	err := &APIError{StatusCode: 422, Body: "Validation Failed"}
	assert.Equal(t, "GitHub API returned status 422", err.Error())
}
