package result

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccess(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		message []string
		want    string
	}{
		{name: "default message", message: nil, want: "Success"},
		{name: "custom message", message: []string{"tag created"}, want: "tag created"},
		{name: "empty message falls back", message: []string{""}, want: "Success"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Success(tt.message...)
			assert.True(t, r.IsSuccess())
			assert.False(t, r.IsFail())
			assert.Equal(t, 0, r.Code)
			assert.Equal(t, []string{tt.want}, r.Output)
			assert.Equal(t, KindOK, r.Kind)
			assert.NoError(t, r.Err())
		})
	}
}

func TestFail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		code     int
		message  string
		wantCode int
		wantMsg  string
	}{
		{name: "explicit code", code: -2, message: "tag failed", wantCode: -2, wantMsg: "tag failed"},
		{name: "positive code", code: 128, message: "fatal", wantCode: 128, wantMsg: "fatal"},
		{name: "zero code becomes sentinel", code: 0, message: "boom", wantCode: CodeFail, wantMsg: "boom"},
		{name: "empty message", code: 3, message: "", wantCode: 3, wantMsg: "Fail"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := Fail(tt.code, tt.message)
			assert.True(t, r.IsFail())
			assert.Equal(t, tt.wantCode, r.Code)
			assert.Equal(t, tt.wantMsg, r.Output[0])
		})
	}
}

func TestFailDefault(t *testing.T) {
	t.Parallel()

	r := FailDefault()
	assert.Equal(t, CodeFail, r.Code)
	assert.Equal(t, []string{"Fail"}, r.Output)
}

func TestNewAndUndefined(t *testing.T) {
	t.Parallel()

	n := New()
	assert.Equal(t, CodeException, n.Code)
	assert.NotNil(t, n.Output)
	assert.Empty(t, n.Output)
	assert.Equal(t, KindUndetermined, n.Kind)
	assert.True(t, n.IsFail())

	u := Undefined()
	assert.Equal(t, CodeException, u.Code)
	assert.Equal(t, []string{"Undefined"}, u.Output)
}

func TestFromExit(t *testing.T) {
	t.Parallel()

	lines := []string{"one", "error", "three", "four", "five"}
	r := FromExit(-100, lines)

	assert.Equal(t, -100, r.Code)
	assert.Len(t, r.Output, 5)
	assert.True(t, r.Contains("error"))
	assert.Equal(t, KindToolFailed, r.Kind)

	lines[0] = "mutated"
	assert.Equal(t, "one", r.Output[0], "result must not alias caller's slice")

	ok := FromExit(0, []string{"pass"})
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, []string{"pass"}, ok.Output)
}

func TestLaunchFailureAndNotFound(t *testing.T) {
	t.Parallel()

	nf := NotFound("test-echo")
	assert.True(t, nf.IsFail())
	assert.Equal(t, CodeFail, nf.Code)
	assert.Equal(t, KindLaunchFailed, nf.Kind)
	assert.True(t, nf.Contains("not found"))

	lf := LaunchFailure("git", errors.New("permission denied"))
	assert.Equal(t, KindLaunchFailed, lf.Kind)
	assert.True(t, lf.Contains("permission denied"))
}

func TestTimedOut(t *testing.T) {
	t.Parallel()

	r := TimedOut(2*time.Second, []string{"started"})
	assert.Equal(t, CodeTimedOut, r.Code)
	assert.Equal(t, KindTimedOut, r.Kind)
	assert.Equal(t, "started", r.Output[0])
	assert.Contains(t, r.Output[1], "timed out after 2s")
}

func TestAPIFailure(t *testing.T) {
	t.Parallel()

	r := APIFailure(-2, 422, `{"message":"Validation Failed"}`)
	assert.Equal(t, -2, r.Code)
	assert.Equal(t, KindAPI, r.Kind)
	assert.True(t, r.Contains("Validation Failed"))
	assert.True(t, r.Contains("422"))

	empty := APIFailure(0, 500, "  ")
	assert.Equal(t, CodeFail, empty.Code)
	assert.Len(t, empty.Output, 1)
}

func TestInvalid(t *testing.T) {
	t.Parallel()

	r := Invalid(-1, "tag is required")
	assert.Equal(t, -1, r.Code)
	assert.Equal(t, KindValidation, r.Kind)
	assert.Equal(t, "tag is required", r.Output[0])
}

func TestResult_WithCode(t *testing.T) {
	t.Parallel()

	base := FromExit(128, []string{"fatal: tag exists"})
	mapped := base.WithCode(-2)

	assert.Equal(t, -2, mapped.Code)
	assert.Equal(t, 128, base.Code, "original is unchanged")
	assert.Equal(t, KindToolFailed, mapped.Kind)

	ok := FromExit(3, nil).WithCode(0)
	assert.True(t, ok.IsSuccess())
	assert.Equal(t, KindOK, ok.Kind)
}

func TestResult_WithLines(t *testing.T) {
	t.Parallel()

	base := Success()
	more := base.WithLines("a", "b")

	assert.Equal(t, []string{"Success"}, base.Output)
	assert.Equal(t, []string{"Success", "a", "b"}, more.Output)
}

func TestResult_Tail(t *testing.T) {
	t.Parallel()

	r := FromExit(1, []string{"1", "2", "3", "4"})
	assert.Equal(t, []string{"3", "4"}, r.Tail(2))
	assert.Equal(t, []string{"1", "2", "3", "4"}, r.Tail(10))
	assert.Equal(t, []string{"1", "2", "3", "4"}, r.Tail(0))
}

func TestResult_Err(t *testing.T) {
	t.Parallel()

	err := Invalid(-1, "repo must be owner/name").Err()
	require.Error(t, err)

	var failure *Failure
	require.ErrorAs(t, err, &failure)
	assert.Equal(t, KindValidation, failure.Kind)
	assert.Equal(t, -1, failure.RawCode)
	assert.True(t, errors.Is(err, &Failure{Kind: KindValidation}))
	assert.False(t, errors.Is(err, &Failure{Kind: KindAPI}))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ok", KindOK.String())
	assert.Equal(t, "timed-out", KindTimedOut.String())
	assert.Equal(t, "unknown", Kind(99).String())
}
