package testutil

import (
	"fmt"
	"io/fs"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// AssertFileExists fails unless path is a regular file.
func AssertFileExists(t testing.TB, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if !assert.NoError(t, err, "expected a file at %s", path) {
		return
	}
	assert.False(t, info.IsDir(), "%s is a directory", path)
}

// AssertFileNotExists fails if anything exists at path.
func AssertFileNotExists(t testing.TB, path string) {
	t.Helper()

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "expected nothing at %s", path)
}

// AssertDirExists fails unless path is a directory.
func AssertDirExists(t testing.TB, path string) {
	t.Helper()

	info, err := os.Stat(path)
	if !assert.NoError(t, err, "expected a directory at %s", path) {
		return
	}
	assert.True(t, info.IsDir(), "%s is not a directory", path)
}

// AssertFileEquals compares a file's content with want. CRLF line endings
// count as LF so Windows checkouts of fixtures still match.
func AssertFileEquals(t testing.TB, path, want string) {
	t.Helper()

	content, err := os.ReadFile(path)
	require.NoError(t, err, "cannot read %s", path)
	crlf := strings.NewReplacer("\r\n", "\n")
	assert.Equal(t, crlf.Replace(want), crlf.Replace(string(content)), "content of %s", path)
}

// AssertSuccess asserts that a result has code 0.
func AssertSuccess(t testing.TB, res result.Result, msgAndArgs ...interface{}) {
	t.Helper()

	if !res.IsSuccess() {
		assert.Fail(t, "expected success", "got %s, output: %v", res.String(), res.Output)
		return
	}
	assert.NotEmpty(t, res.Output, msgAndArgs...)
}

// AssertCode asserts the code and kind of a failed result.
func AssertCode(t testing.TB, res result.Result, code int, kind result.Kind, msgAndArgs ...interface{}) {
	t.Helper()

	assert.Equal(t, code, res.Code, msgAndArgs...)
	assert.Equal(t, kind.String(), res.Kind.String(), msgAndArgs...)
	assert.True(t, res.IsFail(), "expected failure, got %s", res.String())
}

// AssertOutputContains asserts that some output line contains expected.
func AssertOutputContains(t testing.TB, res result.Result, expected string, msgAndArgs ...interface{}) {
	t.Helper()

	if !res.Contains(expected) {
		assert.Fail(t, fmt.Sprintf("output does not contain %q: %v", expected, res.Output), msgAndArgs...)
	}
}
