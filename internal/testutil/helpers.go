// Package testutil provides test helpers and utilities for devkit tests.
package testutil

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// WriteTempFile writes content to dir/filename, creating dir if needed, and
// returns the file's path.
func WriteTempFile(t *testing.T, dir, filename, content string) string {
	t.Helper()

	require.NoError(t, os.MkdirAll(dir, 0o755), "cannot create %s", dir)
	p := filepath.Join(dir, filename)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644), "cannot write %s", filename)
	return p
}

// LoadFixture returns an embedded file from the fixtures directory.
func LoadFixture(t *testing.T, name string) []byte {
	t.Helper()

	content, err := fixturesFS.ReadFile(path.Join("fixtures", name))
	require.NoError(t, err, "no fixture named %s", name)
	return content
}
