package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/testutil"
)

func TestNewRealFileSystem(t *testing.T) {
	assert.NotNil(t, NewRealFileSystem())
}

func TestRealFileSystem_ReadExistsIsDir(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	dir := t.TempDir()
	file := filepath.Join(dir, "jobs.yaml")
	require.NoError(t, os.WriteFile(file, []byte("jobs: []\n"), 0o644))

	content, err := fsys.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "jobs: []\n", string(content))

	assert.True(t, fsys.Exists(file))
	assert.False(t, fsys.Exists(filepath.Join(dir, "missing")))
	assert.True(t, fsys.IsDir(dir))
	assert.False(t, fsys.IsDir(file))

	info, err := fsys.GetFileInfo(file)
	require.NoError(t, err)
	assert.Equal(t, int64(9), info.Size)
	assert.False(t, info.IsDir)

	_, err = fsys.GetFileInfo(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestRealFileSystem_FileHash(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	file := filepath.Join(t.TempDir(), "asset.zip")
	require.NoError(t, os.WriteFile(file, []byte("release payload"), 0o644))

	sum := sha256.Sum256([]byte("release payload"))
	hash, err := fsys.FileHash(file)
	require.NoError(t, err)
	assert.Equal(t, hex.EncodeToString(sum[:]), hash)

	_, err = fsys.FileHash(file + ".missing")
	require.Error(t, err)
}

func TestRealFileSystem_CreateAndOpen(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.bin")

	w, err := fsys.Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("downloaded"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r, err := fsys.Open(path)
	require.NoError(t, err)
	defer func() { _ = r.Close() }()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "downloaded", string(data))
	testutil.AssertFileExists(t, path)
}

func TestRealFileSystem_MkdirAll(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	nested := filepath.Join(t.TempDir(), "a", "b", "c")

	require.NoError(t, fsys.MkdirAll(nested, 0o755))
	assert.True(t, fsys.IsDir(nested))
	testutil.AssertDirExists(t, nested)
}

func TestRealFileSystem_RenameAndRemove(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	dir := t.TempDir()
	part := testutil.WriteTempFile(t, dir, "tool.zip.part", "new build")
	target := testutil.WriteTempFile(t, dir, "tool.zip", "old build")

	require.NoError(t, fsys.Rename(part, target))
	testutil.AssertFileNotExists(t, part)
	testutil.AssertFileEquals(t, target, "new build")

	require.NoError(t, fsys.Remove(target))
	testutil.AssertFileNotExists(t, target)
	require.NoError(t, fsys.Remove(target), "removing a missing file is not an error")

	require.Error(t, fsys.Rename(part, target))
}

func TestRealFileSystem_WalkDir(t *testing.T) {
	t.Parallel()

	fsys := NewRealFileSystem()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "main.go"), nil, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"), nil, 0o644))

	var names []string
	err := fsys.WalkDir(root, func(path string, _ fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, path)
		names = append(names, filepath.ToSlash(rel))
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{".", "README.md", "src", "src/main.go"}, names)
}
