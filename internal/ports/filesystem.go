package ports

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileInfo contains file metadata.
type FileInfo struct {
	Size    int64
	Mode    os.FileMode
	ModTime time.Time
	IsDir   bool
}

// FileSystem provides file system operations.
type FileSystem interface {
	ReadFile(path string) ([]byte, error)
	Exists(path string) bool
	IsDir(path string) bool
	MkdirAll(path string, perm os.FileMode) error
	GetFileInfo(path string) (FileInfo, error)
	FileHash(path string) (string, error)
	// Open opens a file for streaming reads.
	Open(path string) (io.ReadCloser, error)
	// Create creates or truncates a file for streaming writes.
	Create(path string) (io.WriteCloser, error)
	// Rename moves oldpath to newpath, replacing newpath if it exists.
	Rename(oldpath, newpath string) error
	// Remove deletes a file. A missing file is not an error.
	Remove(path string) error
	// WalkDir walks the tree rooted at root in lexical order.
	WalkDir(root string, fn fs.WalkDirFunc) error
}

// ExpandPath expands ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if path == "~" {
			return home
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
