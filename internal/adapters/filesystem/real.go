// Package filesystem provides file system adapters.
package filesystem

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// RealFileSystem implements ports.FileSystem using actual file system operations.
type RealFileSystem struct{}

// NewRealFileSystem creates a new RealFileSystem.
func NewRealFileSystem() *RealFileSystem {
	return &RealFileSystem{}
}

// ReadFile reads a file and returns its contents.
func (r *RealFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(ports.ExpandPath(path))
}

// Exists checks if a file or directory exists.
func (r *RealFileSystem) Exists(path string) bool {
	_, err := os.Lstat(ports.ExpandPath(path))
	return err == nil
}

// IsDir checks if a path is a directory.
func (r *RealFileSystem) IsDir(path string) bool {
	info, err := os.Stat(ports.ExpandPath(path))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// MkdirAll creates a directory and all necessary parents.
func (r *RealFileSystem) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(ports.ExpandPath(path), perm)
}

// GetFileInfo returns metadata about a file.
func (r *RealFileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	info, err := os.Stat(ports.ExpandPath(path))
	if err != nil {
		return ports.FileInfo{}, err
	}

	return ports.FileInfo{
		Size:    info.Size(),
		Mode:    info.Mode(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// FileHash returns the hex SHA256 of a file, streaming its contents.
func (r *RealFileSystem) FileHash(path string) (string, error) {
	f, err := os.Open(ports.ExpandPath(path))
	if err != nil {
		return "", err
	}
	defer func() { _ = f.Close() }()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Open opens a file for reading.
func (r *RealFileSystem) Open(path string) (io.ReadCloser, error) {
	return os.Open(ports.ExpandPath(path))
}

// Create creates or truncates a file, creating parent directories.
func (r *RealFileSystem) Create(path string) (io.WriteCloser, error) {
	path = ports.ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	return os.Create(path)
}

// Rename moves a file into place.
func (r *RealFileSystem) Rename(oldpath, newpath string) error {
	return os.Rename(ports.ExpandPath(oldpath), ports.ExpandPath(newpath))
}

// Remove deletes a file, ignoring one that is already gone.
func (r *RealFileSystem) Remove(path string) error {
	err := os.Remove(ports.ExpandPath(path))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// WalkDir walks the tree rooted at root.
func (r *RealFileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	return filepath.WalkDir(ports.ExpandPath(root), fn)
}

// Ensure RealFileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*RealFileSystem)(nil)
