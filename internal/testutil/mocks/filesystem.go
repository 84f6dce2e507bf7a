package mocks

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// FileSystem is a thread-safe test double for ports.FileSystem.
type FileSystem struct {
	mu    sync.RWMutex
	files map[string][]byte
	dirs  map[string]bool
}

// NewFileSystem creates a new FileSystem mock.
func NewFileSystem() *FileSystem {
	return &FileSystem{
		files: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

// AddFile adds a file and its parent directories to the mock filesystem.
func (m *FileSystem) AddFile(path string, content string) {
	m.SetFileContent(path, []byte(content))
}

// SetFileContent sets file content directly as bytes.
func (m *FileSystem) SetFileContent(path string, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[path] = content
	m.addParents(path)
}

// AddDir adds a directory and its parents to the mock filesystem.
func (m *FileSystem) AddDir(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dirs[path] = true
	m.addParents(path)
}

func (m *FileSystem) addParents(path string) {
	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		m.dirs[dir] = true
		if parent := filepath.Dir(dir); parent == dir {
			return
		}
	}
}

// Content returns the bytes written to path.
func (m *FileSystem) Content(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	content, ok := m.files[path]
	return content, ok
}

// ReadFile reads a file from the mock filesystem.
func (m *FileSystem) ReadFile(path string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if content, ok := m.files[path]; ok {
		return content, nil
	}
	return nil, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
}

// Exists checks if a file or directory exists in the mock filesystem.
func (m *FileSystem) Exists(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, fileExists := m.files[path]
	return fileExists || m.dirs[path]
}

// IsDir checks if a path is a directory in the mock filesystem.
func (m *FileSystem) IsDir(path string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.dirs[path]
}

// MkdirAll creates a directory in the mock filesystem.
func (m *FileSystem) MkdirAll(path string, _ os.FileMode) error {
	m.AddDir(path)
	return nil
}

// GetFileInfo returns metadata about a file in the mock filesystem.
func (m *FileSystem) GetFileInfo(path string) (ports.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if content, ok := m.files[path]; ok {
		return ports.FileInfo{
			Size:    int64(len(content)),
			Mode:    0o644,
			ModTime: time.Now(),
		}, nil
	}

	if m.dirs[path] {
		return ports.FileInfo{
			Mode:    os.ModeDir | 0o755,
			ModTime: time.Now(),
			IsDir:   true,
		}, nil
	}

	return ports.FileInfo{}, fmt.Errorf("file not found: %s: %w", path, os.ErrNotExist)
}

// FileHash returns a hash of a file in the mock filesystem.
func (m *FileSystem) FileHash(path string) (string, error) {
	content, err := m.ReadFile(path)
	if err != nil {
		return "", err
	}
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:]), nil
}

// Open returns a reader over the file content.
func (m *FileSystem) Open(path string) (io.ReadCloser, error) {
	content, err := m.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(content)), nil
}

// Create returns a writer whose content is stored on Close.
func (m *FileSystem) Create(path string) (io.WriteCloser, error) {
	return &memFile{fs: m, path: path}, nil
}

// Rename moves a file's content to newpath.
func (m *FileSystem) Rename(oldpath, newpath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	content, ok := m.files[oldpath]
	if !ok {
		return fmt.Errorf("file not found: %s: %w", oldpath, os.ErrNotExist)
	}
	delete(m.files, oldpath)
	m.files[newpath] = content
	return nil
}

// Remove deletes a file from the mock filesystem.
func (m *FileSystem) Remove(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, path)
	return nil
}

// WalkDir visits every known path under root in lexical order.
func (m *FileSystem) WalkDir(root string, fn fs.WalkDirFunc) error {
	m.mu.RLock()
	paths := make([]string, 0, len(m.files)+len(m.dirs))
	isDir := make(map[string]bool)
	for p := range m.files {
		paths = append(paths, p)
	}
	for p := range m.dirs {
		paths = append(paths, p)
		isDir[p] = true
	}
	m.mu.RUnlock()

	if _, err := m.GetFileInfo(root); err != nil {
		return fn(root, nil, err)
	}

	sort.Strings(paths)
	prefix := strings.TrimSuffix(root, string(filepath.Separator)) + string(filepath.Separator)

	var skipped []string
	for _, p := range paths {
		if p != root && !strings.HasPrefix(p, prefix) {
			continue
		}
		if underAny(p, skipped) {
			continue
		}
		err := fn(p, memEntry{name: filepath.Base(p), dir: isDir[p]}, nil)
		if err == fs.SkipDir && isDir[p] {
			skipped = append(skipped, p+string(filepath.Separator))
			continue
		}
		if err == fs.SkipAll || err == fs.SkipDir {
			return nil
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func underAny(path string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// Reset clears all files and directories.
func (m *FileSystem) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files = make(map[string][]byte)
	m.dirs = make(map[string]bool)
}

type memFile struct {
	fs   *FileSystem
	path string
	buf  bytes.Buffer
}

func (f *memFile) Write(p []byte) (int, error) {
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	f.fs.SetFileContent(f.path, f.buf.Bytes())
	return nil
}

type memEntry struct {
	name string
	dir  bool
}

func (e memEntry) Name() string { return e.name }
func (e memEntry) IsDir() bool  { return e.dir }

func (e memEntry) Type() fs.FileMode {
	if e.dir {
		return fs.ModeDir
	}
	return 0
}

func (e memEntry) Info() (fs.FileInfo, error) {
	return nil, fmt.Errorf("file info not available for %s", e.name)
}

// Ensure FileSystem implements ports.FileSystem.
var _ ports.FileSystem = (*FileSystem)(nil)
