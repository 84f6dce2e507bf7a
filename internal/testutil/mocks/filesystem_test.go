package mocks

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"sync"
	"testing"
)

func TestFileSystem_ReadFile(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/backup/jobs.yaml", "jobs: []")

	content, err := m.ReadFile("/backup/jobs.yaml")
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(content) != "jobs: []" {
		t.Errorf("ReadFile() = %q, want %q", string(content), "jobs: []")
	}
}

func TestFileSystem_ReadFile_NotFound(t *testing.T) {
	m := NewFileSystem()

	_, err := m.ReadFile("/nonexistent")
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("ReadFile() error = %v, want os.ErrNotExist", err)
	}
}

func TestFileSystem_AddFileCreatesParents(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/data/projects/app/main.go", "package main")

	for _, dir := range []string{"/data", "/data/projects", "/data/projects/app"} {
		if !m.IsDir(dir) {
			t.Errorf("IsDir(%q) = false, want true", dir)
		}
	}
	if m.IsDir("/data/projects/app/main.go") {
		t.Error("IsDir() should be false for a file")
	}
}

func TestFileSystem_CreateAndOpen(t *testing.T) {
	m := NewFileSystem()

	w, err := m.Create("/downloads/asset.zip")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	_, _ = w.Write([]byte("zip"))
	if _, ok := m.Content("/downloads/asset.zip"); ok {
		t.Error("content should not be visible before Close")
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	r, err := m.Open("/downloads/asset.zip")
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	data, _ := io.ReadAll(r)
	if string(data) != "zip" {
		t.Errorf("Open() content = %q, want %q", string(data), "zip")
	}
}

func TestFileSystem_RenameAndRemove(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/out/tool.zip", "old")
	m.AddFile("/out/tool.zip.part", "new")

	if err := m.Rename("/out/tool.zip.part", "/out/tool.zip"); err != nil {
		t.Fatalf("Rename() error = %v", err)
	}
	if m.Exists("/out/tool.zip.part") {
		t.Error("Rename() left the source behind")
	}
	if content, _ := m.Content("/out/tool.zip"); string(content) != "new" {
		t.Errorf("Content() = %q, want %q", content, "new")
	}

	if err := m.Rename("/out/missing", "/out/x"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Rename() error = %v, want os.ErrNotExist", err)
	}

	if err := m.Remove("/out/tool.zip"); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if m.Exists("/out/tool.zip") {
		t.Error("Remove() kept the file")
	}
	if err := m.Remove("/out/tool.zip"); err != nil {
		t.Errorf("Remove() of a missing file error = %v, want nil", err)
	}
}

func TestFileSystem_GetFileInfo(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/a/file.txt", "12345")

	info, err := m.GetFileInfo("/a/file.txt")
	if err != nil {
		t.Fatalf("GetFileInfo() error = %v", err)
	}
	if info.Size != 5 || info.IsDir {
		t.Errorf("GetFileInfo() = %+v, want size 5 file", info)
	}

	info, err = m.GetFileInfo("/a")
	if err != nil || !info.IsDir {
		t.Errorf("GetFileInfo(/a) = %+v, %v, want dir", info, err)
	}

	if _, err := m.GetFileInfo("/missing"); err == nil {
		t.Error("GetFileInfo() should fail for missing path")
	}
}

func TestFileSystem_FileHash(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/a.txt", "same")
	m.AddFile("/b.txt", "same")

	h1, _ := m.FileHash("/a.txt")
	h2, _ := m.FileHash("/b.txt")
	if h1 == "" || h1 != h2 {
		t.Errorf("FileHash() = %q, %q, want equal non-empty", h1, h2)
	}
}

func TestFileSystem_WalkDir(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/src/a.go", "")
	m.AddFile("/src/vendor/x.go", "")
	m.AddFile("/src/z.go", "")
	m.AddFile("/other/b.go", "")

	var visited []string
	err := m.WalkDir("/src", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && d.Name() == "vendor" {
			return fs.SkipDir
		}
		visited = append(visited, path)
		return nil
	})
	if err != nil {
		t.Fatalf("WalkDir() error = %v", err)
	}

	want := []string{"/src", "/src/a.go", "/src/z.go"}
	if len(visited) != len(want) {
		t.Fatalf("WalkDir() visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("visited[%d] = %q, want %q", i, visited[i], want[i])
		}
	}
}

func TestFileSystem_WalkDir_MissingRoot(t *testing.T) {
	m := NewFileSystem()

	err := m.WalkDir("/missing", func(_ string, _ fs.DirEntry, err error) error {
		return err
	})
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("WalkDir() error = %v, want os.ErrNotExist", err)
	}
}

func TestFileSystem_Reset(t *testing.T) {
	m := NewFileSystem()
	m.AddFile("/file", "content")
	m.Reset()

	if m.Exists("/file") {
		t.Error("Reset() should clear files")
	}
}

func TestFileSystem_ThreadSafe(t *testing.T) {
	m := NewFileSystem()
	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			m.AddFile("/file", "content")
		}()
		go func() {
			defer wg.Done()
			_, _ = m.ReadFile("/file")
		}()
	}

	wg.Wait()
}
