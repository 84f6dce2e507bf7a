// Package pathutil provides config file discovery.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// ConfigFinder provides methods for discovering configuration file locations.
type ConfigFinder struct {
	fs      ports.FileSystem
	env     ports.Environment
	homeDir string
	workDir string
	goos    string
}

// Option configures a ConfigFinder.
type Option func(*ConfigFinder)

// WithHome overrides the home directory (for testing).
func WithHome(home string) Option {
	return func(f *ConfigFinder) {
		f.homeDir = home
	}
}

// WithWorkDir overrides the working directory searched first.
func WithWorkDir(dir string) Option {
	return func(f *ConfigFinder) {
		f.workDir = dir
	}
}

// WithGOOS overrides the platform used to pick platform paths.
func WithGOOS(goos string) Option {
	return func(f *ConfigFinder) {
		f.goos = goos
	}
}

// NewConfigFinder creates a new ConfigFinder.
func NewConfigFinder(fs ports.FileSystem, env ports.Environment, opts ...Option) *ConfigFinder {
	home, _ := os.UserHomeDir()
	wd, _ := os.Getwd()
	f := &ConfigFinder{
		fs:      fs,
		env:     env,
		homeDir: home,
		workDir: wd,
		goos:    runtime.GOOS,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// ConfigSearchOpts defines options for config file discovery.
type ConfigSearchOpts struct {
	// Explicit is a path given on the command line. It must exist.
	Explicit string

	// EnvVar names a variable holding a file path or a directory.
	EnvVar string

	// FileName is looked up in the working directory and appended to
	// directory values of EnvVar.
	FileName string

	// XDGSubpath is the path relative to XDG_CONFIG_HOME.
	XDGSubpath string

	// WindowsPaths are checked on Windows only ($VAR expansion).
	WindowsPaths []string

	// LegacyPaths are checked on any platform (~ expansion).
	LegacyPaths []string
}

// DevkitSearch returns the search options for devkit.yaml.
func DevkitSearch(explicit string) ConfigSearchOpts {
	return ConfigSearchOpts{
		Explicit:     explicit,
		EnvVar:       "DEVKIT_CONFIG",
		FileName:     "devkit.yaml",
		XDGSubpath:   "devkit/devkit.yaml",
		WindowsPaths: []string{"$APPDATA/devkit/devkit.yaml"},
		LegacyPaths:  []string{"~/.devkit.yaml"},
	}
}

// FindConfig returns the first existing candidate, or "" when none exists.
// A missing explicit path is an error rather than a fallthrough.
func (f *ConfigFinder) FindConfig(opts ConfigSearchOpts) (string, error) {
	if opts.Explicit != "" {
		path := f.expandPath(opts.Explicit)
		if !f.fileExists(path) {
			return "", fmt.Errorf("config file not found: %s", opts.Explicit)
		}
		return path, nil
	}

	for _, path := range f.CandidatePaths(opts) {
		if path != "" && f.fileExists(path) {
			return path, nil
		}
	}
	return "", nil
}

// CandidatePaths returns all candidate paths in priority order without
// checking whether they exist. The explicit path is not included.
func (f *ConfigFinder) CandidatePaths(opts ConfigSearchOpts) []string {
	paths := make([]string, 0, 6)

	// 1. Environment variable override
	if opts.EnvVar != "" {
		if envPath := f.getenv(opts.EnvVar); envPath != "" {
			envPath = f.expandPath(envPath)
			if opts.FileName != "" && f.fs.IsDir(envPath) {
				envPath = filepath.Join(envPath, opts.FileName)
			}
			paths = append(paths, envPath)
		}
	}

	// 2. Working directory
	if opts.FileName != "" && f.workDir != "" {
		paths = append(paths, filepath.Join(f.workDir, opts.FileName))
	}

	// 3. XDG_CONFIG_HOME
	if opts.XDGSubpath != "" {
		xdgConfig := f.getenv("XDG_CONFIG_HOME")
		if xdgConfig == "" {
			xdgConfig = filepath.Join(f.homeDir, ".config")
		}
		paths = append(paths, filepath.Join(xdgConfig, opts.XDGSubpath))
	}

	// 4. Platform paths
	if f.goos == "windows" {
		for _, p := range opts.WindowsPaths {
			if f.varsSet(p) {
				paths = append(paths, f.expandPath(p))
			}
		}
	}

	// 5. Legacy paths
	for _, p := range opts.LegacyPaths {
		paths = append(paths, f.expandPath(p))
	}

	return paths
}

func (f *ConfigFinder) getenv(key string) string {
	if f.env == nil {
		return ""
	}
	return f.env.Getenv(key)
}

// expandPath expands ~ and $VAR references. Unset variables expand to "".
func (f *ConfigFinder) expandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") || strings.HasPrefix(path, `~\`) {
		path = filepath.Join(f.homeDir, path[1:])
	}

	return filepath.Clean(os.Expand(path, f.getenv))
}

// varsSet reports whether every $VAR in path has a value.
func (f *ConfigFinder) varsSet(path string) bool {
	ok := true
	os.Expand(path, func(key string) string {
		if f.getenv(key) == "" {
			ok = false
		}
		return ""
	})
	return ok
}

func (f *ConfigFinder) fileExists(path string) bool {
	return f.fs.Exists(path) && !f.fs.IsDir(path)
}
