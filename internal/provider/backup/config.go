// Package backup provides the robocopy backup adapter: job files, command
// construction and exit-code interpretation.
package backup

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// Defaults applied to jobs that leave the field unset. Robocopy's own
// defaults (a million retries, 30s apart) would hang a CI job.
const (
	DefaultRetries = 2
	DefaultWait    = 5
	MaxThreads     = 128
)

// Job is one robocopy backup job.
type Job struct {
	Name         string   `yaml:"name" toml:"name"`
	Source       string   `yaml:"source" toml:"source"`
	Destination  string   `yaml:"destination" toml:"destination"`
	Mirror       bool     `yaml:"mirror,omitempty" toml:"mirror,omitempty"`
	ExcludeDirs  []string `yaml:"exclude_dirs,omitempty" toml:"exclude_dirs,omitempty"`
	ExcludeFiles []string `yaml:"exclude_files,omitempty" toml:"exclude_files,omitempty"`
	Retries      *int     `yaml:"retries,omitempty" toml:"retries,omitempty"`
	Wait         *int     `yaml:"wait,omitempty" toml:"wait,omitempty"`
	Threads      int      `yaml:"threads,omitempty" toml:"threads,omitempty"`
	Log          string   `yaml:"log,omitempty" toml:"log,omitempty"`
}

// File is the on-disk job list.
type File struct {
	Jobs []Job `yaml:"jobs" toml:"jobs"`
}

// RetryCount returns the configured retries or DefaultRetries.
func (j Job) RetryCount() int {
	if j.Retries == nil {
		return DefaultRetries
	}
	return *j.Retries
}

// WaitSeconds returns the configured wait or DefaultWait.
func (j Job) WaitSeconds() int {
	if j.Wait == nil {
		return DefaultWait
	}
	return *j.Wait
}

// Validate checks a job without touching the file system.
func (j Job) Validate() error {
	var errs []error

	if strings.TrimSpace(j.Name) == "" {
		errs = append(errs, errors.New("name is required"))
	}
	if err := validation.ValidateArgumentPath(j.Source); err != nil {
		errs = append(errs, fmt.Errorf("source: %w", err))
	}
	if err := validation.ValidateArgumentPath(j.Destination); err != nil {
		errs = append(errs, fmt.Errorf("destination: %w", err))
	}
	if j.Source != "" && j.Destination != "" && samePath(j.Source, j.Destination) {
		errs = append(errs, errors.New("source and destination must differ"))
	}
	if j.RetryCount() < 0 {
		errs = append(errs, errors.New("retries must not be negative"))
	}
	if j.WaitSeconds() < 0 {
		errs = append(errs, errors.New("wait must not be negative"))
	}
	if j.Threads < 0 || j.Threads > MaxThreads {
		errs = append(errs, fmt.Errorf("threads must be between 0 and %d", MaxThreads))
	}
	for _, d := range j.ExcludeDirs {
		if err := validation.ValidateArgumentPath(d); err != nil {
			errs = append(errs, fmt.Errorf("exclude_dirs: %w", err))
		}
	}
	for _, f := range j.ExcludeFiles {
		if err := validation.ValidateArgumentPath(f); err != nil {
			errs = append(errs, fmt.Errorf("exclude_files: %w", err))
		}
	}
	if j.Log != "" {
		if err := validation.ValidateArgumentPath(j.Log); err != nil {
			errs = append(errs, fmt.Errorf("log: %w", err))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	label := j.Name
	if label == "" {
		label = "<unnamed>"
	}
	return fmt.Errorf("job %s: %w", label, errors.Join(errs...))
}

// samePath compares two robocopy paths. Robocopy targets Windows, so the
// comparison ignores case, separator style and trailing separators.
func samePath(a, b string) bool {
	norm := func(p string) string {
		p = strings.ReplaceAll(strings.TrimSpace(p), `\`, "/")
		p = filepath.ToSlash(filepath.Clean(p))
		return strings.TrimRight(p, "/")
	}
	return strings.EqualFold(norm(a), norm(b))
}

// ParseJobs decodes a job list. format is "yaml" or "toml".
// Unknown keys are rejected so typos do not silently drop settings.
func ParseJobs(data []byte, format string) ([]Job, error) {
	var f File

	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse backup jobs: %w", err)
		}
	case "toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, fmt.Errorf("failed to parse backup jobs: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported job file format %q", format)
	}

	if len(f.Jobs) == 0 {
		return nil, errors.New("no backup jobs defined")
	}

	seen := make(map[string]bool, len(f.Jobs))
	for _, j := range f.Jobs {
		key := strings.ToLower(strings.TrimSpace(j.Name))
		if key != "" && seen[key] {
			return nil, fmt.Errorf("duplicate job name %q", j.Name)
		}
		seen[key] = true
	}

	return f.Jobs, nil
}

// FormatForPath picks the decoder from the file extension.
func FormatForPath(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml", nil
	case ".toml":
		return "toml", nil
	default:
		return "", fmt.Errorf("unsupported job file extension %q (want .yaml, .yml or .toml)", filepath.Ext(path))
	}
}

// LoadJobs reads and decodes a job file.
func LoadJobs(fs ports.FileSystem, path string) ([]Job, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(ports.ExpandPath(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read backup jobs: %w", err)
	}

	return ParseJobs(data, format)
}
