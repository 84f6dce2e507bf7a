// Package config loads devkit settings from defaults, an optional
// devkit.yaml, environment variables and command-line flags, in that order.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/provider/pathutil"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// Environment variables read by Load.
const (
	EnvTimeout = "DEVKIT_TIMEOUT"
	EnvToken   = "GITHUB_TOKEN"
	EnvOwner   = "GITHUB_OWNER"
	EnvAPIURL  = "GITHUB_API_URL"
)

// Defaults.
const (
	DefaultTail      = 20
	DefaultRemote    = "origin"
	DefaultAPIURL    = "https://api.github.com"
	DefaultLogFormat = "text"
)

// Settings is the resolved devkit configuration.
type Settings struct {
	Verbose   bool          `yaml:"verbose"`
	DryRun    bool          `yaml:"dry_run"`
	Timeout   time.Duration `yaml:"timeout"`
	LogFormat string        `yaml:"log_format"`
	Tail      int           `yaml:"tail"`

	Git     GitSettings     `yaml:"git"`
	Release ReleaseSettings `yaml:"release"`
	Backup  BackupSettings  `yaml:"backup"`

	// Source is the config file the settings were read from, if any.
	Source string `yaml:"-"`
}

// GitSettings configures the git adapter.
type GitSettings struct {
	Executable string `yaml:"executable"`
	Remote     string `yaml:"remote"`
}

// ReleaseSettings configures the release adapter.
type ReleaseSettings struct {
	Owner  string `yaml:"owner"`
	APIURL string `yaml:"api_url"`
	// Token is only ever read from the environment.
	Token string `yaml:"-"`
}

// BackupSettings configures the backup adapter.
type BackupSettings struct {
	Executable string `yaml:"executable"`
	JobsFile   string `yaml:"jobs_file"`
}

// Defaults returns settings with every default applied.
func Defaults() Settings {
	return Settings{
		LogFormat: DefaultLogFormat,
		Tail:      DefaultTail,
		Git:       GitSettings{Remote: DefaultRemote},
		Release:   ReleaseSettings{APIURL: DefaultAPIURL},
	}
}

// Parse decodes YAML on top of the defaults. Unknown keys are rejected.
func Parse(data []byte) (Settings, error) {
	s := Defaults()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, err
	}
	return s, nil
}

// Load resolves settings. explicit is the --config flag value; without it
// the finder searches DEVKIT_CONFIG, the working directory, XDG and home.
// A missing default config is not an error.
func Load(fs ports.FileSystem, env ports.Environment, finder *pathutil.ConfigFinder, explicit string) (Settings, error) {
	path, err := finder.FindConfig(pathutil.DevkitSearch(explicit))
	if err != nil {
		return Settings{}, NewConfigNotFoundError(explicit).WithUnderlying(err)
	}

	s := Defaults()
	if path != "" {
		data, err := fs.ReadFile(path)
		if err != nil {
			return Settings{}, NewConfigNotFoundError(path).WithUnderlying(err)
		}
		s, err = Parse(data)
		if err != nil {
			return Settings{}, NewConfigParseError(path, err)
		}
		s.Source = path
	}

	if err := s.ApplyEnv(env); err != nil {
		return Settings{}, err
	}
	return s, s.Validate()
}

// ApplyEnv overlays environment variables.
func (s *Settings) ApplyEnv(env ports.Environment) error {
	if v := strings.TrimSpace(env.Getenv(EnvTimeout)); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return NewEnvInvalidError(EnvTimeout, v, err)
		}
		s.Timeout = d
	}
	if v := strings.TrimSpace(env.Getenv(EnvOwner)); v != "" {
		s.Release.Owner = v
	}
	if v := strings.TrimSpace(env.Getenv(EnvAPIURL)); v != "" {
		s.Release.APIURL = v
	}
	s.Release.Token = strings.TrimSpace(env.Getenv(EnvToken))
	return nil
}

// Overrides carries flag values; nil fields were not given.
type Overrides struct {
	Verbose   *bool
	DryRun    *bool
	Timeout   *time.Duration
	LogFormat *string
	Tail      *int
}

// ApplyOverrides overlays flags and validates the result.
func (s *Settings) ApplyOverrides(o Overrides) error {
	if o.Verbose != nil {
		s.Verbose = *o.Verbose
	}
	if o.DryRun != nil {
		s.DryRun = *o.DryRun
	}
	if o.Timeout != nil {
		s.Timeout = *o.Timeout
	}
	if o.LogFormat != nil {
		s.LogFormat = *o.LogFormat
	}
	if o.Tail != nil {
		s.Tail = *o.Tail
	}
	return s.Validate()
}

// Validate checks value ranges and formats.
func (s *Settings) Validate() error {
	if s.Timeout < 0 {
		return NewValidationFailedError("timeout", "cannot be negative")
	}
	if s.Tail < 0 {
		return NewValidationFailedError("tail", "cannot be negative")
	}
	if _, err := logging.ParseFormat(s.LogFormat); err != nil {
		return NewValidationFailedError("log_format", err.Error()).
			WithSuggestion("Use text or json.")
	}
	if s.Git.Remote != "" {
		if err := validation.ValidateGitRemoteName(s.Git.Remote); err != nil {
			return NewValidationFailedError("git.remote", err.Error())
		}
	}
	if err := validation.ValidateURL(s.Release.APIURL); err != nil {
		return NewValidationFailedError("release.api_url", err.Error()).
			WithSuggestion(fmt.Sprintf("Set %s or release.api_url to an https URL.", EnvAPIURL))
	}
	return nil
}
