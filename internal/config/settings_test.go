package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/provider/pathutil"
	"github.com/felixgeelhaar/devkit/internal/testutil"
	"github.com/felixgeelhaar/devkit/internal/testutil/mocks"
)

var (
	home = filepath.FromSlash("/home/dev")
	work = filepath.FromSlash("/work")
)

func setup(vars map[string]string) (*mocks.FileSystem, *mocks.Environment, *pathutil.ConfigFinder) {
	fs := mocks.NewFileSystem()
	env := mocks.NewEnvironment(vars)
	finder := pathutil.NewConfigFinder(fs, env,
		pathutil.WithHome(home),
		pathutil.WithWorkDir(work),
		pathutil.WithGOOS("linux"),
	)
	return fs, env, finder
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	s := Defaults()
	assert.Equal(t, DefaultTail, s.Tail)
	assert.Equal(t, "text", s.LogFormat)
	assert.Equal(t, "origin", s.Git.Remote)
	assert.Equal(t, "https://api.github.com", s.Release.APIURL)
	assert.Zero(t, s.Timeout)
	require.NoError(t, s.Validate())
}

func TestParse_Fixture(t *testing.T) {
	t.Parallel()

	s, err := Parse(testutil.LoadFixture(t, "devkit.yaml"))
	require.NoError(t, err)

	assert.True(t, s.Verbose)
	assert.Equal(t, 90*time.Second, s.Timeout)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, 5, s.Tail)
	assert.Equal(t, "upstream", s.Git.Remote)
	assert.Equal(t, "acme", s.Release.Owner)
	assert.Equal(t, "https://ghe.example.com/api/v3", s.Release.APIURL)
	assert.Equal(t, "~/backup/jobs.yaml", s.Backup.JobsFile)
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		data string
	}{
		{name: "unknown key", data: "verbos: true\n"},
		{name: "bad duration", data: "timeout: soon\n"},
		{name: "bad yaml", data: "git: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Parse([]byte(tt.data))
			require.Error(t, err)
		})
	}
}

func TestParse_EmptyKeepsDefaults(t *testing.T) {
	t.Parallel()

	s, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Defaults(), s)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("no config file", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(nil)
		s, err := Load(fs, env, finder, "")
		require.NoError(t, err)
		assert.Empty(t, s.Source)
		assert.Equal(t, DefaultTail, s.Tail)
	})

	t.Run("working directory config", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(nil)
		path := filepath.Join(work, "devkit.yaml")
		fs.SetFileContent(path, testutil.LoadFixture(t, "devkit.yaml"))

		s, err := Load(fs, env, finder, "")
		require.NoError(t, err)
		assert.Equal(t, path, s.Source)
		assert.Equal(t, "upstream", s.Git.Remote)
	})

	t.Run("environment overrides file", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(map[string]string{
			EnvTimeout: "2m",
			EnvOwner:   "other",
			EnvToken:   " ghp_secret ",
			EnvAPIURL:  "https://api.github.com",
		})
		fs.SetFileContent(filepath.Join(home, ".devkit.yaml"), testutil.LoadFixture(t, "devkit.yaml"))

		s, err := Load(fs, env, finder, "")
		require.NoError(t, err)
		assert.Equal(t, 2*time.Minute, s.Timeout)
		assert.Equal(t, "other", s.Release.Owner)
		assert.Equal(t, "ghp_secret", s.Release.Token)
		assert.Equal(t, "https://api.github.com", s.Release.APIURL)
	})

	t.Run("explicit missing", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(nil)
		_, err := Load(fs, env, finder, "ci.yaml")
		require.Error(t, err)
		assert.True(t, IsUserError(err, ErrCodeConfigNotFound))
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(nil)
		path := filepath.Join(work, "devkit.yaml")
		fs.AddFile(path, "tail: [1, 2]\n")

		_, err := Load(fs, env, finder, "")
		require.Error(t, err)
		ue := GetUserError(err)
		require.NotNil(t, ue)
		assert.Equal(t, ErrCodeConfigParse, ue.Code)
		assert.Equal(t, path, ue.Context)
	})

	t.Run("bad timeout env", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(map[string]string{EnvTimeout: "ten"})
		_, err := Load(fs, env, finder, "")
		require.Error(t, err)
		assert.True(t, IsUserError(err, ErrCodeEnvInvalid))
		assert.Contains(t, err.Error(), EnvTimeout)
	})

	t.Run("invalid api url", func(t *testing.T) {
		t.Parallel()

		fs, env, finder := setup(map[string]string{EnvAPIURL: "ftp://example.com"})
		_, err := Load(fs, env, finder, "")
		require.Error(t, err)
		assert.True(t, IsUserError(err, ErrCodeValidationFailed))
	})
}

func TestSettings_ApplyOverrides(t *testing.T) {
	t.Parallel()

	verbose := true
	timeout := 30 * time.Second
	format := "json"
	tail := 3

	s := Defaults()
	require.NoError(t, s.ApplyOverrides(Overrides{
		Verbose:   &verbose,
		Timeout:   &timeout,
		LogFormat: &format,
		Tail:      &tail,
	}))
	assert.True(t, s.Verbose)
	assert.False(t, s.DryRun)
	assert.Equal(t, timeout, s.Timeout)
	assert.Equal(t, "json", s.LogFormat)
	assert.Equal(t, 3, s.Tail)

	bad := "xml"
	err := s.ApplyOverrides(Overrides{LogFormat: &bad})
	require.Error(t, err)
	assert.Contains(t, GetUserError(err).Format(), "Suggestion: Use text or json.")

	negative := -time.Second
	require.Error(t, s.ApplyOverrides(Overrides{LogFormat: &format, Timeout: &negative}))
}

func TestUserError(t *testing.T) {
	t.Parallel()

	cause := errors.New("permission denied")
	err := NewConfigParseError("/etc/devkit.yaml", cause)

	assert.Equal(t, "failed to parse configuration file (at /etc/devkit.yaml): permission denied", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, &UserError{Code: ErrCodeConfigParse})
	assert.NotErrorIs(t, err, &UserError{Code: ErrCodeConfigNotFound})

	formatted := err.Format()
	assert.Contains(t, formatted, "[CONFIG_PARSE] failed to parse configuration file")
	assert.Contains(t, formatted, "Location: /etc/devkit.yaml")
	assert.Contains(t, formatted, "Suggestion: Check your YAML syntax")

	assert.Nil(t, GetUserError(cause))
	assert.False(t, IsUserError(cause, ErrCodeConfigParse))
}
