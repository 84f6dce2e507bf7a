package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/testutil"
	"github.com/felixgeelhaar/devkit/internal/testutil/mocks"
)

func TestParseJobs_Fixtures(t *testing.T) {
	t.Parallel()

	for _, tt := range []struct {
		fixture string
		format  string
	}{
		{fixture: "jobs.yaml", format: "yaml"},
		{fixture: "jobs.toml", format: "toml"},
	} {
		t.Run(tt.format, func(t *testing.T) {
			t.Parallel()

			jobs, err := ParseJobs(testutil.LoadFixture(t, tt.fixture), tt.format)
			require.NoError(t, err)
			require.Len(t, jobs, 2)

			docs := jobs[0]
			assert.Equal(t, "documents", docs.Name)
			assert.Equal(t, `C:\Users\dev\Documents`, docs.Source)
			assert.Equal(t, `\\nas\backup\documents`, docs.Destination)
			assert.True(t, docs.Mirror)
			assert.Equal(t, []string{"node_modules", ".git"}, docs.ExcludeDirs)
			assert.Equal(t, []string{"*.tmp", "Thumbs.db"}, docs.ExcludeFiles)
			assert.Equal(t, 3, docs.RetryCount())
			assert.Equal(t, 10, docs.WaitSeconds())
			assert.Equal(t, 16, docs.Threads)
			assert.Equal(t, `C:\logs\documents.log`, docs.Log)

			photos := jobs[1]
			assert.False(t, photos.Mirror)
			assert.Equal(t, DefaultRetries, photos.RetryCount())
			assert.Equal(t, DefaultWait, photos.WaitSeconds())
		})
	}
}

func TestParseJobs_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		data    string
		format  string
		wantErr string
	}{
		{name: "unknown yaml key", data: "jobs:\n  - name: a\n    sorce: x\n", format: "yaml", wantErr: "failed to parse"},
		{name: "unknown toml key", data: "[[jobs]]\nname = \"a\"\nsorce = \"x\"\n", format: "toml", wantErr: "failed to parse"},
		{name: "no jobs", data: "jobs: []\n", format: "yaml", wantErr: "no backup jobs"},
		{name: "duplicate", data: "jobs:\n  - name: a\n  - name: A\n", format: "yaml", wantErr: "duplicate job name"},
		{name: "format", data: "", format: "json", wantErr: "unsupported"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParseJobs([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFormatForPath(t *testing.T) {
	t.Parallel()

	for path, want := range map[string]string{
		"jobs.yaml":    "yaml",
		"JOBS.YML":     "yaml",
		"backup.toml":  "toml",
		"backup.json":  "",
		"no-extension": "",
	} {
		got, err := FormatForPath(path)
		if want == "" {
			assert.Error(t, err, path)
			continue
		}
		assert.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}
}

func TestLoadJobs(t *testing.T) {
	t.Parallel()

	fs := mocks.NewFileSystem()
	fs.SetFileContent("/etc/devkit/jobs.toml", testutil.LoadFixture(t, "jobs.toml"))

	jobs, err := LoadJobs(fs, "/etc/devkit/jobs.toml")
	require.NoError(t, err)
	assert.Len(t, jobs, 2)

	_, err = LoadJobs(fs, "/etc/devkit/missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func intPtr(v int) *int { return &v }

func TestJob_Validate(t *testing.T) {
	t.Parallel()

	valid := Job{Name: "docs", Source: `C:\Docs`, Destination: `E:\Backup\Docs`}

	tests := []struct {
		name    string
		mutate  func(j *Job)
		wantErr string
	}{
		{name: "valid", mutate: func(*Job) {}},
		{name: "missing name", mutate: func(j *Job) { j.Name = " " }, wantErr: "name is required"},
		{name: "missing source", mutate: func(j *Job) { j.Source = "" }, wantErr: "source"},
		{name: "missing destination", mutate: func(j *Job) { j.Destination = "" }, wantErr: "destination"},
		{name: "same path", mutate: func(j *Job) { j.Destination = `c:\docs\` }, wantErr: "must differ"},
		{name: "quote in path", mutate: func(j *Job) { j.Source = `C:\Docs" /PURGE` }, wantErr: "source"},
		{name: "negative retries", mutate: func(j *Job) { j.Retries = intPtr(-1) }, wantErr: "retries"},
		{name: "too many threads", mutate: func(j *Job) { j.Threads = 129 }, wantErr: "threads"},
		{name: "bad exclude", mutate: func(j *Job) { j.ExcludeDirs = []string{""} }, wantErr: "exclude_dirs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			j := valid
			tt.mutate(&j)
			err := j.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestJob_ZeroRetriesIsExplicit(t *testing.T) {
	t.Parallel()

	j := Job{Retries: intPtr(0), Wait: intPtr(0)}
	assert.Equal(t, 0, j.RetryCount())
	assert.Equal(t, 0, j.WaitSeconds())
}
