package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSucceeded(t *testing.T) {
	t.Parallel()

	for code := 0; code <= 7; code++ {
		assert.True(t, Succeeded(code), "code %d", code)
	}
	for _, code := range []int{8, 9, 15, 16, 24, -1} {
		assert.False(t, Succeeded(code), "code %d", code)
	}
}

func TestDescribeExit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code int
		want string
	}{
		{0, "no changes"},
		{1, "files copied"},
		{3, "files copied, extra files detected"},
		{7, "files copied, extra files detected, mismatched files detected"},
		{9, "files copied, some files could not be copied"},
		{16, "fatal error"},
		{-1, "unexpected exit code -1"},
		{32, "unexpected exit code 32"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DescribeExit(tt.code), "code %d", tt.code)
	}
}

func TestJob_Arguments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		job      Job
		listOnly bool
		want     string
	}{
		{
			name: "copy with defaults",
			job:  Job{Source: `D:\Photos`, Destination: `E:\Backup\Photos`},
			want: `D:\Photos E:\Backup\Photos /E /R:2 /W:5 /NP`,
		},
		{
			name: "mirror with everything",
			job: Job{
				Source:       `C:\Users\dev\My Documents`,
				Destination:  `\\nas\backup\documents`,
				Mirror:       true,
				ExcludeDirs:  []string{"node_modules", "build output"},
				ExcludeFiles: []string{"*.tmp"},
				Retries:      intPtr(3),
				Wait:         intPtr(10),
				Threads:      16,
				Log:          `C:\logs\docs.log`,
			},
			want: `"C:\Users\dev\My Documents" \\nas\backup\documents /MIR /R:3 /W:10 /MT:16 /XD node_modules "build output" /XF *.tmp /LOG+:C:\logs\docs.log /TEE /NP`,
		},
		{
			name:     "list only",
			job:      Job{Source: `C:\a`, Destination: `C:\b`},
			listOnly: true,
			want:     `C:\a C:\b /E /R:2 /W:5 /NP /L`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.job.Arguments(tt.listOnly))
		})
	}
}
