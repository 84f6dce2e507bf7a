package pathenv

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/devkit/internal/testutil/mocks"
)

func TestParseWith(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		sep   string
		want  []string
	}{
		{name: "unix", value: "/usr/local/bin:/usr/bin:/bin", sep: ":", want: []string{"/usr/local/bin", "/usr/bin", "/bin"}},
		{name: "windows", value: `C:\Windows;C:\Tools\bin`, sep: ";", want: []string{`C:\Windows`, `C:\Tools\bin`}},
		{name: "drops empty segments", value: "::/bin:: :/usr/bin:", sep: ":", want: []string{"/bin", "/usr/bin"}},
		{name: "empty", value: "", sep: ":", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, ParseWith(tt.value, tt.sep, false).Segments())
		})
	}
}

func TestList_String(t *testing.T) {
	t.Parallel()

	l := ParseWith(`C:\a;;C:\b`, ";", true)
	assert.Equal(t, `C:\a;C:\b`, l.String())
	assert.Equal(t, 2, l.Len())
}

func TestList_Contains(t *testing.T) {
	t.Parallel()

	unix := ParseWith("/usr/local/bin:/usr/bin", ":", false)
	windows := ParseWith(`C:\Tools\Bin;C:\`, ";", true)

	tests := []struct {
		name string
		list List
		dir  string
		want bool
	}{
		{name: "exact", list: unix, dir: "/usr/bin", want: true},
		{name: "trailing separator", list: unix, dir: "/usr/bin/", want: true},
		{name: "case sensitive on unix", list: unix, dir: "/USR/bin", want: false},
		{name: "missing", list: unix, dir: "/opt/bin", want: false},
		{name: "case folded on windows", list: windows, dir: `c:\tools\bin`, want: true},
		{name: "trailing backslash on windows", list: windows, dir: `C:\TOOLS\BIN\`, want: true},
		{name: "forward slashes on windows", list: windows, dir: "c:/tools/bin", want: true},
		{name: "drive root", list: windows, dir: `c:\`, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.list.Contains(tt.dir))
		})
	}
}

func TestList_Add(t *testing.T) {
	t.Parallel()

	base := ParseWith("/usr/bin:/bin", ":", false)

	appended, err := base.Add("/opt/go/bin", false)
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin:/bin:/opt/go/bin", appended.String())

	prepended, err := base.Add("/opt/go/bin", true)
	require.NoError(t, err)
	assert.Equal(t, "/opt/go/bin:/usr/bin:/bin", prepended.String())

	same, err := base.Add("/bin/", false)
	require.ErrorIs(t, err, ErrExists)
	assert.Equal(t, base.String(), same.String())

	_, err = base.Add("  ", false)
	require.ErrorIs(t, err, ErrEmptySegment)

	assert.Equal(t, "/usr/bin:/bin", base.String(), "original list must not change")
}

func TestList_Remove(t *testing.T) {
	t.Parallel()

	base := ParseWith(`C:\a;C:\B;c:\b\;C:\c`, ";", true)

	removed, err := base.Remove(`c:\b`)
	require.NoError(t, err)
	assert.Equal(t, `C:\a;C:\c`, removed.String())

	_, err = base.Remove(`C:\missing`)
	require.ErrorIs(t, err, ErrNotPresent)

	_, err = base.Remove("")
	require.ErrorIs(t, err, ErrEmptySegment)
}

func TestList_Dedupe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		list        List
		want        string
		wantRemoved int
	}{
		{
			name:        "keeps first occurrence",
			list:        ParseWith("/a:/b:/a:/c:/b/", ":", false),
			want:        "/a:/b:/c",
			wantRemoved: 2,
		},
		{
			name:        "case folded",
			list:        ParseWith(`C:\Go\bin;c:\go\BIN;C:\x`, ";", true),
			want:        `C:\Go\bin;C:\x`,
			wantRemoved: 1,
		},
		{
			name: "nothing to do",
			list: ParseWith("/a:/b", ":", false),
			want: "/a:/b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, removed := tt.list.Dedupe()
			assert.Equal(t, tt.want, got.String())
			assert.Equal(t, tt.wantRemoved, removed)
		})
	}
}

func TestList_ZeroValue(t *testing.T) {
	t.Parallel()

	var l List
	added, err := l.Add("/bin", false)
	require.NoError(t, err)
	assert.Equal(t, "/bin", added.String())
	assert.Equal(t, "", l.String())
}

func TestLoadAndApply(t *testing.T) {
	t.Parallel()

	sep := string(os.PathListSeparator)
	env := mocks.NewEnvironment(map[string]string{"PATH": "/usr/bin" + sep + "/bin"})

	l := Load(env)
	require.Equal(t, 2, l.Len())

	l, err := l.Add("/opt/tools", true)
	require.NoError(t, err)
	require.NoError(t, Apply(env, l))

	assert.Equal(t, "/opt/tools"+sep+"/usr/bin"+sep+"/bin", env.Getenv("PATH"))
}

type failingEnv struct{ *mocks.Environment }

func (failingEnv) Setenv(string, string) error { return errors.New("read-only") }

func TestApply_Error(t *testing.T) {
	t.Parallel()

	err := Apply(failingEnv{mocks.NewEnvironment(nil)}, ParseWith("/bin", ":", false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to set PATH")
}
