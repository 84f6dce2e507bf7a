// Package pathenv manipulates PATH-style search lists as explicit values.
// Nothing in this package touches the process environment except Load and
// Apply, which go through ports.Environment.
package pathenv

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strings"

	"golang.org/x/text/cases"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Variable is the environment variable holding the search list.
const Variable = "PATH"

// Errors returned by list operations.
var (
	ErrEmptySegment = errors.New("path segment is empty")
	ErrExists       = errors.New("path segment already present")
	ErrNotPresent   = errors.New("path segment not present")
)

// List is an ordered PATH value. The zero value is an empty list using the
// host separator and comparison rules.
type List struct {
	segments []string
	sep      string
	fold     bool
	set      bool
}

// Parse splits value with the host list separator. Windows lists compare
// case-insensitively.
func Parse(value string) List {
	return ParseWith(value, string(os.PathListSeparator), runtime.GOOS == "windows")
}

// ParseWith splits value with sep. fold makes comparisons case-insensitive.
// Empty segments are dropped.
func ParseWith(value, sep string, fold bool) List {
	l := List{sep: sep, fold: fold, set: true}
	for _, s := range strings.Split(value, sep) {
		if s = strings.TrimSpace(s); s != "" {
			l.segments = append(l.segments, s)
		}
	}
	return l
}

func (l List) separator() string {
	if !l.set {
		return string(os.PathListSeparator)
	}
	return l.sep
}

func (l List) folds() bool {
	if !l.set {
		return runtime.GOOS == "windows"
	}
	return l.fold
}

func (l List) with(segments []string) List {
	return List{segments: segments, sep: l.separator(), fold: l.folds(), set: true}
}

// Segments returns a copy of the segments in order.
func (l List) Segments() []string {
	out := make([]string, len(l.segments))
	copy(out, l.segments)
	return out
}

// Len returns the number of segments.
func (l List) Len() int {
	return len(l.segments)
}

// String joins the segments with the list separator.
func (l List) String() string {
	return strings.Join(l.segments, l.separator())
}

// key normalizes a segment for comparison.
func (l List) key(dir string) string {
	dir = strings.TrimSpace(dir)
	trimmed := strings.TrimRight(dir, `/\`)
	switch {
	case trimmed == "":
		// "/" stays root
	case strings.HasSuffix(trimmed, ":"):
		// "C:\" keeps its drive root
	default:
		dir = trimmed
	}
	if l.folds() {
		dir = strings.ReplaceAll(dir, "/", `\`)
		return cases.Fold().String(dir)
	}
	return dir
}

// Contains reports whether dir is in the list.
func (l List) Contains(dir string) bool {
	return l.index(dir) >= 0
}

func (l List) index(dir string) int {
	k := l.key(dir)
	for i, s := range l.segments {
		if l.key(s) == k {
			return i
		}
	}
	return -1
}

// Add returns a list with dir appended, or prepended when prepend is set.
// Adding a segment that is already present returns the list unchanged
// together with ErrExists.
func (l List) Add(dir string, prepend bool) (List, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return l, ErrEmptySegment
	}
	if l.Contains(dir) {
		return l, fmt.Errorf("%w: %s", ErrExists, dir)
	}

	out := make([]string, 0, len(l.segments)+1)
	if prepend {
		out = append(out, dir)
		out = append(out, l.segments...)
	} else {
		out = append(out, l.segments...)
		out = append(out, dir)
	}
	return l.with(out), nil
}

// Remove returns a list without any occurrence of dir.
func (l List) Remove(dir string) (List, error) {
	if strings.TrimSpace(dir) == "" {
		return l, ErrEmptySegment
	}
	k := l.key(dir)
	out := make([]string, 0, len(l.segments))
	for _, s := range l.segments {
		if l.key(s) != k {
			out = append(out, s)
		}
	}
	if len(out) == len(l.segments) {
		return l, fmt.Errorf("%w: %s", ErrNotPresent, dir)
	}
	return l.with(out), nil
}

// Dedupe keeps the first occurrence of every segment and reports how many
// duplicates were dropped.
func (l List) Dedupe() (List, int) {
	seen := make(map[string]bool, len(l.segments))
	out := make([]string, 0, len(l.segments))
	for _, s := range l.segments {
		k := l.key(s)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return l.with(out), len(l.segments) - len(out)
}

// Load reads the search list from env.
func Load(env ports.Environment) List {
	return Parse(env.Getenv(Variable))
}

// Apply writes l back to env.
func Apply(env ports.Environment, l List) error {
	if err := env.Setenv(Variable, l.String()); err != nil {
		return fmt.Errorf("failed to set %s: %w", Variable, err)
	}
	return nil
}
