// Package search finds files and folders by base-name glob.
package search

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/text/cases"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// Code is a search adapter return code.
type Code int

// Search adapter codes.
const (
	Success          Code = 0
	InvalidParameter Code = -1
	NothingFound     Code = -2
	SearchFailed     Code = -3
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidParameter:
		return "InvalidParameter"
	case NothingFound:
		return "NothingFound"
	case SearchFailed:
		return "SearchFailed"
	default:
		return "Unknown"
	}
}

// Kind restricts which entries match.
type Kind string

// Entry kinds.
const (
	KindAny  Kind = "any"
	KindFile Kind = "file"
	KindDir  Kind = "dir"
)

// ParseKind parses a kind name; empty means any.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindAny:
		return KindAny, nil
	case KindFile, "files":
		return KindFile, nil
	case KindDir, "dirs", "folder", "folders":
		return KindDir, nil
	default:
		return KindAny, fmt.Errorf("unknown kind %q (want file, dir or any)", s)
	}
}

// Query describes a search.
type Query struct {
	Root    string
	Pattern string
	Kind    Kind
	// MaxDepth limits how far below Root to descend; 0 means unlimited.
	MaxDepth int
	// MaxResults stops the walk after that many matches; 0 means unlimited.
	MaxResults      int
	CaseInsensitive bool
}

// Provider walks a file system looking for matches.
type Provider struct {
	fs ports.FileSystem
}

// NewProvider creates a new search provider.
func NewProvider(fs ports.FileSystem) *Provider {
	return &Provider{fs: fs}
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "search"
}

var errLimit = errors.New("result limit reached")

// Find returns matching paths in walk order, one per output line.
func (p *Provider) Find(ctx context.Context, q Query) result.Result {
	if strings.TrimSpace(q.Root) == "" {
		return result.Invalid(int(InvalidParameter), "search root is required")
	}
	if err := validation.ValidateGlobPattern(q.Pattern); err != nil {
		return result.Invalid(int(InvalidParameter), fmt.Sprintf("pattern: %v", err))
	}
	if q.MaxDepth < 0 || q.MaxResults < 0 {
		return result.Invalid(int(InvalidParameter), "max depth and max results cannot be negative")
	}
	if !p.fs.IsDir(q.Root) {
		return result.Invalid(int(InvalidParameter), fmt.Sprintf("search root %s is not a directory", q.Root))
	}
	kind := q.Kind
	if kind == "" {
		kind = KindAny
	}

	log := ports.LoggerFromContextOr(ctx, logging.NewNopLogger()).With(
		ports.F("root", q.Root),
		ports.F("pattern", q.Pattern),
	)

	folder := cases.Fold()
	pattern := q.Pattern
	if q.CaseInsensitive {
		pattern = folder.String(pattern)
	}

	root := filepath.Clean(ports.ExpandPath(q.Root))
	matches := make([]string, 0)
	skipped := 0

	err := p.fs.WalkDir(root, func(walked string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if walked == root {
				return err
			}
			skipped++
			log.Debug(ctx, "skipping unreadable entry", ports.F("path", walked), ports.Err(err))
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if walked == root {
			return nil
		}

		depth := depthOf(root, walked)
		if q.MaxDepth > 0 && depth > q.MaxDepth {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if !kindMatches(kind, d.IsDir()) {
			return nil
		}

		name := d.Name()
		if q.CaseInsensitive {
			name = folder.String(name)
		}
		if ok, _ := path.Match(pattern, name); !ok {
			return nil
		}

		matches = append(matches, walked)
		if q.MaxResults > 0 && len(matches) >= q.MaxResults {
			return errLimit
		}
		return nil
	})

	if err != nil && !errors.Is(err, errLimit) {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return result.Canceled(err, matches)
		}
		log.Error(ctx, "search failed", ports.Err(err))
		return result.Fail(int(SearchFailed), fmt.Sprintf("search failed: %v", err))
	}

	log.Debug(ctx, "search finished", ports.F("matches", len(matches)), ports.F("skipped", skipped))

	if len(matches) == 0 {
		return result.Fail(int(NothingFound), fmt.Sprintf("nothing matching %q under %s", q.Pattern, q.Root))
	}
	return result.FromExit(int(Success), matches)
}

func kindMatches(kind Kind, isDir bool) bool {
	switch kind {
	case KindFile:
		return !isDir
	case KindDir:
		return isDir
	default:
		return true
	}
}

// depthOf counts path elements of p below root.
func depthOf(root, p string) int {
	rel, err := filepath.Rel(root, p)
	if err != nil || rel == "." {
		return 0
	}
	return strings.Count(filepath.ToSlash(rel), "/") + 1
}
