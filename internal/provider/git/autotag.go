package git

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
)

// BuildType selects the prerelease channel of an automatic tag.
type BuildType string

// Build types.
const (
	BuildDev   BuildType = "DEV"
	BuildStage BuildType = "STAGE"
	BuildProd  BuildType = "PROD"
)

var buildTypeAliases = map[string]BuildType{
	"DEV":         BuildDev,
	"DEVELOPMENT": BuildDev,
	"STAGE":       BuildStage,
	"STAGING":     BuildStage,
	"PROD":        BuildProd,
	"PRODUCTION":  BuildProd,
}

var upper = cases.Upper(language.Und)

// ParseBuildType parses a build type case-insensitively.
func ParseBuildType(s string) (BuildType, error) {
	if bt, ok := buildTypeAliases[upper.String(strings.TrimSpace(s))]; ok {
		return bt, nil
	}
	return "", fmt.Errorf("unknown build type %q (want DEV, STAGE or PROD)", s)
}

// prerelease returns the identifier used in the tag suffix.
func (b BuildType) prerelease() string {
	switch b {
	case BuildDev:
		return "dev"
	case BuildStage:
		return "rc"
	default:
		return ""
	}
}

// NextVersion computes the tag an automatic build of type bt should create,
// given every existing tag. Non-semver tags are ignored.
//
// The target version is the newest pending prerelease base above the latest
// release, or the latest release with its patch bumped. DEV and STAGE append
// -dev.N and -rc.N, numbering after the highest existing N for that target.
// The "v" prefix follows the latest tag seen; with no tags it is used.
func NextVersion(tags []string, bt BuildType) string {
	latestRelease := "v0.0.0"
	pending := ""
	prefix := "v"
	newest := ""

	for _, raw := range tags {
		v, ok := canonical(raw)
		if !ok {
			continue
		}
		if newest == "" || semver.Compare(v, newest) > 0 {
			newest = v
			prefix = ""
			if strings.HasPrefix(strings.TrimSpace(raw), "v") {
				prefix = "v"
			}
		}
		if semver.Prerelease(v) == "" {
			if semver.Compare(v, latestRelease) > 0 {
				latestRelease = v
			}
		}
	}

	for _, raw := range tags {
		v, ok := canonical(raw)
		if !ok || semver.Prerelease(v) == "" {
			continue
		}
		base := baseVersion(v)
		if semver.Compare(base, latestRelease) > 0 && (pending == "" || semver.Compare(base, pending) > 0) {
			pending = base
		}
	}

	target := pending
	if target == "" {
		target = bumpPatch(latestRelease)
	}

	id := bt.prerelease()
	if id == "" {
		return prefix + strings.TrimPrefix(target, "v")
	}

	n := 0
	for _, raw := range tags {
		v, ok := canonical(raw)
		if !ok || baseVersion(v) != target {
			continue
		}
		if k, ok := prereleaseNumber(v, id); ok && k > n {
			n = k
		}
	}
	return fmt.Sprintf("%s%s-%s.%d", prefix, strings.TrimPrefix(target, "v"), id, n+1)
}

// canonical returns the "vMAJOR.MINOR.PATCH[-pre]" form of a tag.
func canonical(raw string) (string, bool) {
	v := strings.TrimSpace(raw)
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", false
	}
	// Short forms like v1.2 are not release tags.
	if strings.Count(strings.SplitN(strings.TrimPrefix(v, "v"), "-", 2)[0], ".") != 2 {
		return "", false
	}
	return strings.TrimSuffix(semver.Canonical(v), semver.Build(v)), true
}

func baseVersion(v string) string {
	return strings.TrimSuffix(v, semver.Prerelease(v))
}

func bumpPatch(v string) string {
	parts := strings.Split(strings.TrimPrefix(baseVersion(v), "v"), ".")
	patch, _ := strconv.Atoi(parts[2])
	return fmt.Sprintf("v%s.%s.%d", parts[0], parts[1], patch+1)
}

// prereleaseNumber extracts N from "-<id>.N".
func prereleaseNumber(v, id string) (int, bool) {
	pre := strings.TrimPrefix(semver.Prerelease(v), "-")
	rest, ok := strings.CutPrefix(pre, id+".")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}

// AutoTag creates the next tag for a build of the given type and optionally
// pushes it to the default remote. The created tag is the first output line.
func (p *Provider) AutoTag(ctx context.Context, dir, buildType string, push bool) result.Result {
	bt, err := ParseBuildType(buildType)
	if err != nil {
		return invalid(err)
	}

	listed := p.Tags(ctx, dir)
	if listed.IsFail() {
		return listed
	}

	tag := NextVersion(listed.Output, bt)
	message := fmt.Sprintf("%s build %s", bt, tag)

	created := p.SetTag(ctx, dir, tag, message)
	if created.IsFail() {
		return created
	}

	out := result.Success(tag).WithLines(created.Output...)
	if !push {
		return out
	}

	pushed := p.PushTag(ctx, dir, DefaultRemote, tag)
	if pushed.IsFail() {
		return pushed.WithLines(fmt.Sprintf("tag %s was created locally", tag))
	}
	return out.WithLines(toolLines(pushed)...)
}
