package git

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/ini.v1"
)

// githubRemotePattern extracts owner and name from GitHub remote URLs:
// https://github.com/o/n(.git), git@github.com:o/n(.git), ssh://git@github.com/o/n(.git).
var githubRemotePattern = regexp.MustCompile(`github\.com[:/]([A-Za-z0-9-]+)/([A-Za-z0-9_.-]+?)(?:\.git)?/?$`)

// gitDir locates the git directory of a work tree, following the
// "gitdir:" indirection used by worktrees and submodules.
func (p *Provider) gitDir(dir string) (string, error) {
	candidate := filepath.Join(dir, ".git")
	if p.fs.IsDir(candidate) {
		return candidate, nil
	}

	data, err := p.fs.ReadFile(candidate)
	if err != nil {
		return "", fmt.Errorf("not a git repository: %s", dir)
	}

	target, ok := strings.CutPrefix(strings.TrimSpace(string(data)), "gitdir:")
	if !ok {
		return "", fmt.Errorf("malformed .git file in %s", dir)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(dir, target)
	}
	return target, nil
}

// RemoteURL reads the URL of remote from the repository config without
// running git.
func (p *Provider) RemoteURL(dir, remote string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}

	gd, err := p.gitDir(dir)
	if err != nil {
		return "", err
	}

	data, err := p.fs.ReadFile(filepath.Join(gd, "config"))
	if err != nil {
		return "", fmt.Errorf("failed to read git config: %w", err)
	}

	cfg, err := ini.LoadSources(ini.LoadOptions{
		Insensitive:         false,
		IgnoreInlineComment: true,
		AllowBooleanKeys:    true,
	}, data)
	if err != nil {
		return "", fmt.Errorf("failed to parse git config: %w", err)
	}

	section, err := cfg.GetSection(fmt.Sprintf("remote %q", remote))
	if err != nil {
		return "", fmt.Errorf("remote %q not configured", remote)
	}

	url := strings.TrimSpace(section.Key("url").String())
	if url == "" {
		return "", fmt.Errorf("remote %q has no url", remote)
	}
	return url, nil
}

// ParseRepoSlug returns "owner/name" for a GitHub remote URL.
func ParseRepoSlug(remoteURL string) (string, error) {
	m := githubRemotePattern.FindStringSubmatch(strings.TrimSpace(remoteURL))
	if m == nil {
		return "", fmt.Errorf("not a GitHub remote: %s", remoteURL)
	}
	return m[1] + "/" + m[2], nil
}

// RepoSlug infers "owner/name" from the remote of the repository at dir.
func (p *Provider) RepoSlug(dir, remote string) (string, error) {
	url, err := p.RemoteURL(dir, remote)
	if err != nil {
		return "", err
	}
	return ParseRepoSlug(url)
}
