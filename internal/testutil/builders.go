package testutil

import (
	"fmt"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// ReleaseBuilder builds GitHub release fixtures.
type ReleaseBuilder struct {
	release ports.Release
	baseURL string
	owner   string
	repo    string
}

// NewReleaseBuilder creates a builder for a release of owner/repo served from
// baseURL (an httptest server URL or "https://api.github.com").
func NewReleaseBuilder(baseURL, owner, repo string) *ReleaseBuilder {
	return &ReleaseBuilder{
		baseURL: baseURL,
		owner:   owner,
		repo:    repo,
		release: ports.Release{
			ID:     1,
			Assets: make([]ports.ReleaseAsset, 0),
		},
	}
}

// WithID sets the release ID.
func (b *ReleaseBuilder) WithID(id int64) *ReleaseBuilder {
	b.release.ID = id
	return b
}

// WithTag sets the tag and, when unset, the name.
func (b *ReleaseBuilder) WithTag(tag string) *ReleaseBuilder {
	b.release.TagName = tag
	if b.release.Name == "" {
		b.release.Name = tag
	}
	return b
}

// WithPrerelease marks the release as a prerelease.
func (b *ReleaseBuilder) WithPrerelease() *ReleaseBuilder {
	b.release.Prerelease = true
	return b
}

// WithAsset adds an asset.
func (b *ReleaseBuilder) WithAsset(id int64, name string, size int64) *ReleaseBuilder {
	b.release.Assets = append(b.release.Assets, ports.ReleaseAsset{
		ID:          id,
		Name:        name,
		Size:        size,
		ContentType: "application/octet-stream",
		BrowserDownloadURL: fmt.Sprintf("https://github.com/%s/%s/releases/download/%s/%s",
			b.owner, b.repo, b.release.TagName, name),
	})
	return b
}

// Build returns the release with URLs derived from the base URL.
func (b *ReleaseBuilder) Build() ports.Release {
	r := b.release
	r.HTMLURL = fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", b.owner, b.repo, r.TagName)
	r.UploadURL = fmt.Sprintf("%s/repos/%s/%s/releases/%d/assets{?name,label}", b.baseURL, b.owner, b.repo, r.ID)
	r.Assets = append([]ports.ReleaseAsset(nil), b.release.Assets...)
	return r
}
