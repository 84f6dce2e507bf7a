package ports

import (
	"context"
	"fmt"
	"io"
)

// Release is a GitHub release.
type Release struct {
	ID         int64          `json:"id"`
	TagName    string         `json:"tag_name"`
	Name       string         `json:"name"`
	HTMLURL    string         `json:"html_url"`
	UploadURL  string         `json:"upload_url"`
	Draft      bool           `json:"draft"`
	Prerelease bool           `json:"prerelease"`
	Assets     []ReleaseAsset `json:"assets"`
}

// ReleaseAsset is a file attached to a release.
type ReleaseAsset struct {
	ID                 int64  `json:"id"`
	Name               string `json:"name"`
	Size               int64  `json:"size"`
	ContentType        string `json:"content_type"`
	BrowserDownloadURL string `json:"browser_download_url"`
}

// CreateReleaseRequest is the body of POST /repos/{owner}/{repo}/releases.
type CreateReleaseRequest struct {
	TagName         string `json:"tag_name"`
	TargetCommitish string `json:"target_commitish,omitempty"`
	Name            string `json:"name,omitempty"`
	Body            string `json:"body,omitempty"`
	Draft           bool   `json:"draft"`
	Prerelease      bool   `json:"prerelease"`
}

// APIError is a non-success HTTP response from the GitHub API.
type APIError struct {
	StatusCode int
	Body       string
}

// Error implements error.
func (e *APIError) Error() string {
	return fmt.Sprintf("GitHub API returned status %d", e.StatusCode)
}

// ReleaseAPI is the subset of the GitHub REST API used for releases.
type ReleaseAPI interface {
	// CreateRelease creates a release in owner/repo.
	CreateRelease(ctx context.Context, owner, repo string, req CreateReleaseRequest) (*Release, error)

	// UploadAsset uploads content as a named asset of the release.
	UploadAsset(ctx context.Context, release *Release, name string, size int64, content io.Reader) (*ReleaseAsset, error)

	// GetReleaseByTag fetches the release for a tag.
	GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*Release, error)

	// DownloadAsset streams an asset's content into w.
	DownloadAsset(ctx context.Context, owner, repo string, assetID int64, w io.Writer) (int64, error)
}
