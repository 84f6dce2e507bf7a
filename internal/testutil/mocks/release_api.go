package mocks

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

// ReleaseAPI is an in-memory ports.ReleaseAPI.
type ReleaseAPI struct {
	mu       sync.Mutex
	releases map[string]*ports.Release
	content  map[int64][]byte
	nextID   int64

	// CreateErr, UploadErr and DownloadErr are returned by the matching
	// call when set.
	CreateErr   error
	UploadErr   error
	DownloadErr error

	Created  []ports.CreateReleaseRequest
	Uploaded map[string][]byte
}

// NewReleaseAPI creates an empty mock.
func NewReleaseAPI() *ReleaseAPI {
	return &ReleaseAPI{
		releases: make(map[string]*ports.Release),
		content:  make(map[int64][]byte),
		Uploaded: make(map[string][]byte),
		nextID:   1,
	}
}

// AddRelease registers a release under owner/repo.
func (m *ReleaseAPI) AddRelease(owner, repo string, release ports.Release) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r := release
	m.releases[releaseKey(owner, repo, release.TagName)] = &r
}

// SetAssetContent sets what DownloadAsset streams for an asset ID.
func (m *ReleaseAPI) SetAssetContent(assetID int64, content []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.content[assetID] = content
}

// CreateRelease records the request and stores a new release.
func (m *ReleaseAPI) CreateRelease(_ context.Context, owner, repo string, req ports.CreateReleaseRequest) (*ports.Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Created = append(m.Created, req)
	if m.CreateErr != nil {
		return nil, m.CreateErr
	}

	r := &ports.Release{
		ID:         m.nextID,
		TagName:    req.TagName,
		Name:       req.Name,
		Draft:      req.Draft,
		Prerelease: req.Prerelease,
		HTMLURL:    fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", owner, repo, req.TagName),
		UploadURL:  fmt.Sprintf("https://uploads.github.com/repos/%s/%s/releases/%d/assets{?name,label}", owner, repo, m.nextID),
		Assets:     []ports.ReleaseAsset{},
	}
	m.nextID++
	m.releases[releaseKey(owner, repo, req.TagName)] = r
	return r, nil
}

// UploadAsset reads content and attaches it to the release.
func (m *ReleaseAPI) UploadAsset(_ context.Context, release *ports.Release, name string, size int64, content io.Reader) (*ports.ReleaseAsset, error) {
	data, err := io.ReadAll(content)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if int64(len(data)) != size {
		return nil, fmt.Errorf("size mismatch: declared %d, read %d", size, len(data))
	}

	asset := ports.ReleaseAsset{ID: m.nextID, Name: name, Size: size, ContentType: "application/octet-stream"}
	m.nextID++
	m.Uploaded[name] = data
	m.content[asset.ID] = data
	release.Assets = append(release.Assets, asset)
	return &asset, nil
}

// GetReleaseByTag returns a registered release or a 404 APIError.
func (m *ReleaseAPI) GetReleaseByTag(_ context.Context, owner, repo, tag string) (*ports.Release, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.releases[releaseKey(owner, repo, tag)]
	if !ok {
		return nil, &ports.APIError{StatusCode: http.StatusNotFound, Body: `{"message":"Not Found"}`}
	}
	c := *r
	c.Assets = append([]ports.ReleaseAsset(nil), r.Assets...)
	return &c, nil
}

// DownloadAsset writes the stored content for assetID. With DownloadErr set
// it writes the first half of the content before failing, like a dropped
// connection.
func (m *ReleaseAPI) DownloadAsset(_ context.Context, _, _ string, assetID int64, w io.Writer) (int64, error) {
	m.mu.Lock()
	data, ok := m.content[assetID]
	err := m.DownloadErr
	m.mu.Unlock()

	if err != nil {
		n, _ := w.Write(data[:len(data)/2])
		return int64(n), err
	}
	if !ok {
		return 0, &ports.APIError{StatusCode: http.StatusNotFound}
	}
	n, err := w.Write(data)
	return int64(n), err
}

func releaseKey(owner, repo, tag string) string {
	return owner + "/" + repo + "@" + tag
}

// Ensure ReleaseAPI implements ports.ReleaseAPI.
var _ ports.ReleaseAPI = (*ReleaseAPI)(nil)
