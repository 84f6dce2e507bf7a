// Package github provides a GitHub REST client for releases.
package github

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/felixgeelhaar/devkit/internal/ports"
)

const (
	// DefaultBaseURL is the public GitHub API.
	DefaultBaseURL = "https://api.github.com"

	// maxResponseSize limits JSON and error bodies (2MB).
	maxResponseSize = 2 * 1024 * 1024

	apiVersion = "2022-11-28"
	userAgent  = "devkit-cli"
)

// Client implements ports.ReleaseAPI over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	token   string
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root, e.g. for GitHub Enterprise.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if baseURL != "" {
			c.baseURL = strings.TrimRight(baseURL, "/")
		}
	}
}

// WithToken sets the bearer token.
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.client = client
		}
	}
}

// NewClient creates a new client with secure defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		client: &http.Client{
			Timeout: 5 * time.Minute,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				TLSClientConfig: &tls.Config{
					MinVersion: tls.VersionTLS12,
				},
			},
		},
		baseURL: DefaultBaseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root in use.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// validateBaseURL allows HTTPS, and plain HTTP only for loopback hosts.
func validateBaseURL(baseURL string) error {
	u, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	switch u.Scheme {
	case "https":
		return nil
	case "http":
		host := u.Hostname()
		if host == "localhost" || host == "127.0.0.1" || host == "::1" {
			return nil
		}
		return fmt.Errorf("HTTP is only allowed for localhost (testing); use HTTPS for: %s", baseURL)
	default:
		return fmt.Errorf("unsupported URL scheme %q; use HTTPS", u.Scheme)
	}
}

// CreateRelease creates a release in owner/repo.
func (c *Client) CreateRelease(ctx context.Context, owner, repo string, req ports.CreateReleaseRequest) (*ports.Release, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases", c.baseURL, url.PathEscape(owner), url.PathEscape(repo))
	httpReq, err := c.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	var release ports.Release
	if err := c.doJSON(httpReq, http.StatusCreated, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// UploadAsset uploads content as a named asset using the release's upload URL.
func (c *Client) UploadAsset(ctx context.Context, release *ports.Release, name string, size int64, content io.Reader) (*ports.ReleaseAsset, error) {
	if release == nil || release.UploadURL == "" {
		return nil, fmt.Errorf("release has no upload URL")
	}

	endpoint, err := ExpandUploadURL(release.UploadURL, name)
	if err != nil {
		return nil, err
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, endpoint, content)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/octet-stream")
	httpReq.ContentLength = size

	var asset ports.ReleaseAsset
	if err := c.doJSON(httpReq, http.StatusCreated, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// GetReleaseByTag fetches the release for a tag.
func (c *Client) GetReleaseByTag(ctx context.Context, owner, repo, tag string) (*ports.Release, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/tags/%s",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), url.PathEscape(tag))
	httpReq, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	var release ports.Release
	if err := c.doJSON(httpReq, http.StatusOK, &release); err != nil {
		return nil, err
	}
	return &release, nil
}

// DownloadAsset streams an asset's content into w and returns the bytes written.
// Redirects to the storage host are followed by the HTTP client.
func (c *Client) DownloadAsset(ctx context.Context, owner, repo string, assetID int64, w io.Writer) (int64, error) {
	endpoint := fmt.Sprintf("%s/repos/%s/%s/releases/assets/%d",
		c.baseURL, url.PathEscape(owner), url.PathEscape(repo), assetID)
	httpReq, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, err
	}
	httpReq.Header.Set("Accept", "application/octet-stream")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return 0, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return 0, apiError(resp)
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, fmt.Errorf("downloading asset %d: %w", assetID, err)
	}
	return n, nil
}

// ExpandUploadURL turns a hypermedia upload URL such as
// ".../assets{?name,label}" into a concrete URL for the given asset name.
func ExpandUploadURL(uploadURL, name string) (string, error) {
	if i := strings.Index(uploadURL, "{"); i >= 0 {
		uploadURL = uploadURL[:i]
	}
	u, err := url.Parse(uploadURL)
	if err != nil {
		return "", fmt.Errorf("invalid upload URL: %w", err)
	}
	q := u.Query()
	q.Set("name", name)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	if err := validateBaseURL(endpoint); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-GitHub-Api-Version", apiVersion)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return req, nil
}

func (c *Client) doJSON(req *http.Request, want int, out interface{}) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != want && resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func apiError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	return &ports.APIError{
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
	}
}

// Ensure Client implements ports.ReleaseAPI.
var _ ports.ReleaseAPI = (*Client)(nil)
