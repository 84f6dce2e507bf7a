// Package release provides the GitHub release tool adapter: create a release
// with one asset, or download an asset from a tagged release.
package release

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Code is a release adapter return code.
type Code int

// Release adapter codes.
const (
	Success          Code = 0
	InvalidParameter Code = -1
	CreateFailed     Code = -2
	UploadFailed     Code = -3
	DownloadFailed   Code = -4
	NotFound         Code = -5
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidParameter:
		return "InvalidParameter"
	case CreateFailed:
		return "CreateFailed"
	case UploadFailed:
		return "UploadFailed"
	case DownloadFailed:
		return "DownloadFailed"
	case NotFound:
		return "NotFound"
	default:
		return "Unknown"
	}
}

// Environment variables read by the adapter.
const (
	EnvOwner = "GITHUB_OWNER"
	EnvToken = "GITHUB_TOKEN"
)

// RepoResolver infers "owner/name" from a local clone.
type RepoResolver interface {
	RepoSlug(dir, remote string) (string, error)
}

// Provider talks to the GitHub release API.
type Provider struct {
	api      ports.ReleaseAPI
	fs       ports.FileSystem
	env      ports.Environment
	resolver RepoResolver
	repoDir  string
	remote   string
	owner    string
	dryRun   bool
}

// Option configures a Provider.
type Option func(*Provider)

// WithDryRun validates and reports requests without sending them.
func WithDryRun(dryRun bool) Option {
	return func(p *Provider) {
		p.dryRun = dryRun
	}
}

// WithRepoResolver infers the repository from the clone at dir when a request
// names none.
func WithRepoResolver(r RepoResolver, dir, remote string) Option {
	return func(p *Provider) {
		p.resolver = r
		p.repoDir = dir
		p.remote = remote
	}
}

// WithDefaultOwner sets the owner used for a bare repository name when
// GITHUB_OWNER is unset.
func WithDefaultOwner(owner string) Option {
	return func(p *Provider) {
		p.owner = strings.TrimSpace(owner)
	}
}

// NewProvider creates a new release provider.
func NewProvider(api ports.ReleaseAPI, fs ports.FileSystem, env ports.Environment, opts ...Option) *Provider {
	p := &Provider{
		api:     api,
		fs:      fs,
		env:     env,
		repoDir: ".",
		remote:  "origin",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "release"
}

// resolveRepo returns owner and name for repo. A bare name takes its owner
// from GITHUB_OWNER; an empty repo is inferred from the git remote.
func (p *Provider) resolveRepo(repo string) (string, string, error) {
	repo = strings.TrimSpace(repo)
	if repo == "" {
		if p.resolver == nil {
			return "", "", errors.New("repository is required (owner/name)")
		}
		slug, err := p.resolver.RepoSlug(p.repoDir, p.remote)
		if err != nil {
			return "", "", fmt.Errorf("cannot infer repository: %w", err)
		}
		repo = slug
	}

	if !strings.Contains(repo, "/") {
		owner := ""
		if p.env != nil {
			owner = strings.TrimSpace(p.env.Getenv(EnvOwner))
		}
		if owner == "" {
			owner = p.owner
		}
		if owner == "" {
			return "", "", fmt.Errorf("repository %q has no owner and %s is not set", repo, EnvOwner)
		}
		repo = owner + "/" + repo
	}

	owner, name, _ := strings.Cut(repo, "/")
	return owner, name, validateRepo(repo)
}

// apiResult converts an API error into a result with the given code.
// A 404 maps to NotFound when notFound is set.
func apiResult(err error, code Code, notFound bool) result.Result {
	var apiErr *ports.APIError
	if errors.As(err, &apiErr) {
		if notFound && apiErr.StatusCode == http.StatusNotFound {
			code = NotFound
		}
		return result.APIFailure(int(code), apiErr.StatusCode, apiErr.Body)
	}
	return result.Fail(int(code), err.Error())
}

func invalid(err error) result.Result {
	return result.Invalid(int(InvalidParameter), err.Error())
}

func logger(ctx context.Context) ports.Logger {
	return ports.LoggerFromContextOr(ctx, logging.NewNopLogger())
}
