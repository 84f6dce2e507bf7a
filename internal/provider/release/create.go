package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// CreateRequest describes a release to publish.
type CreateRequest struct {
	Repo       string
	Tag        string
	Branch     string
	AssetPath  string
	Name       string
	Notes      string
	Draft      bool
	Prerelease bool
}

func validateRepo(repo string) error {
	return validation.ValidateRepoSlug(repo)
}

func (r CreateRequest) validate(fs ports.FileSystem) error {
	var errs []error
	if err := validation.ValidateGitTag(r.Tag); err != nil {
		errs = append(errs, err)
	}
	if strings.TrimSpace(r.Branch) == "" {
		errs = append(errs, errors.New("branch is required"))
	} else if err := validation.ValidateGitBranch(r.Branch); err != nil {
		errs = append(errs, err)
	}
	switch {
	case strings.TrimSpace(r.AssetPath) == "":
		errs = append(errs, errors.New("asset path is required"))
	case !fs.Exists(r.AssetPath) || fs.IsDir(r.AssetPath):
		errs = append(errs, fmt.Errorf("asset %s does not exist or is not a file", r.AssetPath))
	default:
		if err := validation.ValidateAssetName(filepath.Base(r.AssetPath)); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Create publishes a release for the tag and uploads one asset to it.
func (p *Provider) Create(ctx context.Context, req CreateRequest) result.Result {
	owner, repo, err := p.resolveRepo(req.Repo)
	if err != nil {
		return invalid(err)
	}
	if err := req.validate(p.fs); err != nil {
		return invalid(err)
	}

	log := logger(ctx).With(ports.F("repo", owner+"/"+repo), ports.F("tag", req.Tag))
	assetName := filepath.Base(req.AssetPath)

	info, err := p.fs.GetFileInfo(req.AssetPath)
	if err != nil {
		return invalid(fmt.Errorf("cannot stat asset: %w", err))
	}

	body := ports.CreateReleaseRequest{
		TagName:         req.Tag,
		TargetCommitish: req.Branch,
		Name:            req.Name,
		Body:            req.Notes,
		Draft:           req.Draft,
		Prerelease:      req.Prerelease,
	}
	if body.Name == "" {
		body.Name = req.Tag
	}

	if p.dryRun {
		log.Info(ctx, "dry run", ports.F("asset", assetName))
		return result.Success(fmt.Sprintf("would create release %s in %s/%s from %s", req.Tag, owner, repo, req.Branch)).
			WithLines(
				fmt.Sprintf("name: %s, draft: %t, prerelease: %t", body.Name, body.Draft, body.Prerelease),
				fmt.Sprintf("would upload %s (%d bytes)", assetName, info.Size),
			)
	}

	release, err := p.api.CreateRelease(ctx, owner, repo, body)
	if err != nil {
		log.Error(ctx, "create release failed", ports.Err(err))
		return apiResult(err, CreateFailed, false)
	}
	log.Info(ctx, "release created", ports.F("id", release.ID))

	f, err := p.fs.Open(req.AssetPath)
	if err != nil {
		return result.Fail(int(UploadFailed), fmt.Sprintf("cannot open asset: %v", err)).
			WithLines(fmt.Sprintf("release %s was created without its asset", req.Tag))
	}
	defer func() { _ = f.Close() }()

	asset, err := p.api.UploadAsset(ctx, release, assetName, info.Size, f)
	if err != nil {
		log.Error(ctx, "asset upload failed", ports.F("asset", assetName), ports.Err(err))
		return apiResult(err, UploadFailed, false).
			WithLines(fmt.Sprintf("release %s was created without its asset", req.Tag))
	}

	res := result.Success(fmt.Sprintf("created release %s", release.TagName))
	if release.HTMLURL != "" {
		res = res.WithLines(release.HTMLURL)
	}
	return res.WithLines(fmt.Sprintf("uploaded %s (%d bytes)", asset.Name, asset.Size))
}
