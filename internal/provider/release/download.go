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

// partSuffix marks an asset that is still being downloaded.
const partSuffix = ".part"

// DownloadRequest names an asset of a tagged release and where to put it.
type DownloadRequest struct {
	Repo      string
	Tag       string
	AssetName string
	Dest      string
}

func (r DownloadRequest) target() (string, error) {
	dest := r.Dest
	if strings.TrimSpace(dest) == "" {
		dest = "."
	}
	target := filepath.Join(dest, r.AssetName)
	if err := validation.ValidatePathWithBase(target, dest); err != nil {
		return "", err
	}
	return target, nil
}

// Download fetches an asset of the release for Tag into Dest and reports its
// sha256.
func (p *Provider) Download(ctx context.Context, req DownloadRequest) result.Result {
	owner, repo, err := p.resolveRepo(req.Repo)
	if err != nil {
		return invalid(err)
	}

	var errs []error
	if err := validation.ValidateGitTag(req.Tag); err != nil {
		errs = append(errs, err)
	}
	if err := validation.ValidateAssetName(req.AssetName); err != nil {
		errs = append(errs, err)
	}
	if err := errors.Join(errs...); err != nil {
		return invalid(err)
	}
	target, err := req.target()
	if err != nil {
		return invalid(err)
	}

	log := logger(ctx).With(ports.F("repo", owner+"/"+repo), ports.F("tag", req.Tag))

	if p.dryRun {
		log.Info(ctx, "dry run", ports.F("asset", req.AssetName))
		return result.Success(fmt.Sprintf("would download %s from %s/%s@%s to %s",
			req.AssetName, owner, repo, req.Tag, target))
	}

	release, err := p.api.GetReleaseByTag(ctx, owner, repo, req.Tag)
	if err != nil {
		log.Error(ctx, "release lookup failed", ports.Err(err))
		return apiResult(err, DownloadFailed, true)
	}

	asset, ok := findAsset(release, req.AssetName)
	if !ok {
		res := result.Fail(int(NotFound), fmt.Sprintf("asset %s not found in release %s", req.AssetName, req.Tag))
		for _, a := range release.Assets {
			res = res.WithLines("available: " + a.Name)
		}
		return res
	}

	if dir := filepath.Dir(target); dir != "." {
		if err := p.fs.MkdirAll(dir, 0o755); err != nil {
			return result.Fail(int(DownloadFailed), fmt.Sprintf("cannot create %s: %v", dir, err))
		}
	}

	n, err := p.write(ctx, owner, repo, asset.ID, target)
	if err != nil {
		log.Error(ctx, "asset download failed", ports.F("asset", asset.Name), ports.Err(err))
		return apiResult(err, DownloadFailed, false)
	}

	sum, err := p.fs.FileHash(target)
	if err != nil {
		return result.Fail(int(DownloadFailed), fmt.Sprintf("cannot hash %s: %v", target, err))
	}

	log.Info(ctx, "asset downloaded", ports.F("asset", asset.Name), ports.F("bytes", n))
	return result.Success(fmt.Sprintf("downloaded %s (%d bytes) to %s", asset.Name, n, target)).
		WithLines("sha256: " + sum)
}

// write streams the asset into a sibling part file and renames it over
// target only once the whole body has been written, so a failed download
// leaves an existing target untouched.
func (p *Provider) write(ctx context.Context, owner, repo string, assetID int64, target string) (int64, error) {
	part := target + partSuffix
	f, err := p.fs.Create(part)
	if err != nil {
		return 0, fmt.Errorf("cannot create %s: %w", part, err)
	}

	n, err := p.api.DownloadAsset(ctx, owner, repo, assetID, f)
	if closeErr := f.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("cannot write %s: %w", part, closeErr)
	}
	if err == nil {
		if renameErr := p.fs.Rename(part, target); renameErr != nil {
			err = fmt.Errorf("cannot move %s into place: %w", target, renameErr)
		}
	}
	if err != nil {
		if rmErr := p.fs.Remove(part); rmErr != nil {
			logger(ctx).Warn(ctx, "cannot remove partial download", ports.F("path", part), ports.Err(rmErr))
		}
		return n, err
	}
	return n, nil
}

func findAsset(release *ports.Release, name string) (ports.ReleaseAsset, bool) {
	for _, a := range release.Assets {
		if a.Name == name {
			return a, true
		}
	}
	return ports.ReleaseAsset{}, false
}
