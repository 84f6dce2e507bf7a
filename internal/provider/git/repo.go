package git

import (
	"context"
	"errors"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/adapters/command"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// CurrentBranch returns the checked-out branch name as the single output line.
func (p *Provider) CurrentBranch(ctx context.Context, dir string) result.Result {
	return firstLine(p.run(ctx, dir, "rev-parse --abbrev-ref HEAD", BranchFailed, false))
}

// Clone clones url into dest, optionally checking out branch.
func (p *Provider) Clone(ctx context.Context, url, dest, branch string) result.Result {
	if url == "" {
		return invalid(errors.New("clone URL cannot be empty"))
	}
	if err := validation.ValidateGitRemoteURL(url); err != nil {
		return invalid(err)
	}
	if err := validation.ValidateArgumentPath(dest); err != nil {
		return invalid(err)
	}
	if err := validation.ValidateGitBranch(branch); err != nil {
		return invalid(err)
	}

	args := []string{"clone"}
	if branch != "" {
		args = append(args, "--branch", branch)
	}
	args = append(args, url, command.QuoteArgument(dest))

	return p.run(ctx, "", strings.Join(args, " "), CloneFailed, true)
}
