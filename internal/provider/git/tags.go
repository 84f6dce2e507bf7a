package git

import (
	"context"
	"fmt"
	"strings"

	"github.com/felixgeelhaar/devkit/internal/adapters/command"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/validation"
)

// SetTag creates tag in the repository at dir. A non-empty message creates an
// annotated tag, otherwise a lightweight one.
func (p *Provider) SetTag(ctx context.Context, dir, tag, message string) result.Result {
	if err := validation.ValidateGitTag(tag); err != nil {
		return invalid(err)
	}

	args := "tag " + tag
	if message != "" {
		args = "tag -a " + tag + " -m " + command.QuoteArgument(message)
	}

	res := p.run(ctx, dir, args, SetTagFailed, true)
	if res.IsSuccess() && !p.dryRun {
		return result.Success(fmt.Sprintf("created tag %s", tag)).WithLines(toolLines(res)...)
	}
	return res
}

// DeleteTag deletes a local tag.
func (p *Provider) DeleteTag(ctx context.Context, dir, tag string) result.Result {
	if err := validation.ValidateGitTag(tag); err != nil {
		return invalid(err)
	}
	return p.run(ctx, dir, "tag -d "+tag, DeleteTagFailed, true)
}

// PushTag pushes a local tag to remote.
func (p *Provider) PushTag(ctx context.Context, dir, remote, tag string) result.Result {
	remote, err := checkRemoteAndTag(remote, tag)
	if err != nil {
		return invalid(err)
	}
	return p.run(ctx, dir, "push "+remote+" refs/tags/"+tag, PushFailed, true)
}

// DeleteRemoteTag deletes tag from remote.
func (p *Provider) DeleteRemoteTag(ctx context.Context, dir, remote, tag string) result.Result {
	remote, err := checkRemoteAndTag(remote, tag)
	if err != nil {
		return invalid(err)
	}
	return p.run(ctx, dir, "push "+remote+" --delete refs/tags/"+tag, PushFailed, true)
}

// CurrentTag returns the most recent tag reachable from HEAD as the single
// output line. It never modifies the repository.
func (p *Provider) CurrentTag(ctx context.Context, dir string) result.Result {
	res := p.run(ctx, dir, "describe --tags --abbrev=0", GitWrapperFailed, false)
	return firstLine(res)
}

// Tags lists every tag in the repository.
func (p *Provider) Tags(ctx context.Context, dir string) result.Result {
	return p.run(ctx, dir, "tag --list", GitWrapperFailed, false)
}

func checkRemoteAndTag(remote, tag string) (string, error) {
	if remote == "" {
		remote = DefaultRemote
	}
	if err := validation.ValidateGitRemoteName(remote); err != nil {
		return "", err
	}
	if err := validation.ValidateGitTag(tag); err != nil {
		return "", err
	}
	return remote, nil
}

// firstLine trims a successful result down to its first non-empty line.
func firstLine(res result.Result) result.Result {
	if res.IsFail() {
		return res
	}
	for _, line := range res.Output {
		if line = strings.TrimSpace(line); line != "" {
			return result.Success(line)
		}
	}
	return res
}

// toolLines drops the launcher's placeholder so only real git output is kept.
func toolLines(res result.Result) []string {
	if len(res.Output) == 1 && res.Output[0] == result.MessageSuccess {
		return nil
	}
	return res.Output
}
