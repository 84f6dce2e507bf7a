// Package git provides the git tool adapter: tag, branch and clone
// operations run through the process launcher.
package git

import (
	"context"
	"time"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/provider/commandutil"
)

// Code is a git adapter return code.
type Code int

// Git adapter codes.
const (
	Success          Code = 0
	InvalidParameter Code = -1
	SetTagFailed     Code = -2
	DeleteTagFailed  Code = -3
	GitWrapperFailed Code = -4
	CloneFailed      Code = -5
	BranchFailed     Code = -6
	PushFailed       Code = -7
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidParameter:
		return "InvalidParameter"
	case SetTagFailed:
		return "SetTagFailed"
	case DeleteTagFailed:
		return "DeleteTagFailed"
	case GitWrapperFailed:
		return "GitWrapperFailed"
	case CloneFailed:
		return "CloneFailed"
	case BranchFailed:
		return "BranchFailed"
	case PushFailed:
		return "PushFailed"
	default:
		return "Unknown"
	}
}

// DefaultRemote is used when no remote is given.
const DefaultRemote = "origin"

// Provider runs git commands through a launcher.
type Provider struct {
	launcher   ports.Launcher
	fs         ports.FileSystem
	executable string
	verbose    bool
	dryRun     bool
	timeout    time.Duration
}

// Option configures a Provider.
type Option func(*Provider)

// WithExecutable overrides the git executable (default: "git").
func WithExecutable(name string) Option {
	return func(p *Provider) {
		p.executable = name
	}
}

// WithVerbose echoes git output as it arrives.
func WithVerbose(verbose bool) Option {
	return func(p *Provider) {
		p.verbose = verbose
	}
}

// WithDryRun reports the commands that would run without running them.
func WithDryRun(dryRun bool) Option {
	return func(p *Provider) {
		p.dryRun = dryRun
	}
}

// WithTimeout bounds every git invocation.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.timeout = timeout
	}
}

// NewProvider creates a new git provider.
func NewProvider(launcher ports.Launcher, fs ports.FileSystem, opts ...Option) *Provider {
	p := &Provider{
		launcher:   launcher,
		fs:         fs,
		executable: "git",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "git"
}

func (p *Provider) params(dir, args string) ports.Parameters {
	return ports.NewParameters(p.executable, args).
		InDir(dir).
		WithVerbose(p.verbose).
		WithTimeout(p.timeout)
}

// run launches git and maps a tool failure onto failCode.
// Read-only commands ignore dry-run so later steps can use their output.
func (p *Provider) run(ctx context.Context, dir, args string, failCode Code, mutates bool) result.Result {
	params := p.params(dir, args)
	log := ports.LoggerFromContextOr(ctx, logging.NewNopLogger())

	if mutates && p.dryRun {
		log.Info(ctx, "dry run", ports.F("command", params.CommandLine()), ports.F("dir", dir))
		return result.Success("would run: " + params.CommandLine())
	}

	res := commandutil.MapFailure(p.launcher.Start(ctx, params), int(failCode))
	if res.IsFail() {
		log.Debug(ctx, "git command failed",
			ports.F("command", params.CommandLine()),
			ports.F("code", res.Code),
			ports.F("kind", res.Kind.String()),
		)
	}
	return res
}

func invalid(err error) result.Result {
	return result.Invalid(int(InvalidParameter), err.Error())
}
