// Package command provides the process launcher that runs external tools and
// converts their outcome into a result.Result.
package command

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/provider/commandutil"
)

// Launcher starts external processes and captures their output.
type Launcher struct {
	logger   ports.Logger
	stdout   io.Writer
	stderr   io.Writer
	lookPath func(string) (string, error)
}

// LauncherOption configures a Launcher.
type LauncherOption func(*Launcher)

// WithLogger sets the logger (default: no-op).
func WithLogger(logger ports.Logger) LauncherOption {
	return func(l *Launcher) {
		l.logger = logger
	}
}

// WithConsole sets where verbose echo and non-redirected stdout go
// (default: os.Stdout).
func WithConsole(w io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stdout = w
	}
}

// WithErrorConsole sets where non-redirected stderr goes (default: os.Stderr).
func WithErrorConsole(w io.Writer) LauncherOption {
	return func(l *Launcher) {
		l.stderr = w
	}
}

// WithLookPath replaces the PATH resolver.
func WithLookPath(fn func(string) (string, error)) LauncherOption {
	return func(l *Launcher) {
		l.lookPath = fn
	}
}

// NewLauncher creates a new Launcher.
func NewLauncher(opts ...LauncherOption) *Launcher {
	l := &Launcher{
		logger:   logging.NewNopLogger(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		lookPath: exec.LookPath,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Start runs the process described by params and blocks until it exits.
// ModeWorker hosts the same run on a dedicated goroutine and joins it.
func (l *Launcher) Start(ctx context.Context, params ports.Parameters) result.Result {
	if params.Mode != ports.ModeWorker {
		return l.run(ctx, params)
	}

	done := make(chan result.Result, 1)
	go func() {
		done <- l.run(ctx, params)
	}()
	return <-done
}

// run executes one invocation. Panics during spawn are converted into a
// launch failure so nothing escapes Start.
func (l *Launcher) run(ctx context.Context, params ports.Parameters) (res result.Result) {
	log := ports.LoggerFromContextOr(ctx, l.logger).With(
		ports.F("invocation", uuid.NewString()),
		ports.F("file", params.FileName),
	)

	tracker, err := newLifecycle(params.FileName)
	if err != nil {
		log.Warn(ctx, "lifecycle tracking disabled", ports.Err(err))
	}

	defer func() {
		if r := recover(); r != nil {
			res = result.LaunchFailure(params.FileName, fmt.Errorf("panic: %v", r))
			tracker.send(eventFailed)
		}
		log.Debug(ctx, "launch finished",
			ports.F("state", string(tracker.State())),
			ports.F("code", res.Code),
			ports.F("lines", len(res.Output)),
		)
		tracker.stop()
	}()

	if strings.TrimSpace(params.FileName) == "" {
		tracker.send(eventFailed)
		return result.LaunchFailure(params.FileName, errors.New("file name is empty"))
	}

	if err := checkWorkingDir(params.WorkingDir); err != nil {
		tracker.send(eventFailed)
		log.Error(ctx, "invalid working directory", ports.F("dir", params.WorkingDir), ports.Err(err))
		return result.LaunchFailure(params.FileName, err)
	}

	path, err := l.lookPath(params.FileName)
	if err != nil {
		tracker.send(eventFailed)
		if commandutil.IsCommandNotFound(err) {
			log.Error(ctx, "executable not found", ports.Err(err))
			return result.NotFound(params.FileName)
		}
		log.Error(ctx, "cannot resolve executable", ports.F("reason", commandutil.Describe(err)), ports.Err(err))
		return result.LaunchFailure(params.FileName, err)
	}

	runCtx, cancel := ctx, context.CancelFunc(func() {})
	if params.Timeout > 0 {
		runCtx, cancel = context.WithTimeout(ctx, params.Timeout)
	}
	defer cancel()
	killable := runCtx.Done() != nil

	cmd := exec.Command(path)
	cmd.Args = append([]string{path}, SplitArguments(params.Arguments)...)
	cmd.Dir = params.WorkingDir
	if len(params.Env) > 0 {
		cmd.Env = append(os.Environ(), params.Env...)
	}
	configureProcess(cmd, params.Arguments, killable)

	buf := newLineBuffer(params.Verbose, l.stdout)
	readers := make([]io.Reader, 0, 2)

	if params.RedirectStandardOutput {
		stdout, err := cmd.StdoutPipe()
		if err != nil {
			tracker.send(eventFailed)
			return result.LaunchFailure(params.FileName, err)
		}
		readers = append(readers, stdout)
	} else {
		cmd.Stdout = l.stdout
	}

	if params.RedirectStandardError {
		stderr, err := cmd.StderrPipe()
		if err != nil {
			tracker.send(eventFailed)
			return result.LaunchFailure(params.FileName, err)
		}
		readers = append(readers, stderr)
	} else {
		cmd.Stderr = l.stderr
	}

	log.Debug(ctx, "starting process",
		ports.F("command", params.CommandLine()),
		ports.F("dir", params.WorkingDir),
		ports.F("mode", params.Mode.String()),
	)

	// The executable was already resolved, so a start error is never a
	// missing binary.
	if err := cmd.Start(); err != nil {
		tracker.send(eventFailed)
		log.Error(ctx, "failed to start process", ports.F("reason", commandutil.Describe(err)), ports.Err(err))
		return result.LaunchFailure(params.FileName, err)
	}
	tracker.send(eventStarted)

	// The process group is killed when the deadline passes or ctx ends.
	waitDone := make(chan struct{})
	if killable {
		go func() {
			select {
			case <-runCtx.Done():
				if err := killProcessTree(cmd); err != nil {
					log.Warn(ctx, "failed to kill process tree", ports.Err(err))
				}
			case <-waitDone:
			}
		}()
	}

	// Pipes are drained concurrently with the child so a full OS buffer
	// cannot block it; Wait only runs after both readers hit EOF.
	var g errgroup.Group
	for _, r := range readers {
		g.Go(func() error {
			return buf.drain(r)
		})
	}
	readErr := g.Wait()
	waitErr := cmd.Wait()
	close(waitDone)

	lines := buf.lines()

	// A process that exited cleanly just before the deadline keeps its result.
	if ctxErr := runCtx.Err(); ctxErr != nil && waitErr != nil {
		tracker.send(eventTimedOut)
		if params.Timeout > 0 && errors.Is(ctxErr, context.DeadlineExceeded) && ctx.Err() == nil {
			log.Warn(ctx, "process timed out", ports.F("timeout", params.Timeout.String()))
			return result.TimedOut(params.Timeout, lines)
		}
		log.Warn(ctx, "process canceled", ports.Err(ctxErr))
		return result.Canceled(ctxErr, lines)
	}

	if readErr != nil {
		log.Warn(ctx, "output capture incomplete", ports.Err(readErr))
	}

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			tracker.send(eventFailed)
			log.Error(ctx, "failed waiting for process", ports.Err(waitErr))
			return result.LaunchFailure(params.FileName, waitErr).WithLines(lines...)
		}
		code = exitErr.ExitCode()
	}
	tracker.send(eventExited)

	if len(readers) == 0 || len(lines) == 0 {
		if code == result.CodeSuccess {
			lines = []string{result.MessageSuccess}
		} else {
			lines = []string{result.MessageFail}
		}
	}

	return result.FromExit(code, lines)
}

// lineBuffer collects lines from one or more streams in arrival order.
type lineBuffer struct {
	mu      sync.Mutex
	out     []string
	verbose bool
	echo    io.Writer
}

func newLineBuffer(verbose bool, echo io.Writer) *lineBuffer {
	return &lineBuffer{
		out:     make([]string, 0),
		verbose: verbose,
		echo:    echo,
	}
}

func (b *lineBuffer) append(line string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.out = append(b.out, line)
	if b.verbose && b.echo != nil {
		_, _ = fmt.Fprintln(b.echo, line)
	}
}

// drain reads r line by line until EOF. Lines have no length limit.
func (b *lineBuffer) drain(r io.Reader) error {
	br := bufio.NewReader(r)
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			b.append(strings.TrimRight(line, "\r\n"))
		}
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, os.ErrClosed) {
				return nil
			}
			return err
		}
	}
}

func (b *lineBuffer) lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.out))
	copy(out, b.out)
	return out
}

// Ensure Launcher implements ports.Launcher.
var _ ports.Launcher = (*Launcher)(nil)

// checkWorkingDir reports a missing or non-directory working directory.
// An empty dir means the caller's own.
func checkWorkingDir(dir string) error {
	if dir == "" {
		return nil
	}
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("working directory %q does not exist", dir)
	case err != nil:
		return fmt.Errorf("working directory %q: %w", dir, err)
	case !info.IsDir():
		return fmt.Errorf("working directory %q is not a directory", dir)
	}
	return nil
}
