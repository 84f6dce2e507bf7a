package backup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
)

// Code is a backup adapter return code.
type Code int

// Backup adapter codes.
const (
	Success          Code = 0
	InvalidParameter Code = -1
	ConfigLoadFailed Code = -2
	JobFailed        Code = -3
)

// String returns the string representation of the code.
func (c Code) String() string {
	switch c {
	case Success:
		return "Success"
	case InvalidParameter:
		return "InvalidParameter"
	case ConfigLoadFailed:
		return "ConfigLoadFailed"
	case JobFailed:
		return "JobFailed"
	default:
		return "Unknown"
	}
}

// outputTail is how many robocopy lines a failed job contributes to the
// aggregate output.
const outputTail = 10

// Outcome is the result of one job.
type Outcome struct {
	Job      string
	ExitCode int
	Success  bool
	Summary  string
	Result   result.Result
}

// Report aggregates a backup run.
type Report struct {
	Outcomes []Outcome
	Result   result.Result
}

// Failed returns the names of failed jobs in run order.
func (r Report) Failed() []string {
	var names []string
	for _, o := range r.Outcomes {
		if !o.Success {
			names = append(names, o.Job)
		}
	}
	return names
}

// Provider runs robocopy backup jobs.
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

// WithExecutable overrides the robocopy executable (default: "robocopy").
func WithExecutable(name string) Option {
	return func(p *Provider) {
		p.executable = name
	}
}

// WithVerbose echoes robocopy output as it arrives.
func WithVerbose(verbose bool) Option {
	return func(p *Provider) {
		p.verbose = verbose
	}
}

// WithDryRun runs robocopy in list-only mode.
func WithDryRun(dryRun bool) Option {
	return func(p *Provider) {
		p.dryRun = dryRun
	}
}

// WithTimeout bounds each job.
func WithTimeout(timeout time.Duration) Option {
	return func(p *Provider) {
		p.timeout = timeout
	}
}

// NewProvider creates a new backup provider.
func NewProvider(launcher ports.Launcher, fs ports.FileSystem, opts ...Option) *Provider {
	p := &Provider{
		launcher:   launcher,
		fs:         fs,
		executable: "robocopy",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the provider name.
func (p *Provider) Name() string {
	return "backup"
}

// RunFile loads the job file at path and runs its jobs. A non-empty only
// restricts the run to the job with that name.
func (p *Provider) RunFile(ctx context.Context, path, only string) Report {
	jobs, err := LoadJobs(p.fs, path)
	if err != nil {
		return Report{Result: result.Invalid(int(ConfigLoadFailed), err.Error())}
	}

	if only != "" {
		jobs = selectJob(jobs, only)
		if len(jobs) == 0 {
			return Report{Result: result.Invalid(int(InvalidParameter), fmt.Sprintf("job %q not found in %s", only, path))}
		}
	}

	return p.Run(ctx, jobs)
}

func selectJob(jobs []Job, name string) []Job {
	for _, j := range jobs {
		if strings.EqualFold(j.Name, name) {
			return []Job{j}
		}
	}
	return nil
}

// Run executes every job in order. A failing job never stops later jobs.
func (p *Provider) Run(ctx context.Context, jobs []Job) Report {
	log := ports.LoggerFromContextOr(ctx, logging.NewNopLogger())

	if len(jobs) == 0 {
		return Report{Result: result.Invalid(int(InvalidParameter), "no backup jobs to run")}
	}

	report := Report{Outcomes: make([]Outcome, 0, len(jobs))}
	for _, job := range jobs {
		outcome := p.runJob(ctx, job)
		report.Outcomes = append(report.Outcomes, outcome)

		fields := []ports.Field{
			ports.F("job", outcome.Job),
			ports.F("code", outcome.ExitCode),
			ports.F("summary", outcome.Summary),
		}
		if outcome.Success {
			log.Info(ctx, "backup job finished", fields...)
		} else {
			log.Error(ctx, "backup job failed", fields...)
		}
	}

	report.Result = aggregate(report.Outcomes)
	return report
}

func (p *Provider) runJob(ctx context.Context, job Job) Outcome {
	if err := job.Validate(); err != nil {
		return Outcome{
			Job:      job.Name,
			ExitCode: int(InvalidParameter),
			Summary:  "invalid job",
			Result:   result.Invalid(int(InvalidParameter), err.Error()),
		}
	}

	params := ports.NewParameters(p.executable, job.Arguments(p.dryRun)).
		WithVerbose(p.verbose).
		WithTimeout(p.timeout)

	res := p.launcher.Start(ctx, params)

	switch res.Kind {
	case result.KindOK, result.KindToolFailed:
		ok := Succeeded(res.Code)
		return Outcome{
			Job:      job.Name,
			ExitCode: res.Code,
			Success:  ok,
			Summary:  DescribeExit(res.Code),
			Result:   res,
		}
	default:
		return Outcome{
			Job:      job.Name,
			ExitCode: res.Code,
			Summary:  res.Kind.String(),
			Result:   res,
		}
	}
}

func aggregate(outcomes []Outcome) result.Result {
	lines := make([]string, 0, len(outcomes))
	var failed []string
	var details []string

	for _, o := range outcomes {
		status := "ok"
		if !o.Success {
			status = "FAILED"
			failed = append(failed, o.Job)
			for _, line := range o.Result.Tail(outputTail) {
				details = append(details, o.Job+": "+line)
			}
		}
		lines = append(lines, fmt.Sprintf("[%s] %s: %s (code %d)", status, o.Job, o.Summary, o.ExitCode))
	}

	if len(failed) == 0 {
		return result.Success(fmt.Sprintf("%d backup job(s) succeeded", len(outcomes))).WithLines(lines...)
	}

	return result.Fail(int(JobFailed), "backup jobs failed: "+strings.Join(failed, ", ")).
		WithLines(lines...).
		WithLines(details...)
}
