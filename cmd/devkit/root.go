package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/adapters/command"
	"github.com/felixgeelhaar/devkit/internal/adapters/environment"
	"github.com/felixgeelhaar/devkit/internal/adapters/filesystem"
	"github.com/felixgeelhaar/devkit/internal/adapters/github"
	"github.com/felixgeelhaar/devkit/internal/adapters/logging"
	"github.com/felixgeelhaar/devkit/internal/app"
	"github.com/felixgeelhaar/devkit/internal/config"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/provider/pathutil"
)

// deps are the process boundaries the commands run against.
// Tests swap every field for an in-memory double.
type deps struct {
	// launcher is built from the resolved logger when nil.
	launcher   ports.Launcher
	fs         ports.FileSystem
	env        ports.Environment
	releaseAPI func(config.Settings) ports.ReleaseAPI
	finderOpts []pathutil.Option
	goos       string
	stdout     io.Writer
	stderr     io.Writer
}

func systemDeps() deps {
	return deps{
		fs:  filesystem.NewRealFileSystem(),
		env: environment.NewOSEnvironment(),
		releaseAPI: func(s config.Settings) ports.ReleaseAPI {
			return github.NewClient(
				github.WithBaseURL(s.Release.APIURL),
				github.WithToken(s.Release.Token),
			)
		},
		stdout: os.Stdout,
		stderr: os.Stderr,
	}
}

// globalFlags are the persistent flags shared by every command.
type globalFlags struct {
	cfgFile   string
	verbose   bool
	dryRun    bool
	timeout   time.Duration
	logFormat string
	tail      int
}

// cli is the state a command sees once the root pre-run has resolved
// settings.
type cli struct {
	deps
	flags    globalFlags
	settings config.Settings
	logger   ports.Logger
	printer  *app.Printer
}

// skipSetup marks commands that run without loading settings.
const skipSetup = "devkit/skip-setup"

func newRootCmd(d deps) (*cobra.Command, *cli) {
	c := &cli{
		deps:     d,
		settings: config.Defaults(),
		logger:   logging.NewNopLogger(),
		printer:  app.NewPrinter(d.stdout, d.stderr, config.DefaultTail, false),
	}

	rootCmd := &cobra.Command{
		Use:   "devkit",
		Short: "Run git, backup and release tooling with CI-friendly exit codes",
		Long: `devkit wraps git, robocopy and the GitHub release API behind one
process launcher. Every command prints a banner and, on failure, the last
lines of tool output, then exits with the tool adapter's code.`,
		SilenceErrors: true, // We handle error formatting ourselves
		SilenceUsage:  true, // Don't show usage on error
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[skipSetup] != "" {
				return nil
			}
			return c.setup(cmd)
		},
	}
	rootCmd.SetOut(d.stdout)
	rootCmd.SetErr(d.stderr)
	rootCmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})

	// Global flags
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&c.flags.cfgFile, "config", "", "config file (default: devkit.yaml)")
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "echo tool output and log at debug level")
	pf.BoolVar(&c.flags.dryRun, "dry-run", false, "show what would run without changing anything")
	pf.DurationVar(&c.flags.timeout, "timeout", 0, "kill a tool that runs longer than this (0: no limit)")
	pf.StringVar(&c.flags.logFormat, "log-format", config.DefaultLogFormat, "log format (text, json)")
	pf.IntVar(&c.flags.tail, "tail", config.DefaultTail, "tool output lines shown on failure (0: all)")

	registerFlagCompletions(rootCmd)

	version := newVersionCmd()
	version.Annotations = map[string]string{skipSetup: "true"}

	rootCmd.AddCommand(
		version,
		newGitCmd(c),
		newBackupCmd(c),
		newReleaseCmd(c),
		newSearchCmd(c),
		newPathCmd(c),
		newExecCmd(c),
	)
	return rootCmd, c
}

// setup resolves settings, the logger and the launcher for cmd.
func (c *cli) setup(cmd *cobra.Command) error {
	finder := pathutil.NewConfigFinder(c.fs, c.env, c.finderOpts...)
	settings, err := config.Load(c.fs, c.env, finder, c.flags.cfgFile)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	var o config.Overrides
	if flags.Changed("verbose") {
		o.Verbose = &c.flags.verbose
	}
	if flags.Changed("dry-run") {
		o.DryRun = &c.flags.dryRun
	}
	if flags.Changed("timeout") {
		o.Timeout = &c.flags.timeout
	}
	if flags.Changed("log-format") {
		o.LogFormat = &c.flags.logFormat
	}
	if flags.Changed("tail") {
		o.Tail = &c.flags.tail
	}
	if err := settings.ApplyOverrides(o); err != nil {
		return err
	}

	level := "info"
	if settings.Verbose {
		level = "debug"
	}
	logger, err := logging.New(logging.Options{
		Level:  level,
		Format: settings.LogFormat,
		Color:  true,
		Output: c.stderr,
	})
	if err != nil {
		return config.NewValidationFailedError("log_format", err.Error())
	}

	c.settings = settings
	c.logger = logger
	c.printer = app.NewPrinter(c.stdout, c.stderr, settings.Tail, settings.Verbose)
	if c.launcher == nil {
		c.launcher = command.NewLauncher(
			command.WithLogger(logger),
			command.WithConsole(c.stdout),
			command.WithErrorConsole(c.stderr),
		)
	}

	if settings.Source != "" {
		logger.Debug(cmd.Context(), "loaded config", ports.F("path", settings.Source))
	}
	cmd.SetContext(ports.ContextWithLogger(cmd.Context(), logger))
	return nil
}

// run executes the CLI and returns the process exit code.
func run(args []string, d deps) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	rootCmd, c := newRootCmd(d)
	rootCmd.SetArgs(args)
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		c.printer.Error(err)
	}
	return app.ExitCode(err)
}

// usageError marks a command-line mistake so it exits like a config error.
func usageError(err error) error {
	return &config.UserError{
		Code:       config.ErrCodeValidationFailed,
		Message:    err.Error(),
		Suggestion: "Run 'devkit --help' for usage.",
	}
}

// exactArgs is cobra.ExactArgs reported as a usage error.
func exactArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := cobra.ExactArgs(n)(cmd, args); err != nil {
			return usageError(err)
		}
		return nil
	}
}

// dryRunNote warns once that nothing will be changed.
func (c *cli) dryRunNote() {
	if c.settings.DryRun {
		c.printer.Warn("dry run: nothing will be changed")
	}
}

// codeName returns a CodeNamer for an adapter's code enum. Codes the enum
// does not know are left unnamed.
func codeName[C interface {
	~int
	fmt.Stringer
}]() app.CodeNamer {
	return func(code int) string {
		if name := C(code).String(); name != "Unknown" {
			return name
		}
		return ""
	}
}

// registerFlagCompletions sets up custom completions for global flags.
func registerFlagCompletions(rootCmd *cobra.Command) {
	// Complete --config with YAML files
	_ = rootCmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml"}, cobra.ShellCompDirectiveFilterFileExt
	})

	_ = rootCmd.RegisterFlagCompletionFunc("log-format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{
			"text\tHuman readable log lines",
			"json\tOne JSON object per line",
		}, cobra.ShellCompDirectiveNoFileComp
	})
}
