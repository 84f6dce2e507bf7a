package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
	"github.com/felixgeelhaar/devkit/internal/provider/backup"
)

func (c *cli) backupProvider() *backup.Provider {
	opts := []backup.Option{
		backup.WithVerbose(c.settings.Verbose),
		backup.WithDryRun(c.settings.DryRun),
		backup.WithTimeout(c.settings.Timeout),
	}
	if c.settings.Backup.Executable != "" {
		opts = append(opts, backup.WithExecutable(c.settings.Backup.Executable))
	}
	return backup.NewProvider(c.launcher, c.fs, opts...)
}

func newBackupCmd(c *cli) *cobra.Command {
	backupCmd := &cobra.Command{
		Use:   "backup",
		Short: "Mirror directories with robocopy",
	}
	backupCmd.AddCommand(newBackupRunCmd(c))
	return backupCmd
}

func newBackupRunCmd(c *cli) *cobra.Command {
	var (
		jobsFile string
		job      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the jobs of a backup job file",
		Long: `Run every job listed in a YAML or TOML job file. A failing job does not
stop later jobs. Robocopy exit codes below 8 count as success.

With --dry-run robocopy only lists what it would copy (/L).`,
		Example: `  devkit backup run --config jobs.yaml
  devkit backup run --config jobs.toml --job documents`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := jobsFile
			if path == "" {
				path = c.settings.Backup.JobsFile
			}
			if path == "" {
				res := result.Invalid(int(backup.InvalidParameter), "no job file given (use --config or backup.jobs_file)")
				return c.printer.Report("backup run", res, codeName[backup.Code]())
			}

			c.dryRunNote()
			report := c.backupProvider().RunFile(cmd.Context(), ports.ExpandPath(path), job)
			return c.printer.Report("backup run", report.Result, codeName[backup.Code]())
		},
	}

	// Shadows the global --config: for this command it names the job file.
	cmd.Flags().StringVarP(&jobsFile, "config", "c", "", "backup job file (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&job, "job", "", "run only the job with this name")
	_ = cmd.RegisterFlagCompletionFunc("config", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"yaml", "yml", "toml"}, cobra.ShellCompDirectiveFilterFileExt
	})
	return cmd
}
