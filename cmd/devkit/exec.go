package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/adapters/command"
	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/ports"
)

func newExecCmd(c *cli) *cobra.Command {
	var (
		dir    string
		worker bool
		env    []string
	)

	cmd := &cobra.Command{
		Use:   "exec [flags] -- <file> [args...]",
		Short: "Run any executable through the launcher",
		Long: `Run an executable through the devkit launcher and exit with its exit
code. Output is captured; on failure the last --tail lines are shown.`,
		Example: `  devkit exec -- go test ./...
  devkit exec --timeout 30s --dir build -- make release`,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MinimumNArgs(1)(cmd, args); err != nil {
				return usageError(err)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kv := range env {
				if !strings.Contains(kv, "=") {
					return usageError(fmt.Errorf("--env %q is not KEY=VALUE", kv))
				}
			}

			params := ports.NewParameters(args[0], command.JoinArguments(args[1:]...)).
				InDir(dir).
				WithVerbose(c.settings.Verbose).
				WithTimeout(c.settings.Timeout)
			params.Env = env
			if worker {
				params = params.WithMode(ports.ModeWorker)
			}

			operation := "exec " + args[0]
			if c.settings.DryRun {
				c.dryRunNote()
				return c.printer.Report(operation, result.Success("would run: "+params.CommandLine()), nil)
			}
			return c.printer.Report(operation, c.launcher.Start(cmd.Context(), params), nil)
		},
	}

	cmd.Flags().SetInterspersed(false)
	cmd.Flags().StringVar(&dir, "dir", "", "working directory")
	cmd.Flags().BoolVar(&worker, "worker", false, "host the process on a worker goroutine")
	cmd.Flags().StringArrayVarP(&env, "env", "e", nil, "extra KEY=VALUE environment entry (repeatable)")
	return cmd
}
