package main

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/config"
	"github.com/felixgeelhaar/devkit/internal/domain/pathenv"
)

func newPathCmd(c *cli) *cobra.Command {
	var export bool

	pathCmd := &cobra.Command{
		Use:   "path",
		Short: "Inspect and edit the PATH search list",
		Long: `Inspect and edit PATH. A child process cannot change its parent's
environment, so the edited value is printed; with --export it is printed as a
shell statement to evaluate:

  eval "$(devkit path add --export ~/go/bin)"`,
	}
	pathCmd.PersistentFlags().BoolVar(&export, "export", false, "print a shell statement that sets PATH")

	// emit applies l to the environment and prints it.
	emit := func(l pathenv.List) error {
		if !c.settings.DryRun {
			if err := pathenv.Apply(c.env, l); err != nil {
				return err
			}
		}
		if export {
			c.printer.Lines(exportLine(c.hostOS(), l.String()))
			return nil
		}
		c.printer.Lines(l.String())
		return nil
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "Print each PATH segment on its own line",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			l := pathenv.Load(c.env)
			if export {
				c.printer.Lines(exportLine(c.hostOS(), l.String()))
				return nil
			}
			c.printer.Lines(l.Segments()...)
			return nil
		},
	}

	var prepend bool
	addCmd := &cobra.Command{
		Use:   "add <dir>",
		Short: "Append a directory to PATH unless it is already present",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := pathenv.Load(c.env).Add(args[0], prepend)
			switch {
			case errors.Is(err, pathenv.ErrExists):
				c.printer.Warn(args[0] + " is already in PATH")
			case err != nil:
				return config.NewValidationFailedError("dir", err.Error())
			}
			return emit(l)
		},
	}
	addCmd.Flags().BoolVar(&prepend, "prepend", false, "put the directory first")

	removeCmd := &cobra.Command{
		Use:   "remove <dir>",
		Short: "Remove every occurrence of a directory from PATH",
		Args:  exactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			l, err := pathenv.Load(c.env).Remove(args[0])
			if err != nil {
				return config.NewValidationFailedError("dir", err.Error())
			}
			return emit(l)
		},
	}

	dedupeCmd := &cobra.Command{
		Use:   "dedupe",
		Short: "Drop repeated PATH segments, keeping the first",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			l, dropped := pathenv.Load(c.env).Dedupe()
			if dropped > 0 {
				c.printer.Warn(fmt.Sprintf("dropped %d duplicate segment(s)", dropped))
			}
			return emit(l)
		},
	}

	pathCmd.AddCommand(listCmd, addCmd, removeCmd, dedupeCmd)
	return pathCmd
}

func (c *cli) hostOS() string {
	if c.goos != "" {
		return c.goos
	}
	return runtime.GOOS
}

// exportLine renders a statement that sets PATH in the user's shell.
func exportLine(goos, value string) string {
	if goos == "windows" {
		return `$env:PATH = '` + strings.ReplaceAll(value, "'", "''") + `'`
	}
	return "export PATH='" + strings.ReplaceAll(value, "'", `'\''`) + "'"
}
