package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/provider/git"
)

func (c *cli) gitProvider() *git.Provider {
	opts := []git.Option{
		git.WithVerbose(c.settings.Verbose),
		git.WithDryRun(c.settings.DryRun),
		git.WithTimeout(c.settings.Timeout),
	}
	if c.settings.Git.Executable != "" {
		opts = append(opts, git.WithExecutable(c.settings.Git.Executable))
	}
	return git.NewProvider(c.launcher, c.fs, opts...)
}

// remote returns the flag value or the configured default remote.
func (c *cli) remote(flag string) string {
	if flag != "" {
		return flag
	}
	return c.settings.Git.Remote
}

func newGitCmd(c *cli) *cobra.Command {
	gitCmd := &cobra.Command{
		Use:   "git",
		Short: "Tag, branch and clone operations",
	}

	gitCmd.AddCommand(
		newGitSetTagCmd(c),
		newGitDelTagCmd(c),
		newGitAutoTagCmd(c),
		newGitCurrentTagCmd(c),
		newGitBranchCmd(c),
		newGitCloneCmd(c),
	)
	return gitCmd
}

func newGitSetTagCmd(c *cli) *cobra.Command {
	var (
		dir     string
		tag     string
		message string
		remote  string
		push    bool
	)

	cmd := &cobra.Command{
		Use:   "settag",
		Short: "Create a tag, optionally pushing it",
		Example: `  devkit git settag --tag 1.2.3
  devkit git settag --tag 1.2.3 --message "release 1.2.3" --push`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			p := c.gitProvider()

			res := p.SetTag(cmd.Context(), dir, tag, message)
			if res.IsSuccess() && push {
				pushed := p.PushTag(cmd.Context(), dir, c.remote(remote), tag)
				if pushed.IsFail() {
					res = pushed.WithLines("tag " + tag + " was created locally")
				} else {
					res = res.WithLines(pushed.Output...)
				}
			}
			return c.printer.Report("git settag", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current)")
	cmd.Flags().StringVar(&tag, "tag", "", "tag name")
	cmd.Flags().StringVarP(&message, "message", "m", "", "annotation message (lightweight tag when empty)")
	cmd.Flags().StringVar(&remote, "remote", "", "remote to push to (default: git.remote)")
	cmd.Flags().BoolVar(&push, "push", false, "push the tag after creating it")
	return cmd
}

func newGitDelTagCmd(c *cli) *cobra.Command {
	var (
		dir    string
		tag    string
		remote string
	)

	cmd := &cobra.Command{
		Use:   "deltag",
		Short: "Delete a local tag, and the remote one with --remote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			p := c.gitProvider()

			res := p.DeleteTag(cmd.Context(), dir, tag)
			if res.IsSuccess() && remote != "" {
				deleted := p.DeleteRemoteTag(cmd.Context(), dir, remote, tag)
				if deleted.IsFail() {
					res = deleted
				} else {
					res = res.WithLines(deleted.Output...)
				}
			}
			return c.printer.Report("git deltag", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current)")
	cmd.Flags().StringVar(&tag, "tag", "", "tag name")
	cmd.Flags().StringVar(&remote, "remote", "", "also delete the tag from this remote")
	return cmd
}

func newGitAutoTagCmd(c *cli) *cobra.Command {
	var (
		dir       string
		buildType string
		push      bool
	)

	cmd := &cobra.Command{
		Use:   "autotag",
		Short: "Create the next version tag for a build type",
		Long: `Create the next version tag from the latest semantic version tag.

The patch version is bumped and a prerelease suffix added per build type:
  DEV    v1.2.4-dev.N
  STAGE  v1.2.4-rc.N
  PROD   v1.2.4`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			res := c.gitProvider().AutoTag(cmd.Context(), dir, buildType, push)
			return c.printer.Report("git autotag", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current)")
	cmd.Flags().StringVar(&buildType, "buildtype", "", "build type (DEV, STAGE, PROD)")
	cmd.Flags().BoolVar(&push, "push", false, "push the tag after creating it")
	_ = cmd.RegisterFlagCompletionFunc("buildtype", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"DEV", "STAGE", "PROD"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newGitCurrentTagCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "current-tag",
		Short: "Print the most recent tag reachable from HEAD",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.gitProvider().CurrentTag(cmd.Context(), dir)
			if res.IsSuccess() {
				c.printer.Lines(res.Output...)
				return nil
			}
			return c.printer.Report("git current-tag", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current)")
	return cmd
}

func newGitBranchCmd(c *cli) *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "branch",
		Short: "Print the checked-out branch",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			res := c.gitProvider().CurrentBranch(cmd.Context(), dir)
			if res.IsSuccess() {
				c.printer.Lines(res.Output...)
				return nil
			}
			return c.printer.Report("git branch", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "", "repository directory (default: current)")
	return cmd
}

func newGitCloneCmd(c *cli) *cobra.Command {
	var (
		url    string
		dest   string
		branch string
	)

	cmd := &cobra.Command{
		Use:   "clone",
		Short: "Clone a repository",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			res := c.gitProvider().Clone(cmd.Context(), url, dest, branch)
			return c.printer.Report("git clone", res, codeName[git.Code]())
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "repository URL")
	cmd.Flags().StringVar(&dest, "dest", "", "destination directory")
	cmd.Flags().StringVar(&branch, "branch", "", "branch to check out")
	return cmd
}
