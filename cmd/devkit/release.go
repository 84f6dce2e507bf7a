package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/provider/release"
)

func (c *cli) releaseProvider() *release.Provider {
	return release.NewProvider(c.releaseAPI(c.settings), c.fs, c.env,
		release.WithDryRun(c.settings.DryRun),
		release.WithDefaultOwner(c.settings.Release.Owner),
		release.WithRepoResolver(c.gitProvider(), ".", c.settings.Git.Remote),
	)
}

func newReleaseCmd(c *cli) *cobra.Command {
	releaseCmd := &cobra.Command{
		Use:   "release",
		Short: "Create and download GitHub releases",
		Long: `Create GitHub releases and download their assets through the REST API.

The token is read from GITHUB_TOKEN. A repository given without an owner
takes it from GITHUB_OWNER or release.owner; with no --repo at all the
repository is inferred from the git remote of the current directory.`,
	}

	releaseCmd.AddCommand(
		newReleaseCreateCmd(c),
		newReleaseDownloadCmd(c),
	)
	return releaseCmd
}

func newReleaseCreateCmd(c *cli) *cobra.Command {
	var req release.CreateRequest

	cmd := &cobra.Command{
		Use:     "create",
		Short:   "Create a release and upload one asset",
		Example: `  devkit release create --repo acme/tools --tag v1.2.3 --branch main --file dist/tools.zip`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			res := c.releaseProvider().Create(cmd.Context(), req)
			return c.printer.Report("release create", res, codeName[release.Code]())
		},
	}

	cmd.Flags().StringVar(&req.Repo, "repo", "", "repository (owner/name)")
	cmd.Flags().StringVar(&req.Tag, "tag", "", "tag to release")
	cmd.Flags().StringVar(&req.Branch, "branch", "", "branch or commit the tag points at")
	cmd.Flags().StringVar(&req.AssetPath, "file", "", "asset to upload")
	cmd.Flags().StringVar(&req.Name, "name", "", "release title (default: tag)")
	cmd.Flags().StringVar(&req.Notes, "notes", "", "release notes")
	cmd.Flags().BoolVar(&req.Draft, "draft", false, "create a draft release")
	cmd.Flags().BoolVar(&req.Prerelease, "prerelease", false, "mark the release as a prerelease")
	return cmd
}

func newReleaseDownloadCmd(c *cli) *cobra.Command {
	var req release.DownloadRequest

	cmd := &cobra.Command{
		Use:     "download",
		Short:   "Download a release asset and print its sha256",
		Example: `  devkit release download --repo acme/tools --tag v1.2.3 --asset tools.zip --dest dist`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c.dryRunNote()
			res := c.releaseProvider().Download(cmd.Context(), req)
			return c.printer.Report("release download", res, codeName[release.Code]())
		},
	}

	cmd.Flags().StringVar(&req.Repo, "repo", "", "repository (owner/name)")
	cmd.Flags().StringVar(&req.Tag, "tag", "", "release tag")
	cmd.Flags().StringVar(&req.AssetName, "asset", "", "asset file name")
	cmd.Flags().StringVar(&req.Dest, "dest", ".", "destination directory")
	return cmd
}
