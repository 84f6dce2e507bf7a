package main

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/devkit/internal/domain/result"
	"github.com/felixgeelhaar/devkit/internal/provider/search"
)

func newSearchCmd(c *cli) *cobra.Command {
	var (
		q    search.Query
		kind string
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Find files or folders whose name matches a glob pattern",
		Example: `  devkit search --root . --pattern "*.go"
  devkit search --root ~/src --pattern "node_modules" --kind dir --max-depth 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k, err := search.ParseKind(kind)
			if err != nil {
				res := result.Invalid(int(search.InvalidParameter), err.Error())
				return c.printer.Report("search", res, codeName[search.Code]())
			}
			q.Kind = k

			res := search.NewProvider(c.fs).Find(cmd.Context(), q)
			if res.IsSuccess() {
				// One path per line so the output pipes cleanly.
				c.printer.Lines(res.Output...)
				return nil
			}
			return c.printer.Report("search", res, codeName[search.Code]())
		},
	}

	cmd.Flags().StringVar(&q.Root, "root", ".", "directory to search")
	cmd.Flags().StringVarP(&q.Pattern, "pattern", "p", "", "glob matched against base names")
	cmd.Flags().StringVar(&kind, "kind", "any", "entry kind (file, dir, any)")
	cmd.Flags().IntVar(&q.MaxDepth, "max-depth", 0, "levels below root to descend (0: unlimited)")
	cmd.Flags().IntVar(&q.MaxResults, "max-results", 0, "stop after this many matches (0: unlimited)")
	cmd.Flags().BoolVarP(&q.CaseInsensitive, "ignore-case", "i", false, "match names case-insensitively")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"file", "dir", "any"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
