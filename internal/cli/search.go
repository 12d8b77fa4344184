package cli

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
)

func newSearchCmd(g *globalFlags) *cobra.Command {
	var (
		lang   string
		access []string
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Run a ranked search over pages and members",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			idx := snap.Search.Get()
			if !idx.Accepts(args[0]) {
				fprintf(out, "Query too short (minimum %d characters).\n", snap.Config.Search.MinChars)
				return nil
			}

			matches := idx.QueryScoped(args[0], index.Scope{
				Language: domain.Language(lang),
				Grant:    grantOf(access),
			})

			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(matches)
			}
			if len(matches) == 0 {
				fprintf(out, "%s\n", snap.Config.Search.NoResultsFoundMsg)
				return nil
			}
			for i, m := range matches {
				fprintf(out, "%2d. %-30s %-10s %s\n", i+1, m.Label, m.Kind, snap.Config.Href(m.Path))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "restrict to one language")
	cmd.Flags().StringSliceVar(&access, "access", nil, "access levels held besides public")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output results as JSON")
	return cmd
}
