package cli

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

func newTreeCmd(g *globalFlags) *cobra.Command {
	var (
		access []string
		from   string
	)

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the sidebar as a viewer would see it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(g)
			if err != nil {
				return err
			}
			printTree(cmd.OutOrStdout(), snap.Config, snap.Sidebar(grantOf(access)), from, 0)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&access, "access", nil, "access levels held besides public")
	cmd.Flags().StringVar(&from, "from", "", "page the links are rendered on (relative paths only)")
	return cmd
}

func printTree(w io.Writer, cfg *domain.Configuration, forest []*domain.NavEntry, from string, depth int) {
	for _, e := range forest {
		fprintf(w, "%s%s  %s\n", strings.Repeat("  ", depth), e.Label, cfg.RelativeHref(from, e.Path))
		printTree(w, cfg, e.Children, from, depth+1)
	}
}
