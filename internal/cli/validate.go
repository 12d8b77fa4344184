package cli

import (
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/navtree"
)

func newValidateCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a configuration and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(g)
			if err != nil {
				return err
			}
			info, err := os.Stat(g.configFile)
			if err != nil {
				return err
			}

			cfg := snap.Config
			out := cmd.OutOrStdout()
			levels := make([]string, 0, len(cfg.Access))
			for _, lvl := range cfg.Access {
				levels = append(levels, lvl.Value)
			}
			links := make([]string, 0, len(cfg.ToolbarLinks))
			for _, l := range cfg.ToolbarLinks {
				links = append(links, l.ID)
			}

			fprintf(out, "OK %s (%s)\n", g.configFile, humanize.Bytes(uint64(info.Size())))
			fprintf(out, "  id:          %s\n", cfg.ID)
			fprintf(out, "  version:     %s\n", cfg.Version)
			fprintf(out, "  pages:       %s\n", humanize.Comma(int64(navtree.Count(snap.Tree))))
			fprintf(out, "  members:     %s\n", humanize.Comma(int64(len(snap.Members))))
			fprintf(out, "  access:      %s\n", strings.Join(levels, ", "))
			fprintf(out, "  toolbar:     %s\n", strings.Join(links, ", "))
			fprintf(out, "  search:      mode=%s minChars=%d maxResults=%d\n",
				cfg.Search.Mode, cfg.Search.MinChars, cfg.Search.MaxResults)
			fprintf(out, "  modified:    %s\n", humanize.Time(info.ModTime()))
			fprintf(out, "  fingerprint: %s\n", snap.Fingerprint)
			return nil
		},
	}
}
