package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version of docnav",
		Run: func(cmd *cobra.Command, args []string) {
			fprintf(cmd.OutOrStdout(), "docnav %s\n", version.String())
		},
	}
}
