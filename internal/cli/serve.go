package cli

import (
	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/app"
	"github.com/MrSnakeDoc/docnav/internal/config"
)

func newServeCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the navigation API over HTTP",
		Long: `Starts the HTTP server. Settings come from DOCNAV_* environment variables;
--config and --members override DOCNAV_CONFIG_FILE and DOCNAV_MEMBERS_FILE.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()
			flags := cmd.Flags()
			if flags.Changed("config") {
				cfg.ConfigFile = g.configFile
			}
			if flags.Changed("members") {
				cfg.MembersFile = g.membersFile
			}
			if flags.Changed("log-level") {
				cfg.LogLevel = g.logLevel
			}
			return app.New(cfg).Run()
		},
	}
}
