package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/sources/docsconfig"
)

type globalFlags struct {
	configFile  string
	membersFile string
	logLevel    string
}

// NewRootCmd builds the docnav command tree.
func NewRootCmd() *cobra.Command {
	g := &globalFlags{}

	root := &cobra.Command{
		Use:   "docnav",
		Short: "Documentation navigation and search engine",
		Long: `docnav loads a documentation site configuration, builds its navigation
tree and search index, and serves sidebar, toolbar and search filtering
over HTTP or from the command line.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&g.configFile, "config", "c", envOr("DOCNAV_CONFIG_FILE", "config.js"), "documentation configuration file (.js, .json or .yaml)")
	root.PersistentFlags().StringVarP(&g.membersFile, "members", "m", os.Getenv("DOCNAV_MEMBERS_FILE"), "member list, or a glob of member lists, for toolbar filtering")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", envOr("DOCNAV_LOG_LEVEL", "warn"), "log level for command output")

	root.AddCommand(
		newServeCmd(g),
		newValidateCmd(g),
		newTreeCmd(g),
		newSearchCmd(g),
		newFilterCmd(g),
		newVersionCmd(),
	)
	return root
}

// Execute runs the command line and returns the process exit code.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// loadSnapshot builds the same snapshot the server would serve.
func loadSnapshot(g *globalFlags) (*index.Snapshot, error) {
	loaded, err := docsconfig.LoadFile(g.configFile)
	if err != nil {
		return nil, err
	}
	members, err := docsconfig.LoadMembers(g.membersFile)
	if err != nil {
		return nil, err
	}
	fp, err := docsconfig.SourceFingerprint(g.configFile, g.membersFile)
	if err != nil {
		return nil, err
	}
	return index.NewSnapshot(loaded.Config, loaded.Tree, members, fp), nil
}

func (g *globalFlags) newLogger() logger.Logger {
	return logger.New(g.logLevel, true)
}

// grantOf always includes the public level.
func grantOf(levels []string) domain.Grant {
	return domain.NewGrant(append([]string{domain.AccessPublic}, levels...)...)
}

func fprintf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
