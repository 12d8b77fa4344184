package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

type filterOptions struct {
	surface  string
	access   []string
	lang     string
	debounce time.Duration
	workers  int
}

func newFilterCmd(g *globalFlags) *cobra.Command {
	opts := &filterOptions{}

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Filter the sidebar or toolbar interactively, one query per input line",
		Long: `Reads queries from stdin as if they were typed into a filter box. Lines
arriving faster than --debounce supersede each other; only settled queries
are evaluated. The session history is printed on EOF.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(g)
			if err != nil {
				return err
			}
			return runFilter(snap, opts, g, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&opts.surface, "surface", string(session.SurfaceSidebar), "sidebar or toolbar")
	cmd.Flags().StringSliceVar(&opts.access, "access", nil, "access levels held besides public (sidebar)")
	cmd.Flags().StringVar(&opts.lang, "lang", "", "restrict members to one language (toolbar)")
	cmd.Flags().DurationVar(&opts.debounce, "debounce", 150*time.Millisecond, "settle delay before a query is evaluated")
	cmd.Flags().IntVar(&opts.workers, "workers", 2, "evaluation workers")
	return cmd
}

func runFilter(snap *index.Snapshot, opts *filterOptions, g *globalFlags, in io.Reader, out io.Writer) error {
	cfg := snap.Config

	var matcher session.Matcher
	switch session.Surface(opts.surface) {
	case session.SurfaceSidebar:
		if !cfg.ShowSidebarFilter {
			return fmt.Errorf("sidebar filter is disabled by %s", g.configFile)
		}
		matcher = session.SidebarMatcher{Tree: snap.Sidebar(grantOf(opts.access))}
	case session.SurfaceToolbar:
		matcher = session.ToolbarMatcher{
			Index:   snap.Search,
			Links:   cfg.ToolbarLinks,
			Members: snap.Members,
			Scope:   index.Scope{Language: domain.Language(opts.lang)},
		}
	default:
		return fmt.Errorf("unknown surface %q", opts.surface)
	}

	log := g.newLogger()
	s := session.New(session.Surface(opts.surface), matcher, session.Options{
		MaxHistory:       cfg.MaxHistoryItems,
		NotFoundTemplate: cfg.FilterNotFoundMsg,
		Logger:           log,
	})
	defer s.Close()

	debouncer, err := session.NewDebouncer(opts.debounce, opts.workers, log)
	if err != nil {
		return err
	}

	var mu sync.Mutex
	show := func(res session.Result) {
		mu.Lock()
		defer mu.Unlock()
		printResult(out, cfg, res)
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := debouncer.Schedule(s, scanner.Text(), show); err != nil {
			debouncer.Release()
			return err
		}
	}
	debouncer.Release()
	if err := scanner.Err(); err != nil {
		return err
	}

	fprintf(out, "history: %s\n", strings.Join(s.History(), " | "))
	return nil
}

func printResult(w io.Writer, cfg *domain.Configuration, res session.Result) {
	switch {
	case res.Throttled:
		fprintf(w, "#%d %q: keep typing (%d shown)\n", res.Seq, res.Query, res.Count)
	case res.NotFound != "":
		fprintf(w, "#%d %s\n", res.Seq, res.NotFound)
		return
	default:
		fprintf(w, "#%d %q: %d match(es)\n", res.Seq, res.Query, res.Count)
	}

	if res.Groups != nil {
		for _, b := range res.Groups.NonEmpty() {
			names := make([]string, 0, len(b.Items))
			for _, m := range b.Items {
				names = append(names, m.Name)
			}
			fprintf(w, "  %s: %s\n", b.Link.DisplayLabel(false), strings.Join(names, ", "))
		}
		return
	}
	printTree(w, cfg, res.Tree, "", 1)
}
