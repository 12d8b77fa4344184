package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

type sidebarResponse struct {
	Query    string     `json:"query,omitempty"`
	Count    int        `json:"count"`
	NotFound string     `json:"notFound,omitempty"`
	Tree     []*navNode `json:"tree"`
}

// Sidebar serves the navigation tree for ?access=, optionally filtered by ?q=.
// Links are made relative to ?from= when the site uses relative paths.
func Sidebar(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := currentSnapshot(w, d)
		if !ok {
			return
		}
		cfg := snap.Config
		q := r.URL.Query()
		query := q.Get("q")

		if query != "" && !cfg.ShowSidebarFilter {
			writeError(w, http.StatusBadRequest, "sidebar filter is disabled", d.Logger)
			return
		}

		s := session.New(session.SurfaceSidebar, session.SidebarMatcher{Tree: snap.Sidebar(grantFrom(r))}, session.Options{
			NotFoundTemplate: cfg.FilterNotFoundMsg,
			Logger:           d.Logger,
		})
		defer s.Close()

		res, err := s.SetQuery(query)
		if err != nil {
			d.Logger.Error("Sidebar query failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "query failed", d.Logger)
			return
		}

		writeJSON(w, http.StatusOK, sidebarResponse{
			Query:    res.Query,
			Count:    res.Count,
			NotFound: res.NotFound,
			Tree:     navNodes(cfg, res.Tree, q.Get("from")),
		}, d.Logger)
	}
}
