package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
	"github.com/MrSnakeDoc/docnav/internal/toolbar"
)

type memberGroup struct {
	ID         string          `json:"id"`
	Label      string          `json:"label"`
	ShortLabel string          `json:"shortLabel,omitempty"`
	Items      []domain.Member `json:"items"`
}

type filterResponse struct {
	Query     string        `json:"query,omitempty"`
	Count     int           `json:"count"`
	Throttled bool          `json:"throttled,omitempty"`
	NotFound  string        `json:"notFound,omitempty"`
	Tree      []*navNode    `json:"tree,omitempty"`
	Groups    []memberGroup `json:"groups,omitempty"`
	History   []string      `json:"history,omitempty"`
}

func toolbarMatcher(snap *index.Snapshot, lang domain.Language) session.ToolbarMatcher {
	return session.ToolbarMatcher{
		Index:   snap.Search,
		Links:   snap.Config.ToolbarLinks,
		Members: snap.Members,
		Scope:   index.Scope{Language: lang},
	}
}

// memberGroups lists every configured link, empty ones included, so the
// toolbar can keep its layout stable while filtering.
func memberGroups(g *toolbar.Groups) []memberGroup {
	if g == nil {
		return nil
	}
	out := make([]memberGroup, 0, len(g.Buckets))
	for _, b := range g.Buckets {
		items := b.Items
		if items == nil {
			items = []domain.Member{}
		}
		out = append(out, memberGroup{
			ID:         b.Link.ID,
			Label:      b.Link.Label,
			ShortLabel: b.Link.ShortLabel,
			Items:      items,
		})
	}
	return out
}

// Members filters the hosting page's members with ?q= and groups them by toolbar link.
func Members(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := currentSnapshot(w, d)
		if !ok {
			return
		}
		q := r.URL.Query()

		s := session.New(session.SurfaceToolbar, toolbarMatcher(snap, domain.Language(q.Get("lang"))), session.Options{
			NotFoundTemplate: snap.Config.FilterNotFoundMsg,
			Logger:           d.Logger,
		})
		defer s.Close()

		res, err := s.SetQuery(q.Get("q"))
		if err != nil {
			d.Logger.Error("Member query failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "query failed", d.Logger)
			return
		}

		writeJSON(w, http.StatusOK, filterResponse{
			Query:     res.Query,
			Count:     res.Count,
			Throttled: res.Throttled,
			NotFound:  res.NotFound,
			Groups:    memberGroups(res.Groups),
		}, d.Logger)
	}
}
