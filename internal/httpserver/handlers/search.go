package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

type searchHit struct {
	ID       string          `json:"id"`
	Label    string          `json:"label"`
	Kind     string          `json:"kind"`
	Href     string          `json:"href"`
	Language domain.Language `json:"language,omitempty"`
	Match    string          `json:"match"`
	Score    float64         `json:"score"`
}

type searchResponse struct {
	Query     string      `json:"query"`
	Throttled bool        `json:"throttled,omitempty"`
	Results   []searchHit `json:"results"`
	Message   string      `json:"message,omitempty"`
}

// Search runs a ranked query over pages and members.
// ?lang= scopes to one language, ?access= to a grant.
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := currentSnapshot(w, d)
		if !ok {
			return
		}
		q := r.URL.Query()
		query := q.Get("q")
		idx := snap.Search.Get()

		resp := searchResponse{Query: query, Results: []searchHit{}}
		if !idx.Accepts(query) {
			resp.Throttled = domain.Fold(query) != ""
			writeJSON(w, http.StatusOK, resp, d.Logger)
			return
		}

		matches := idx.QueryScoped(query, index.Scope{
			Language: domain.Language(q.Get("lang")),
			Grant:    grantFrom(r),
		})
		for _, m := range matches {
			resp.Results = append(resp.Results, searchHit{
				ID:       m.ID,
				Label:    m.Label,
				Kind:     m.Kind,
				Href:     snap.Config.Href(m.Path),
				Language: m.Language,
				Match:    m.MatchKind.String(),
				Score:    m.Score,
			})
		}
		if len(resp.Results) == 0 {
			resp.Message = snap.Config.Search.NoResultsFoundMsg
		}

		d.Logger.Debug("Search request",
			logger.String("query", query),
			logger.Int("results", len(resp.Results)))
		writeJSON(w, http.StatusOK, resp, d.Logger)
	}
}
