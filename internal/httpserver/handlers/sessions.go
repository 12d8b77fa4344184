package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

type createSessionRequest struct {
	Surface string `json:"surface"`
	Access  string `json:"access,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

type createSessionResponse struct {
	ID      string `json:"id"`
	Surface string `json:"surface"`
}

// CreateSession opens a filter session bound to the current snapshot.
// A configuration reload does not affect sessions already open.
func CreateSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := currentSnapshot(w, d)
		if !ok {
			return
		}

		var req createSessionRequest
		if err := json.NewDecoder(io.LimitReader(r.Body, 4<<10)).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body", d.Logger)
			return
		}

		grant := domain.NewGrant(append([]string{domain.AccessPublic}, splitList(req.Access)...)...)

		var matcher session.Matcher
		switch session.Surface(req.Surface) {
		case session.SurfaceSidebar:
			if !snap.Config.ShowSidebarFilter {
				writeError(w, http.StatusConflict, "sidebar filter is disabled", d.Logger)
				return
			}
			matcher = session.SidebarMatcher{Tree: snap.Sidebar(grant)}
		case session.SurfaceToolbar:
			matcher = toolbarMatcher(snap, domain.Language(req.Lang))
		default:
			writeError(w, http.StatusBadRequest, "surface must be sidebar or toolbar", d.Logger)
			return
		}

		s := session.New(session.Surface(req.Surface), matcher, session.Options{
			MaxHistory:       snap.Config.MaxHistoryItems,
			NotFoundTemplate: snap.Config.FilterNotFoundMsg,
			Config:           snap.Config,
			Logger:           d.Logger,
		})
		d.Sessions.Add(s)

		d.Logger.Debug("Session opened",
			logger.String("session", s.ID()),
			logger.String("surface", req.Surface))
		writeJSON(w, http.StatusCreated, createSessionResponse{ID: s.ID(), Surface: req.Surface}, d.Logger)
	}
}

// QuerySession issues ?q= on a session. Without q it returns the last result.
func QuerySession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := d.Sessions.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "unknown session", d.Logger)
			return
		}

		res := s.Result()
		if q := r.URL.Query(); q.Has("q") {
			var err error
			res, err = s.SetQuery(q.Get("q"))
			switch {
			case errors.Is(err, session.ErrStale):
				writeError(w, http.StatusConflict, "query superseded", d.Logger)
				return
			case errors.Is(err, domain.ErrSessionClosed):
				writeError(w, http.StatusGone, "session closed", d.Logger)
				return
			case err != nil:
				d.Logger.Error("Session query failed", logger.Error(err))
				writeError(w, http.StatusInternalServerError, "query failed", d.Logger)
				return
			}
		}

		resp := sessionView(s, res, r.URL.Query().Get("from"))
		writeJSON(w, http.StatusOK, resp, d.Logger)
	}
}

// DeleteSession tears a session down.
func DeleteSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !d.Sessions.Remove(chi.URLParam(r, "id")) {
			writeError(w, http.StatusNotFound, "unknown session", d.Logger)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// sessionView renders a session result with its history. Sidebar links are
// resolved against the configuration the session was opened with, the one
// its tree came from.
func sessionView(s *session.Session, res session.Result, from string) filterResponse {
	resp := filterResponse{
		Query:     res.Query,
		Count:     res.Count,
		Throttled: res.Throttled,
		NotFound:  res.NotFound,
		Groups:    memberGroups(res.Groups),
		History:   s.History(),
	}
	if s.Surface() == session.SurfaceSidebar {
		if cfg := s.Config(); cfg != nil {
			resp.Tree = navNodes(cfg, res.Tree, from)
		}
	}
	return resp
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
