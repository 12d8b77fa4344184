package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any, log logger.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Debug("Failed to write response", logger.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string, log logger.Logger) {
	writeJSON(w, status, errorResponse{Error: msg}, log)
}

// currentSnapshot answers 503 until the first configuration is loaded.
func currentSnapshot(w http.ResponseWriter, d deps.Deps) (*index.Snapshot, bool) {
	snap, ok := d.MemoryIndex.Current()
	if !ok {
		writeError(w, http.StatusServiceUnavailable, "configuration not loaded", d.Logger)
		return nil, false
	}
	return snap, true
}

// grantFrom reads ?access=a,b. Every viewer holds the public level.
func grantFrom(r *http.Request) domain.Grant {
	levels := append([]string{domain.AccessPublic}, splitList(r.URL.Query().Get("access"))...)
	return domain.NewGrant(levels...)
}

// navNode is a NavEntry with its resolved link.
type navNode struct {
	Path     string     `json:"path"`
	Label    string     `json:"label"`
	Icon     string     `json:"icon,omitempty"`
	Href     string     `json:"href"`
	Access   string     `json:"access,omitempty"`
	Children []*navNode `json:"children,omitempty"`
}

// navNodes resolves links for forest; from is the page the links are rendered on.
func navNodes(cfg *domain.Configuration, forest []*domain.NavEntry, from string) []*navNode {
	out := make([]*navNode, 0, len(forest))
	for _, e := range forest {
		out = append(out, &navNode{
			Path:     e.Path,
			Label:    e.Label,
			Icon:     e.Icon,
			Href:     cfg.RelativeHref(from, e.Path),
			Access:   e.AccessTag,
			Children: navNodes(cfg, e.Children, from),
		})
	}
	return out
}
