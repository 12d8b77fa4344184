package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
)

type searchSettings struct {
	Placeholder        string            `json:"placeholder"`
	Hotkeys            []string          `json:"hotkeys"`
	MinChars           int               `json:"minChars"`
	MaxResults         int               `json:"maxResults"`
	NoResultsFoundMsg  string            `json:"noResultsFoundMsg"`
	RecognizeLanguages bool              `json:"recognizeLanguages"`
	Languages          []domain.Language `json:"languages,omitempty"`
	Mode               string            `json:"mode"`
}

type configResponse struct {
	ID                       string               `json:"id"`
	Version                  string               `json:"version"`
	Host                     string               `json:"host,omitempty"`
	Base                     string               `json:"base"`
	CacheBustingToken        string               `json:"cacheBustingToken,omitempty"`
	CacheBustingStrategy     string               `json:"cacheBustingStrategy,omitempty"`
	SidebarFilterPlaceholder string               `json:"sidebarFilterPlaceholder"`
	ToolbarFilterPlaceholder string               `json:"toolbarFilterPlaceholder"`
	FilterNotFoundMsg        string               `json:"filterNotFoundMsg"`
	ShowSidebarFilter        bool                 `json:"showSidebarFilter"`
	MaxHistoryItems          int                  `json:"maxHistoryItems"`
	HomeIcon                 string               `json:"homeIcon,omitempty"`
	Access                   []domain.AccessLevel `json:"access"`
	ToolbarLinks             []domain.ToolbarLink `json:"toolbarLinks"`
	Search                   searchSettings       `json:"search"`
}

// Config serves the display settings a renderer needs. The sidebar itself is
// served by Sidebar so it can be access-filtered.
func Config(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap, ok := currentSnapshot(w, d)
		if !ok {
			return
		}
		cfg := snap.Config

		writeJSON(w, http.StatusOK, configResponse{
			ID:                       cfg.ID,
			Version:                  cfg.Version,
			Host:                     cfg.Host,
			Base:                     cfg.Base,
			CacheBustingToken:        cfg.CacheBustingToken,
			CacheBustingStrategy:     cfg.CacheBustingStrategy,
			SidebarFilterPlaceholder: cfg.SidebarFilterPlaceholder,
			ToolbarFilterPlaceholder: cfg.ToolbarFilterPlaceholder,
			FilterNotFoundMsg:        cfg.FilterNotFoundMsg,
			ShowSidebarFilter:        cfg.ShowSidebarFilter,
			MaxHistoryItems:          cfg.MaxHistoryItems,
			HomeIcon:                 cfg.HomeIcon,
			Access:                   cfg.Access,
			ToolbarLinks:             cfg.ToolbarLinks,
			Search: searchSettings{
				Placeholder:        cfg.Search.Placeholder,
				Hotkeys:            cfg.Search.Hotkeys,
				MinChars:           cfg.Search.MinChars,
				MaxResults:         cfg.Search.MaxResults,
				NoResultsFoundMsg:  cfg.Search.NoResultsFoundMsg,
				RecognizeLanguages: cfg.Search.RecognizeLanguages,
				Languages:          cfg.Search.Languages,
				Mode:               cfg.Search.Mode.String(),
			},
		}, d.Logger)
	}
}
