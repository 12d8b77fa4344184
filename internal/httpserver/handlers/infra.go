package handlers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/navtree"
)

type componentStatus struct {
	OK           bool     `json:"ok"`
	ConfigID     string   `json:"config_id,omitempty"`
	PagesLoaded  *int     `json:"pages_loaded,omitempty"`
	Members      *int     `json:"members,omitempty"`
	IndexBuilt   *bool    `json:"index_built,omitempty"`
	Reloads      *int     `json:"reloads,omitempty"`
	LastReload   string   `json:"last_reload,omitempty"`
	OpenSessions *int     `json:"open_sessions,omitempty"`
	Published    []string `json:"published,omitempty"`
	BusyWorkers  *int     `json:"busy_workers,omitempty"`
	Workers      *int     `json:"workers,omitempty"`
	Mode         string   `json:"mode,omitempty"`
	Impact       string   `json:"impact,omitempty"`
	Error        string   `json:"error,omitempty"`
}

type infraResponse struct {
	ServingMode string                     `json:"serving_mode"`
	Components  map[string]componentStatus `json:"components"`
}

func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"configuration": checkConfiguration(d),
			"redis":         checkRedis(r.Context(), d),
			"sessions":      checkSessions(d),
			"debouncer":     checkDebouncer(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			ServingMode: determineServingMode(components),
			Components:  components,
		}, d.Logger)
	}
}

func determineServingMode(components map[string]componentStatus) string {
	if cfg, ok := components["configuration"]; ok && !cfg.OK {
		return "critical" // nothing to serve
	}
	// Redis only carries published snapshots.
	if redis, ok := components["redis"]; ok && !redis.OK && redis.Mode != "disabled" {
		return "degraded"
	}
	return "nominal"
}

func checkConfiguration(d deps.Deps) componentStatus {
	snap, ok := d.MemoryIndex.Current()
	if !ok {
		return componentStatus{OK: false, Error: "not loaded"}
	}

	pages := navtree.Count(snap.Tree)
	members := len(snap.Members)
	built := snap.Search.Built()
	reloads := d.MemoryIndex.Reloads()
	return componentStatus{
		OK:          true,
		ConfigID:    snap.Config.ID,
		PagesLoaded: &pages,
		Members:     &members,
		IndexBuilt:  &built,
		Reloads:     &reloads,
		LastReload:  d.MemoryIndex.GetLastReload().Format("2006-01-02 15:04:05"),
	}
}

func checkRedis(ctx context.Context, d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "disabled",
			Impact: "snapshot-publication-disabled",
		}
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "snapshot-publication-failing",
			Error:  err.Error(),
		}
	}

	status := componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "snapshot-publication-enabled",
	}
	if d.Publications != nil {
		ids, err := d.Publications.ListIDs(ctx)
		if err != nil {
			status.Error = err.Error()
		} else {
			sort.Strings(ids)
			status.Published = ids
		}
	}
	return status
}

func checkSessions(d deps.Deps) componentStatus {
	n := d.Sessions.Len()
	return componentStatus{OK: true, OpenSessions: &n}
}

func checkDebouncer(d deps.Deps) componentStatus {
	if d.Debouncer == nil {
		return componentStatus{OK: true, Mode: "inline"}
	}
	busy := d.Debouncer.Running()
	workers := d.Debouncer.Workers()
	return componentStatus{OK: true, Mode: "pooled", BusyWorkers: &busy, Workers: &workers}
}
