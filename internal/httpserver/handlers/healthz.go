package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
)

type healthzResponse struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Version       string  `json:"version,omitempty"`
	Commit        string  `json:"commit,omitempty"`
	BuildDate     string  `json:"build_date,omitempty"`
	GoVersion     string  `json:"go_version,omitempty"`
	ConfigID      string  `json:"config_id,omitempty"`
	ConfigVersion string  `json:"config_version,omitempty"`
	Fingerprint   string  `json:"fingerprint,omitempty"`
}

func Healthz(d deps.Deps) http.HandlerFunc {
	start := d.StartTime
	return func(w http.ResponseWriter, r *http.Request) {
		resp := healthzResponse{
			Status:        "ok",
			Version:       d.Version,
			Commit:        d.Commit,
			BuildDate:     d.BuildDate,
			GoVersion:     d.GoVersion,
			UptimeSeconds: time.Since(start).Seconds(),
		}
		if snap, ok := d.MemoryIndex.Current(); ok {
			resp.ConfigID = snap.Config.ID
			resp.ConfigVersion = snap.Config.Version
			resp.Fingerprint = snap.Fingerprint
		}
		writeJSON(w, http.StatusOK, resp, d.Logger)
	}
}
