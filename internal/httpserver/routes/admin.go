package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/mw"
)

func init() { Register(registerAdmin) }

// Admin endpoints are only reachable from DOCNAV_ALLOWED_CIDRS.
func registerAdmin(r chi.Router, d deps.Deps) {
	guarded := r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		middleware.Timeout(d.RequestTimeout),
	)
	guarded.Post("/reload", handlers.Reload(d))
	guarded.Get("/infra", handlers.Infra(d))
	guarded.Get("/readyz", handlers.Readyz(d))
}
