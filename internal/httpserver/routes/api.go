package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/MrSnakeDoc/docnav/internal/httpserver/deps"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/handlers"
	"github.com/MrSnakeDoc/docnav/internal/httpserver/mw"
)

func init() { Register(registerAPI) }

func registerAPI(r chi.Router, d deps.Deps) {
	r.Route("/api", func(api chi.Router) {
		api.Use(mw.EnforceHost(d.AllowedHosts, d.Logger))

		// Streams live as long as the client types; no request deadline.
		api.Get("/sessions/{id}/stream", handlers.StreamSession(d))

		api.Group(func(api chi.Router) {
			api.Use(middleware.Timeout(d.RequestTimeout))

			api.Get("/config", handlers.Config(d))
			api.Get("/sidebar", handlers.Sidebar(d))
			api.Get("/search", handlers.Search(d))
			api.Get("/members", handlers.Members(d))

			api.With(mw.RateLimit(mw.RateLimitConfig{
				Burst:             d.SessionBurst,
				RefillPerIPPerMin: d.SessionRefillPerMin,
				TrustProxy:        d.TrustProxy,
			})).Post("/sessions", handlers.CreateSession(d))
			api.Get("/sessions/{id}", handlers.QuerySession(d))
			api.Delete("/sessions/{id}", handlers.DeleteSession(d))
		})
	})
}
