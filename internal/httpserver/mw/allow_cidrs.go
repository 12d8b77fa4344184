package mw

import (
	"net/http"

	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/utils"
)

// AllowOnlyCIDRS allows only clients inside the given networks or addresses.
// An empty list disables filtering. trustProxy should only be set behind a
// trusted reverse proxy/tunnel (e.g., cloudflared).
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewAddrMatcher(allowed)
	if inv := m.Invalid(); len(inv) > 0 {
		log.Warn("Ignoring invalid CIDR entries", logger.Strings("entries", inv))
	}
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS: empty matcher, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			addr, ok := utils.ClientAddr(r, trustProxy)
			if !ok || !m.Allow(addr) {
				log.Debug("AllowOnlyCIDRS: rejected",
					logger.String("client", addr.String()),
					logger.String("remote_addr", r.RemoteAddr),
					logger.Bool("trust_proxy", trustProxy))
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
