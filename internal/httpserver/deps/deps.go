package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
)

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string

	AllowedHosts []string // Host headers allowed to reach the API (empty = any)
	AllowedCIDRS []string // networks allowed to call /reload and /infra
	TrustProxy   bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CORSOrigins  []string // origins allowed to call the API from a browser

	RequestTimeout time.Duration // deadline for every non-streaming request

	MemoryIndex   *index.MemoryIndex // current configuration snapshot
	Sessions      *session.Registry  // remote filter sessions
	Debouncer     *session.Debouncer // settles streamed queries; nil evaluates them at once
	RedisClient   *redis.Client      // nil when publication is disabled
	Publications  *redisstore.Store  // published snapshots; nil when publication is disabled
	ReloadTrigger chan struct{}      // manual reload requests

	SessionBurst        int // session creations allowed in a burst per client
	SessionRefillPerMin int // session creations regained per minute per client
}
