package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/MrSnakeDoc/docnav/internal/utils"
)

// RateLimitConfig bounds how often one client may hit a route.
type RateLimitConfig struct {
	Burst             int  // bucket capacity
	RefillPerIPPerMin int  // tokens regained per minute
	MaxEntries        int  // clients tracked at once; the least recently seen is forgotten
	TrustProxy        bool // resolve the client from proxy headers
}

type bucket struct {
	mu      sync.Mutex
	tokens  float64
	lastRef time.Time
}

type limiter struct {
	rate     float64
	capacity float64
	mu       sync.Mutex
	buckets  *lru.Cache[string, *bucket]
	now      func() time.Time
}

func newLimiter(cfg RateLimitConfig) *limiter {
	if cfg.Burst < 1 {
		cfg.Burst = 1
	}
	if cfg.RefillPerIPPerMin < 1 {
		cfg.RefillPerIPPerMin = 1
	}
	if cfg.MaxEntries < 1 {
		cfg.MaxEntries = 4096
	}
	// lru.New only fails on a non-positive size.
	cache, _ := lru.New[string, *bucket](cfg.MaxEntries)
	return &limiter{
		rate:     float64(cfg.RefillPerIPPerMin) / 60.0,
		capacity: float64(cfg.Burst),
		buckets:  cache,
		now:      time.Now,
	}
}

func (l *limiter) bucketFor(key string, now time.Time) *bucket {
	l.mu.Lock()
	defer l.mu.Unlock()
	b, ok := l.buckets.Get(key)
	if !ok {
		b = &bucket{tokens: l.capacity, lastRef: now}
		l.buckets.Add(key, b)
	}
	return b
}

// allow takes one token for key. When none is left it returns how long to wait.
func (l *limiter) allow(key string) (ok bool, remaining int, retryAfter time.Duration) {
	now := l.now()
	b := l.bucketFor(key, now)

	b.mu.Lock()
	defer b.mu.Unlock()

	if elapsed := now.Sub(b.lastRef).Seconds(); elapsed > 0 {
		b.tokens = math.Min(l.capacity, b.tokens+elapsed*l.rate)
		b.lastRef = now
	}

	if b.tokens >= 1.0 {
		b.tokens--
		return true, int(b.tokens), 0
	}

	wait := time.Duration((1.0 - b.tokens) / l.rate * float64(time.Second))
	if wait < time.Second {
		wait = time.Second
	}
	return false, 0, wait
}

// RateLimit rejects clients that exhausted their token bucket with 429.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	l := newLimiter(cfg)
	limitStr := strconv.Itoa(int(l.capacity))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := r.RemoteAddr
			if addr, ok := utils.ClientAddr(r, cfg.TrustProxy); ok {
				key = addr.String()
			}

			ok, remaining, retry := l.allow(key)
			w.Header().Set("X-RateLimit-Limit", limitStr)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))
			if !ok {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(retry.Seconds()))))
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
