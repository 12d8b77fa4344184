package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/session"
)

const (
	// DefaultSessionIdleTTL is how long an untouched remote session survives
	DefaultSessionIdleTTL = 15 * time.Minute
)

// SessionReaper closes remote filter sessions that went idle.
type SessionReaper struct {
	registry *session.Registry
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	now      func() time.Time
}

// NewSessionReaper creates a new session reaper
func NewSessionReaper(
	registry *session.Registry,
	log logger.Logger,
	interval time.Duration,
	idleTTL time.Duration,
) *SessionReaper {
	if idleTTL == 0 {
		idleTTL = DefaultSessionIdleTTL
	}

	return &SessionReaper{
		registry: registry,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
		now:      time.Now,
	}
}

// Start begins the periodic sweep
func (sr *SessionReaper) Start(ctx context.Context) {
	ticker := time.NewTicker(sr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				sr.Collect()
			case <-sr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the reaper
func (sr *SessionReaper) Stop() {
	sr.stopOnce.Do(func() { close(sr.stopCh) })
}

// Collect closes sessions idle for longer than the TTL and returns how many.
func (sr *SessionReaper) Collect() int {
	n := sr.registry.Sweep(sr.now().Add(-sr.idleTTL))
	if n > 0 {
		sr.logger.Info("Closed idle sessions",
			logger.Int("closed", n),
			logger.Int("open", sr.registry.Len()))
	} else {
		sr.logger.Debug("No idle sessions")
	}
	return n
}
