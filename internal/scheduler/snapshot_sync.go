package scheduler

import (
	"context"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	redisstore "github.com/MrSnakeDoc/docnav/internal/store/redis"
)

// Drift compares the published snapshot with the one loaded from disk.
type Drift int

const (
	DriftNone Drift = iota
	DriftMissing
	DriftStale
)

func (d Drift) String() string {
	switch d {
	case DriftMissing:
		return "missing"
	case DriftStale:
		return "stale"
	default:
		return "none"
	}
}

// SnapshotSyncer checks on startup whether the published configuration
// matches the local one, and republishes it when it does not.
type SnapshotSyncer struct {
	publisher Publisher
	index     *index.MemoryIndex
	logger    logger.Logger
}

// NewSnapshotSyncer creates a new snapshot syncer
func NewSnapshotSyncer(publisher Publisher, idx *index.MemoryIndex, log logger.Logger) *SnapshotSyncer {
	return &SnapshotSyncer{
		publisher: publisher,
		index:     idx,
		logger:    log,
	}
}

// verifyPayload checks that the published configuration decodes and carries
// the loaded identity. A matching fingerprint over a broken value is stale.
func (ss *SnapshotSyncer) verifyPayload(ctx context.Context, cfg *domain.Configuration) (Drift, error) {
	published, err := ss.publisher.GetConfiguration(ctx, cfg.ID)
	switch {
	case errors.Is(err, redisstore.ErrNotPublished):
		return DriftMissing, nil
	case errors.Is(err, redisstore.ErrCorrupt):
		ss.logger.Warn("Published configuration does not decode",
			logger.String("id", cfg.ID),
			logger.Error(err))
		return DriftStale, nil
	case err != nil:
		return DriftNone, fmt.Errorf("read published configuration: %w", err)
	case published.Version != cfg.Version:
		return DriftStale, nil
	}
	return DriftNone, nil
}

// Sync reports the drift found and fixes it.
func (ss *SnapshotSyncer) Sync(ctx context.Context) (Drift, error) {
	snap, ok := ss.index.Current()
	if !ok {
		return DriftNone, errors.New("no configuration loaded")
	}

	published, err := ss.publisher.GetFingerprint(ctx, snap.Config.ID)
	drift := DriftNone
	switch {
	case errors.Is(err, redisstore.ErrNotPublished):
		drift = DriftMissing
	case err != nil:
		return DriftNone, fmt.Errorf("read published fingerprint: %w", err)
	case published != snap.Fingerprint:
		drift = DriftStale
	default:
		drift, err = ss.verifyPayload(ctx, snap.Config)
		if err != nil {
			return DriftNone, err
		}
	}

	if drift == DriftNone {
		ss.logger.Info("Published configuration is up to date", logger.String("id", snap.Config.ID))
		return drift, nil
	}

	ss.logger.Warn("Published configuration drifted from disk, republishing",
		logger.String("id", snap.Config.ID),
		logger.String("drift", drift.String()))

	if err := ss.publisher.SaveSnapshot(ctx, snap.Config, snap.Fingerprint); err != nil {
		return drift, fmt.Errorf("republish configuration: %w", err)
	}
	return drift, nil
}
