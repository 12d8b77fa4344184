package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MrSnakeDoc/docnav/internal/domain"
	"github.com/MrSnakeDoc/docnav/internal/index"
	"github.com/MrSnakeDoc/docnav/internal/logger"
	"github.com/MrSnakeDoc/docnav/internal/sources/docsconfig"
)

// Publisher receives every snapshot the reloader installs.
// *redis.Store implements it.
type Publisher interface {
	SaveSnapshot(ctx context.Context, cfg *domain.Configuration, fingerprint string) error
	GetFingerprint(ctx context.Context, id string) (string, error)
	GetConfiguration(ctx context.Context, id string) (*domain.Configuration, error)
	DeleteSnapshot(ctx context.Context, id string) error
}

// ConfigReloader keeps the in-memory snapshot in sync with the configuration
// and members files: on start, on a ticker, and on manual trigger.
type ConfigReloader struct {
	loader        *docsconfig.Loader
	mapper        *docsconfig.Mapper
	membersFile   string
	publisher     Publisher
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	stopOnce      sync.Once
	manualTrigger <-chan struct{}

	// reloadMu serializes reloads started by the ticker, the trigger and callers.
	reloadMu sync.Mutex
}

// NewConfigReloader creates a new configuration reloader.
// publisher may be nil when publication is disabled.
func NewConfigReloader(
	configFile string,
	membersFile string,
	publisher Publisher,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *ConfigReloader {
	return &ConfigReloader{
		loader:        docsconfig.NewLoader(configFile),
		mapper:        docsconfig.NewMapper(),
		membersFile:   membersFile,
		publisher:     publisher,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the configuration synchronously, then keeps reloading in the
// background. A failing first load is returned: nothing is served from an
// invalid configuration.
func (cr *ConfigReloader) Start(ctx context.Context) error {
	if _, err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial load failed: %w", err)
	}

	ticker := time.NewTicker(cr.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				cr.reloadAndLog(ctx)
			case <-cr.manualTrigger:
				cr.logger.Info("Manual reload triggered")
				cr.reloadAndLog(ctx)
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the background reloads
func (cr *ConfigReloader) Stop() {
	cr.stopOnce.Do(func() { close(cr.stopCh) })
}

func (cr *ConfigReloader) reloadAndLog(ctx context.Context) {
	if _, err := cr.Reload(ctx); err != nil {
		// The previous snapshot stays in place.
		cr.logger.Error("Failed to reload configuration, keeping previous snapshot",
			logger.String("file", cr.loader.Path()),
			logger.Error(err))
	}
}

// Reload rebuilds the snapshot from disk and swaps it in. It reports whether
// a new snapshot was installed; unchanged files are skipped.
func (cr *ConfigReloader) Reload(ctx context.Context) (bool, error) {
	cr.reloadMu.Lock()
	defer cr.reloadMu.Unlock()

	fingerprint, err := docsconfig.SourceFingerprint(cr.loader.Path(), cr.membersFile)
	if err != nil {
		return false, err
	}
	if fingerprint == cr.index.Fingerprint() {
		cr.logger.Debug("Configuration unchanged, skipping rebuild")
		return false, nil
	}

	raw, _, err := cr.loader.Load()
	if err != nil {
		return false, err
	}

	cfg, tree, err := cr.mapper.Map(raw)
	if err != nil {
		return false, err
	}

	members, err := docsconfig.LoadMembers(cr.membersFile)
	if err != nil {
		return false, err
	}

	prev, hadPrev := cr.index.Current()
	snap := index.NewSnapshot(cfg, tree, members, fingerprint)
	cr.index.Update(snap)

	cr.logger.Info("Configuration loaded",
		logger.String("id", cfg.ID),
		logger.String("version", cfg.Version),
		logger.Int("entries", len(snap.Tree)),
		logger.Int("members", len(members)),
		logger.Bool("index_preloaded", snap.Search.Built()))

	// Publication is best effort; the in-memory snapshot is authoritative.
	if cr.publisher != nil {
		if err := cr.publisher.SaveSnapshot(ctx, cfg, fingerprint); err != nil {
			cr.logger.Warn("Failed to publish configuration", logger.Error(err))
		} else {
			cr.logger.Debug("Configuration published", logger.String("id", cfg.ID))
		}

		// A renamed configuration retracts what was published under the old id.
		if hadPrev && prev.Config.ID != cfg.ID {
			if err := cr.publisher.DeleteSnapshot(ctx, prev.Config.ID); err != nil {
				cr.logger.Warn("Failed to retract previous configuration",
					logger.String("id", prev.Config.ID),
					logger.Error(err))
			} else {
				cr.logger.Info("Retracted previous configuration",
					logger.String("id", prev.Config.ID),
					logger.String("replaced_by", cfg.ID))
			}
		}
	}

	return true, nil
}
