package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/docnav/internal/domain"
)

var (
	// ErrNotPublished is returned when no snapshot was published for an id.
	ErrNotPublished = errors.New("configuration not published")
	// ErrCorrupt is returned when a published configuration does not decode.
	ErrCorrupt = errors.New("published configuration is corrupt")
)

// Store publishes validated configurations so that other renderer
// processes can pick them up without parsing the payload again.
type Store struct {
	client redis.Cmdable
}

// NewStore creates a new Redis store
func NewStore(client redis.Cmdable) *Store {
	return &Store{
		client: client,
	}
}

// SaveSnapshot publishes cfg and the fingerprint of the payload it came from.
// Both keys and the id set are written in one transaction.
func (s *Store) SaveSnapshot(ctx context.Context, cfg *domain.Configuration, fingerprint string) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ConfigKey(cfg.ID), data, 0)
		pipe.Set(ctx, FingerprintKey(cfg.ID), fingerprint, 0)
		pipe.SAdd(ctx, AllConfigsKey(), cfg.ID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish configuration %s: %w", cfg.ID, err)
	}
	return nil
}

// GetFingerprint returns the fingerprint published for id.
func (s *Store) GetFingerprint(ctx context.Context, id string) (string, error) {
	fp, err := s.client.Get(ctx, FingerprintKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotPublished
		}
		return "", fmt.Errorf("failed to get fingerprint: %w", err)
	}
	return fp, nil
}

// GetConfiguration returns the configuration published for id.
func (s *Store) GetConfiguration(ctx context.Context, id string) (*domain.Configuration, error) {
	data, err := s.client.Get(ctx, ConfigKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotPublished
		}
		return nil, fmt.Errorf("failed to get configuration: %w", err)
	}

	var cfg domain.Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, id, err)
	}
	return &cfg, nil
}

// ListIDs returns the ids of every published configuration.
func (s *Store) ListIDs(ctx context.Context) ([]string, error) {
	ids, err := s.client.SMembers(ctx, AllConfigsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list configuration ids: %w", err)
	}
	return ids, nil
}

// DeleteSnapshot removes a published configuration.
func (s *Store) DeleteSnapshot(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, ConfigKey(id), FingerprintKey(id))
	pipe.SRem(ctx, AllConfigsKey(), id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete configuration %s: %w", id, err)
	}
	return nil
}
