package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/amirasaad/proppilot/pkg/cache"
	"github.com/amirasaad/proppilot/pkg/domain"
	"github.com/redis/go-redis/v9"
)

// RedisSnapshotCache mirrors the committed account collection to a single
// Redis key as a JSON document.
type RedisSnapshotCache struct {
	client *redis.Client
	key    string
	logger *slog.Logger
}

// NewRedisSnapshotCache creates a snapshot cache from a Redis URL
// (e.g. "redis://localhost:6379/0"). The optional prefix is prepended to the
// fixed snapshot key.
func NewRedisSnapshotCache(url, prefix string, logger *slog.Logger) (*RedisSnapshotCache, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis snapshot cache: %w", err)
	}
	return &RedisSnapshotCache{
		client: redis.NewClient(opt),
		key:    prefix + cache.SnapshotKey,
		logger: logger.With("cache", "redis"),
	}, nil
}

// Read fetches and decodes the mirrored collection.
func (c *RedisSnapshotCache) Read(ctx context.Context) ([]domain.Account, error) {
	payload, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, cache.ErrNoSnapshot
		}
		return nil, fmt.Errorf("reading account snapshot: %w", err)
	}
	var accounts []domain.Account
	if err := json.Unmarshal(payload, &accounts); err != nil {
		return nil, fmt.Errorf("decoding account snapshot: %w", err)
	}
	return accounts, nil
}

// Write replaces the mirrored collection. The key has no TTL; the mirror is
// only ever rewritten, never expired.
func (c *RedisSnapshotCache) Write(ctx context.Context, accounts []domain.Account) error {
	payload, err := json.Marshal(accounts)
	if err != nil {
		return fmt.Errorf("encoding account snapshot: %w", err)
	}
	if err := c.client.Set(ctx, c.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("writing account snapshot: %w", err)
	}
	c.logger.Debug("account snapshot mirrored", "key", c.key, "accounts", len(accounts))
	return nil
}

// Close releases the underlying Redis connection.
func (c *RedisSnapshotCache) Close() error {
	return c.client.Close()
}

var _ cache.SnapshotCache = (*RedisSnapshotCache)(nil)
