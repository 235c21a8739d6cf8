// Package snapshot provides the Redis-backed snapshot cache. Snapshots are
// pure function output, so the cache is an optimization only: every error
// path degrades to a recompute.
package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"cna/internal/workforce/models"
	"cna/pkg/platform/sentinel"
)

const snapshotKeyPrefix = "cna:snapshot:"

// RedisCache caches aggregate snapshots keyed by dataset ID with a TTL.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCache constructs a Redis-backed snapshot cache.
func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

func key(datasetID string) string { return snapshotKeyPrefix + datasetID }

// Get returns the cached snapshot or sentinel.ErrNotFound on a miss.
func (c *RedisCache) Get(ctx context.Context, datasetID string) (*models.AggregatedData, error) {
	raw, err := c.client.Get(ctx, key(datasetID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	var snapshot models.AggregatedData
	if err := json.Unmarshal(raw, &snapshot); err != nil {
		// A corrupt entry reads as a miss; the caller recomputes and overwrites.
		return nil, sentinel.ErrNotFound
	}
	return &snapshot, nil
}

// Set stores a snapshot under the dataset ID.
func (c *RedisCache) Set(ctx context.Context, datasetID string, snapshot *models.AggregatedData) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := c.client.Set(ctx, key(datasetID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Invalidate drops the cached snapshot for a dataset.
func (c *RedisCache) Invalidate(ctx context.Context, datasetID string) error {
	if err := c.client.Del(ctx, key(datasetID)).Err(); err != nil {
		return fmt.Errorf("invalidate snapshot: %w", err)
	}
	return nil
}
