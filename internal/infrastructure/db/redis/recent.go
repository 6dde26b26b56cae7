package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kudoshq/kudos-api/internal/core/ports"
)

const (
	recentKey = "kudos:recent"
	recentTTL = 30 * time.Second
)

// RecentCache caches the recent-kudos widget payload in Redis with a short
// TTL. Entries are stored as a single JSON blob under a fixed key; new kudos
// invalidate the key through the notification dispatcher.
type RecentCache struct {
	client *redis.Client
}

// NewRecentCache creates a RecentCache wrapping the given Redis client.
func NewRecentCache(client *redis.Client) *RecentCache {
	return &RecentCache{client: client}
}

// Get returns the cached entries and whether the key was present.
func (c *RecentCache) Get(ctx context.Context) ([]*ports.RecentEntry, bool, error) {
	raw, err := c.client.Get(ctx, recentKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("recent cache get: %w", err)
	}

	var entries []*ports.RecentEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		// A corrupt value is treated as a miss; it will be overwritten.
		return nil, false, nil
	}
	return entries, true, nil
}

// Set stores entries under the fixed key (expires after recentTTL).
func (c *RecentCache) Set(ctx context.Context, entries []*ports.RecentEntry) error {
	raw, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("recent cache marshal: %w", err)
	}
	return c.client.Set(ctx, recentKey, raw, recentTTL).Err()
}

// Invalidate drops the cached widget payload.
func (c *RecentCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, recentKey).Err()
}
