package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKey = "stats:users"

// Cache stores computed statistics in Redis with a short TTL
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the cached stats, or nil on a cache miss
func (c *Cache) Get(ctx context.Context) (*Stats, error) {
	payload, err := c.client.Get(ctx, cacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read stats cache: %w", err)
	}

	stats := new(Stats)
	if err := json.Unmarshal(payload, stats); err != nil {
		return nil, fmt.Errorf("failed to decode cached stats: %w", err)
	}

	return stats, nil
}

// Set stores the stats with the configured TTL
func (c *Cache) Set(ctx context.Context, stats *Stats) error {
	payload, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("failed to encode stats: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write stats cache: %w", err)
	}

	return nil
}
