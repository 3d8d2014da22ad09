package phone

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "lookup:type:"

// Cache remembers device classifications so repeat submissions of the same
// number skip the paid lookup call. A nil *Cache is a no-op, which keeps the
// validator usable without Redis.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCache wraps a Redis client. Returns nil when client is nil so callers
// can pass the result straight to NewValidator.
func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Cache{client: client, ttl: ttl}
}

// Get returns the cached device classification for a number. Redis errors
// read as a miss; the live lookup is the fallback.
func (c *Cache) Get(ctx context.Context, number string) (string, bool) {
	if c == nil {
		return "", false
	}
	deviceType, err := c.client.Get(ctx, cacheKeyPrefix+number).Result()
	if err != nil {
		return "", false
	}
	return deviceType, true
}

// Set stores a classification. Failures are ignored; the cache is advisory.
func (c *Cache) Set(ctx context.Context, number, deviceType string) {
	if c == nil || deviceType == "" {
		return
	}
	_ = c.client.Set(ctx, cacheKeyPrefix+number, deviceType, c.ttl).Err()
}
