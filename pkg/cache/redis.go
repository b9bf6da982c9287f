package cache

import (
	"context"
	"time"

	"github.com/go-redis/cache/v8"
	"github.com/go-redis/redis/v8"
)

type redisCache struct {
	c *cache.Cache
}

// NewRedisCache returns a Cache backed by the given redis client. Entries go
// straight to redis; the local in-process layer is skipped so every replica
// sees the same state.
func NewRedisCache(client *redis.Client) Cache {
	return &redisCache{c: cache.New(&cache.Options{Redis: client})}
}

// Set stores value under key for ttl. A zero ttl keeps the entry until evicted.
func (r *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	return r.c.Set(&cache.Item{
		Ctx:            ctx,
		Key:            key,
		Value:          value,
		TTL:            ttl,
		SkipLocalCache: true,
	})
}

// Get loads the entry for key into value, which must be a pointer. It reports
// whether a live entry was found.
func (r *redisCache) Get(ctx context.Context, key string, value any) bool {
	return r.c.Get(ctx, key, value) == nil
}

// Exists tells whether key holds a live entry
func (r *redisCache) Exists(ctx context.Context, key string) bool {
	return r.c.Exists(ctx, key)
}

// Delete removes the entry for key
func (r *redisCache) Delete(ctx context.Context, key string) error {
	return r.c.Delete(ctx, key)
}
