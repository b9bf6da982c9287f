package cache

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/verimedia/media-platform/internal/config"
	"github.com/verimedia/media-platform/internal/log"
)

// ForEver It can be cached forever
const ForEver = 0 * time.Second

// Cache interface proposes an interface that any cache should adhere
type Cache interface {
	// Set sets a value in the cache accessible by the key. The ttl param is the maximum time to live in the cache.
	// a ttl=0 means that the entry could be cached forever
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	// Get searches for a non expired entry in the cache and returns the result in the value variable sent as reference and a found parameter. You should only trust the returned value if found is true
	Get(ctx context.Context, key string, value any) bool
	// Exists tells whether a key exists in the cache with a valid ttl
	Exists(ctx context.Context, key string) bool
	// Delete removes an entry from the cache.
	Delete(ctx context.Context, key string) error
}

// NewCacheClient creates a new cache client based on the configuration
func NewCacheClient(ctx context.Context, cfg config.Configuration) (Cache, error) {
	if cfg.Cache.Provider == config.CacheProviderRedis {
		opts, err := redis.ParseURL(cfg.Cache.Url)
		if err != nil {
			log.Error(ctx, "cannot parse redis url", err, "url", cfg.Cache.Url)
			return nil, err
		}
		rdb := redis.NewClient(opts)
		if pingCmd := rdb.Ping(ctx); pingCmd.Err() != nil {
			log.Error(ctx, "cannot connect to redis", pingCmd.Err(), "host", cfg.Cache.Url)
			return nil, pingCmd.Err()
		}
		return NewRedisCache(rdb), nil
	}
	return NewMemoryCache(), nil
}
