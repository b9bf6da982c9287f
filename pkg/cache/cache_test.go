package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type certificateFixture struct {
	ID    string `json:"id"`
	State string `json:"state"`
	Hash  string `json:"hash"`
}

func testCaches(t *testing.T) map[string]Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Cache{
		"memory": NewMemoryCache(),
		"redis":  NewRedisCache(client),
	}
}

func TestCacheRoundTrip(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			stored := certificateFixture{ID: "cert-1", State: "Done", Hash: "deadbeef"}
			require.NoError(t, c.Set(ctx, "certificate-cert-1", stored, time.Minute))

			var got certificateFixture
			require.True(t, c.Get(ctx, "certificate-cert-1", &got))
			assert.Equal(t, stored, got)

			assert.True(t, c.Exists(ctx, "certificate-cert-1"))
		})
	}
}

func TestCacheMissingKey(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			var got certificateFixture
			assert.False(t, c.Get(ctx, "no-such-key", &got))
			assert.False(t, c.Exists(ctx, "no-such-key"))
		})
	}
}

func TestCacheDelete(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "ephemeral", "value", time.Minute))
			require.NoError(t, c.Delete(ctx, "ephemeral"))
			assert.False(t, c.Exists(ctx, "ephemeral"))
		})
	}
}

func TestCacheOverwrite(t *testing.T) {
	ctx := context.Background()

	for name, c := range testCaches(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, c.Set(ctx, "certificate-cert-1", certificateFixture{ID: "cert-1", State: "Analyzing"}, time.Minute))
			require.NoError(t, c.Set(ctx, "certificate-cert-1", certificateFixture{ID: "cert-1", State: "Done"}, time.Minute))

			var got certificateFixture
			require.True(t, c.Get(ctx, "certificate-cert-1", &got))
			assert.Equal(t, "Done", got.State)
		})
	}
}
