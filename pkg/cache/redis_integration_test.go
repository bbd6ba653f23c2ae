//go:build integration

package cache_test

import (
	"context"
	"os"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/cache"
	"github.com/dmitrymomot/flowforge/pkg/redis"
)

const testRedisURL = "redis://localhost:6379/0"

type record struct {
	Name     string    `json:"name"`
	Resolved time.Time `json:"resolved"`
}

func newTestRedisClient(t *testing.T) goredis.UniversalClient {
	t.Helper()

	url := os.Getenv("REDIS_URL")
	if url == "" {
		url = testRedisURL
	}

	ctx := context.Background()
	client, err := redis.Open(ctx, url)
	require.NoError(t, err, "failed to connect to Redis")

	t.Cleanup(func() {
		_ = client.Close()
	})

	return client
}

func TestRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("round-trips JSON values", func(t *testing.T) {
		t.Parallel()

		c := cache.NewRedis[record](newTestRedisClient(t), nil, cache.WithPrefix("test-roundtrip"))
		t.Cleanup(func() { _ = c.Clear(ctx) })

		want := record{Name: "Login", Resolved: time.Now().UTC().Truncate(time.Second)}
		require.NoError(t, c.Set(ctx, "login", want, time.Minute))

		got, err := c.Get(ctx, "login")
		require.NoError(t, err)
		require.Equal(t, want, got)

		_, err = c.Get(ctx, "missing")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("absolute TTL expires", func(t *testing.T) {
		t.Parallel()

		c := cache.NewRedis[string](newTestRedisClient(t), nil, cache.WithPrefix("test-ttl"))
		t.Cleanup(func() { _ = c.Clear(ctx) })

		require.NoError(t, c.Set(ctx, "key", "value", 100*time.Millisecond))
		time.Sleep(200 * time.Millisecond)

		_, err := c.Get(ctx, "key")
		require.ErrorIs(t, err, cache.ErrNotFound)
	})

	t.Run("sliding TTL restarts on read", func(t *testing.T) {
		t.Parallel()

		c := cache.NewRedis[string](newTestRedisClient(t), nil,
			cache.WithPrefix("test-sliding"),
			cache.WithRedisDefaultTTL(300*time.Millisecond),
			cache.WithRedisSlidingExpiration(),
		)
		t.Cleanup(func() { _ = c.Clear(ctx) })

		require.NoError(t, c.Set(ctx, "key", "value", 0))
		for range 4 {
			time.Sleep(150 * time.Millisecond)
			_, err := c.Get(ctx, "key")
			require.NoError(t, err)
		}
	})

	t.Run("sliding read restarts the configured lifetime", func(t *testing.T) {
		t.Parallel()

		const lifetime = 2 * time.Second
		client := newTestRedisClient(t)
		c := cache.NewRedis[string](client, nil,
			cache.WithPrefix("test-sliding-lifetime"),
			cache.WithRedisDefaultTTL(lifetime),
			cache.WithRedisSlidingExpiration(),
		)
		t.Cleanup(func() { _ = c.Clear(ctx) })

		require.NoError(t, c.Set(ctx, "key", "value", lifetime))
		_, err := c.Get(ctx, "key")
		require.NoError(t, err)

		ttl, err := client.PTTL(ctx, "test-sliding-lifetime:key").Result()
		require.NoError(t, err)
		require.LessOrEqual(t, ttl, lifetime)
		require.Greater(t, ttl, lifetime-time.Second)
	})

	t.Run("clear only touches prefix", func(t *testing.T) {
		t.Parallel()

		client := newTestRedisClient(t)
		a := cache.NewRedis[string](client, nil, cache.WithPrefix("test-clear-a"))
		b := cache.NewRedis[string](client, nil, cache.WithPrefix("test-clear-b"))
		t.Cleanup(func() { _ = b.Clear(ctx) })

		require.NoError(t, a.Set(ctx, "k", "a", time.Minute))
		require.NoError(t, b.Set(ctx, "k", "b", time.Minute))
		require.NoError(t, a.Clear(ctx))

		has, err := b.Has(ctx, "k")
		require.NoError(t, err)
		require.True(t, has)
	})
}
