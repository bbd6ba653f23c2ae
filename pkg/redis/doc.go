// Package redis opens go-redis clients for the shared binding cache.
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"),
//	    redis.WithPoolSize(20),
//	    redis.WithRetry(5, time.Second),
//	)
//	if err != nil {
//	    return err
//	}
//
// Open accepts redis:// and rediss:// URLs, retries the initial PING with a
// linear backoff and honors context cancellation between attempts.
// [Healthcheck] plugs into the readiness endpoint and [Shutdown] into the
// server's shutdown hooks.
package redis
