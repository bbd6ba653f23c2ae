// Package cache provides a generic Cache interface with in-memory and Redis
// implementations. It backs the component binding caches in pkg/binding.
//
// # Interface
//
// The [Cache] interface is generic over value type V:
//
//   - Get(ctx, key) (V, error): retrieve a value
//   - Set(ctx, key, value, ttl) error: store a value with TTL
//   - Delete(ctx, key) error: remove a key
//   - Has(ctx, key) (bool, error): check existence
//   - Clear(ctx) error: remove all entries
//   - Close() error: release resources
//
// TTL semantics for Set:
//   - Positive duration: item expires after this duration
//   - Zero: use the cache's configured default TTL (1 hour by default)
//   - Negative: item never expires
//
// # Absolute and Sliding Expiration
//
// By default an entry becomes invalid a fixed TTL after it was written,
// however often it is read. With [WithSlidingExpiration] (memory) or
// [WithRedisSlidingExpiration] (Redis) each successful Get restarts the TTL
// instead, so only idle entries expire.
//
// # In-Memory Cache
//
// Use [NewMemory] for single-process applications or testing. Expired
// entries are dropped when read; a background sweep on a cron schedule
// removes the rest:
//
//	c := cache.NewMemory[binding.Binding](
//	    cache.WithDefaultTTL(10 * time.Minute),
//	    cache.WithSweepSchedule("@every 1m"),
//	    cache.WithMaxEntries(10000),
//	)
//	defer c.Close()
//
// Pass an empty schedule to rely on read-time eviction only. Schedules below
// one second are rounded up by cron.
//
// # Redis Cache
//
// Use [NewRedis] to share bindings between processes:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	c := cache.NewRedis[binding.Binding](client, nil,
//	    cache.WithPrefix("bindings:action"),
//	    cache.WithRedisDefaultTTL(10 * time.Minute),
//	)
//
// Pass a custom [Marshaler] as the second argument to [NewRedis] to use
// a different serialization format. If nil, JSON is used.
//
// # Error Handling
//
//   - [ErrNotFound]: key does not exist or has expired
//   - [ErrClosed]: operation on a closed cache
//   - [ErrMarshal] / [ErrUnmarshal]: value (de)serialization failed
//   - [ErrInvalidSchedule]: sweep schedule rejected by [ValidateSchedule]
package cache
