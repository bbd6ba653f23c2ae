package binding

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/dmitrymomot/flowforge/pkg/cache"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// DefaultLifetime is the absolute lifetime of a binding when none is configured.
const DefaultLifetime = 10 * time.Minute

// ErrCacheWrite wraps a failed best-effort insert. It is logged, never returned.
var ErrCacheWrite = errors.New("binding: cache write failed")

// Binding is the resolved mapping from a logical name to a loadable type.
type Binding struct {
	ResolvedAt  time.Time       `json:"resolved_at"`
	ExpiresAt   time.Time       `json:"expires_at"`
	LogicalName string          `json:"logical_name"`
	TypeID      resolver.TypeID `json:"type_id"`
}

// Expired reports whether the binding's absolute lifetime has elapsed.
// A zero ExpiresAt never expires.
func (b Binding) Expired(now time.Time) bool {
	return !b.ExpiresAt.IsZero() && !now.Before(b.ExpiresAt)
}

// Option configures a Cache.
type Option func(*Cache)

// WithLifetime sets how long a binding stays valid after it is stored.
// A negative lifetime stores bindings without expiry.
// Default: DefaultLifetime.
func WithLifetime(d time.Duration) Option {
	return func(c *Cache) {
		if d != 0 {
			c.lifetime = d
		}
	}
}

// WithSliding hands expiration over to the backend, which must itself be
// configured for sliding expiration. Stored bindings then carry no
// ExpiresAt and reads do not check one.
func WithSliding() Option {
	return func(c *Cache) {
		c.sliding = true
	}
}

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Cache) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithName labels log records, typically with the contract kind.
func WithName(name string) Option {
	return func(c *Cache) {
		c.name = name
	}
}

// Cache stores at most one Binding per logical name.
//
// It is an optimization, not a source of truth: backend failures on reads are
// treated as misses and failed writes are logged and dropped.
type Cache struct {
	backend  cache.Cache[Binding]
	logger   *slog.Logger
	now      func() time.Time
	name     string
	lifetime time.Duration
	sliding  bool
}

// New wraps backend. The backend's own TTL handling is kept in sync with the
// configured lifetime on every Put.
func New(backend cache.Cache[Binding], opts ...Option) *Cache {
	c := &Cache{
		backend:  backend,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
		lifetime: DefaultLifetime,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lifetime returns the configured binding lifetime.
func (c *Cache) Lifetime() time.Duration {
	return c.lifetime
}

// Get returns the live binding for name.
func (c *Cache) Get(ctx context.Context, name string) (Binding, bool) {
	b, err := c.backend.Get(ctx, name)
	if err != nil {
		if !errors.Is(err, cache.ErrNotFound) {
			c.logger.WarnContext(ctx, "binding cache read failed",
				slog.String("cache", c.name),
				slog.String("name", name),
				slog.Any("error", err),
			)
		}
		return Binding{}, false
	}

	if !c.sliding && b.Expired(c.now()) {
		c.Remove(ctx, name)
		return Binding{}, false
	}

	return b, true
}

// Put stores the binding for name, replacing any previous one, and returns
// it. Failures are logged at Warn and otherwise ignored.
func (c *Cache) Put(ctx context.Context, name string, id resolver.TypeID) Binding {
	now := c.now()
	b := Binding{
		LogicalName: name,
		TypeID:      id,
		ResolvedAt:  now,
	}
	if c.lifetime > 0 && !c.sliding {
		b.ExpiresAt = now.Add(c.lifetime)
	}

	if err := c.backend.Set(ctx, name, b, c.lifetime); err != nil {
		c.logger.WarnContext(ctx, "binding cache write failed",
			slog.String("cache", c.name),
			slog.String("name", name),
			slog.String("type_id", string(id)),
			slog.Any("error", errors.Join(ErrCacheWrite, err)),
		)
	}

	return b
}

// Remove evicts the binding for name.
func (c *Cache) Remove(ctx context.Context, name string) {
	if err := c.backend.Delete(ctx, name); err != nil {
		c.logger.WarnContext(ctx, "binding cache delete failed",
			slog.String("cache", c.name),
			slog.String("name", name),
			slog.Any("error", err),
		)
	}
}

// Reset drops every binding.
func (c *Cache) Reset(ctx context.Context) error {
	return c.backend.Clear(ctx)
}

// Close releases the backend.
func (c *Cache) Close() error {
	return c.backend.Close()
}
