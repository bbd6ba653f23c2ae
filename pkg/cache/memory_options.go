package cache

import (
	"errors"
	"time"

	"github.com/robfig/cron/v3"
)

// MemoryOption configures the in-memory cache.
type MemoryOption func(*memoryOptions)

type memoryOptions struct {
	sweepSchedule string
	defaultTTL    time.Duration
	maxEntries    int
	sliding       bool
}

func defaultMemoryOptions() *memoryOptions {
	return &memoryOptions{
		defaultTTL:    time.Hour,
		sweepSchedule: "@every 1m",
		maxEntries:    0, // 0 = unlimited
	}
}

// WithDefaultTTL sets the default expiration for cache entries when
// Set is called with a zero TTL.
// Default: 1 hour.
func WithDefaultTTL(d time.Duration) MemoryOption {
	return func(o *memoryOptions) {
		o.defaultTTL = d
	}
}

// WithSweepSchedule sets the cron schedule on which expired entries are
// removed in the background. Accepts standard 5-field expressions and
// descriptors such as "@every 30s". An empty string disables the sweep;
// expired entries are then only dropped when read.
// Default: "@every 1m".
func WithSweepSchedule(spec string) MemoryOption {
	return func(o *memoryOptions) {
		o.sweepSchedule = spec
	}
}

// WithMaxEntries sets the maximum number of entries in the cache.
// When the limit is reached, the least recently used entry is evicted.
// Zero means unlimited.
// Default: 0 (unlimited).
func WithMaxEntries(n int) MemoryOption {
	return func(o *memoryOptions) {
		o.maxEntries = n
	}
}

// WithSlidingExpiration makes every successful Get restart the entry's TTL.
// Default: absolute expiration.
func WithSlidingExpiration() MemoryOption {
	return func(o *memoryOptions) {
		o.sliding = true
	}
}

// ValidateSchedule reports whether spec is usable with WithSweepSchedule.
// The empty string is valid and disables the sweep.
func ValidateSchedule(spec string) error {
	if spec == "" {
		return nil
	}
	if _, err := cron.ParseStandard(spec); err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}
	return nil
}
