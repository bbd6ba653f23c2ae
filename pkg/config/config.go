// Package config loads the application configuration from a YAML file.
//
// ${VAR} and $VAR references are expanded from the environment before
// decoding, so secrets such as database URLs can stay out of the file:
//
//	server:
//	  address: ":8080"
//	logging:
//	  level: debug
//	  sentry:
//	    dsn: ${SENTRY_DSN}
//	search_paths:
//	  actions: ["App.Actions,App.dll"]
//	  formatters: []
//	  daos: []
//	cache:
//	  lifetime: 10m
//	  backend: redis
//	redis:
//	  url: ${REDIS_URL}
//	flows: flows.yaml
//
// A search-path list that is present but empty searches only the native
// location. A missing list is rejected when the components are built.
package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/flowforge/pkg/cache"
	"github.com/dmitrymomot/flowforge/pkg/dao"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

// Cache backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Expiration modes.
const (
	ExpirationAbsolute = "absolute"
	ExpirationSliding  = "sliding"
)

// Config is the root configuration document.
type Config struct {
	Server      Server      `yaml:"server"`
	Logging     Logging     `yaml:"logging"`
	SearchPaths SearchPaths `yaml:"search_paths"`
	Cache       Cache       `yaml:"cache"`
	Redis       Redis       `yaml:"redis"`
	Database    dao.Config  `yaml:"database"`
	Flows       string      `yaml:"flows"`
	Verbose     bool        `yaml:"verbose"`
}

// Server holds HTTP server settings.
type Server struct {
	Address         string        `yaml:"address"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	// ResetEndpoint mounts POST /_components/reset.
	ResetEndpoint bool `yaml:"reset_endpoint"`
}

// Logging holds logger settings.
type Logging struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Sentry Sentry `yaml:"sentry"`
}

// Sentry holds error reporting settings. An empty DSN disables it.
type Sentry struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	MinLevel    string `yaml:"min_level"`
}

// SearchPaths lists the ordered locations searched for each component kind.
type SearchPaths struct {
	Actions    []string `yaml:"actions"`
	Formatters []string `yaml:"formatters"`
	Daos       []string `yaml:"daos"`
}

// Cache holds binding cache settings.
type Cache struct {
	Lifetime   time.Duration `yaml:"lifetime"`
	Expiration string        `yaml:"expiration"`
	Backend    string        `yaml:"backend"`
	// Sweep is a cron spec for the memory backend sweeper; "" disables it.
	Sweep      string `yaml:"sweep"`
	MaxEntries int    `yaml:"max_entries"`
	KeyPrefix  string `yaml:"key_prefix"`
}

// Redis holds the redis connection.
type Redis struct {
	URL string `yaml:"url"`
}

// Default returns the configuration used for absent keys.
func Default() Config {
	return Config{
		Server: Server{
			Address:         ":8080",
			ShutdownTimeout: 30 * time.Second,
		},
		Logging: Logging{
			Level:  "info",
			Format: "json",
			Sentry: Sentry{Environment: "production", MinLevel: "warn"},
		},
		Cache: Cache{
			Lifetime:   10 * time.Minute,
			Expiration: ExpirationAbsolute,
			Backend:    BackendMemory,
			Sweep:      "@every 1m",
			KeyPrefix:  "flowforge:bindings:",
		},
		Database: dao.DefaultConfig(),
	}
}

// Load reads, expands and validates the file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading %q: %w", path, err)
	}
	return Parse(data)
}

// Parse expands environment references in data, decodes it over the
// defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &cfg); err != nil {
		return nil, errors.Join(ErrInvalid, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks enumerations and dependent settings.
func (c *Config) Validate() error {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...)))
	}

	if c.Server.Address == "" {
		invalid("server.address is empty")
	}
	if !slices.Contains([]string{"debug", "info", "warn", "error"}, c.Logging.Level) {
		invalid("logging.level %q", c.Logging.Level)
	}
	if !slices.Contains([]string{"json", "text"}, c.Logging.Format) {
		invalid("logging.format %q", c.Logging.Format)
	}
	if c.Cache.Lifetime < 0 {
		invalid("cache.lifetime is negative")
	}
	if !slices.Contains([]string{ExpirationAbsolute, ExpirationSliding}, c.Cache.Expiration) {
		invalid("cache.expiration %q", c.Cache.Expiration)
	}
	switch c.Cache.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Redis.URL == "" {
			invalid("cache.backend is redis but redis.url is empty")
		}
	default:
		invalid("cache.backend %q", c.Cache.Backend)
	}
	if err := cache.ValidateSchedule(c.Cache.Sweep); err != nil {
		invalid("cache.sweep %q", c.Cache.Sweep)
	}
	if c.Cache.MaxEntries < 0 {
		invalid("cache.max_entries is negative")
	}

	return errors.Join(errs...)
}
