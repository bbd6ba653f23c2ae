package flowforge

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/flowforge/middlewares"
	"github.com/dmitrymomot/flowforge/pkg/actions"
	"github.com/dmitrymomot/flowforge/pkg/binding"
	"github.com/dmitrymomot/flowforge/pkg/cache"
	"github.com/dmitrymomot/flowforge/pkg/config"
	"github.com/dmitrymomot/flowforge/pkg/dao"
	"github.com/dmitrymomot/flowforge/pkg/flow"
	"github.com/dmitrymomot/flowforge/pkg/formatters"
	"github.com/dmitrymomot/flowforge/pkg/logger"
	"github.com/dmitrymomot/flowforge/pkg/maker"
	"github.com/dmitrymomot/flowforge/pkg/redis"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// Registrar adds component types to the registry at startup.
type Registrar func(reg *resolver.Registry) error

type bootstrapOptions struct {
	logger     *slog.Logger
	registry   *resolver.Registry
	flows      flow.Definitions
	registrars []Registrar
	middleware []Middleware
}

// BootstrapOption configures Bootstrap.
type BootstrapOption func(*bootstrapOptions)

// WithRegistrars registers application components after the built-in ones.
func WithRegistrars(r ...Registrar) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.registrars = append(o.registrars, r...)
	}
}

// WithRegistry uses reg instead of a fresh registry. The built-in actions and
// formatters are not added to it.
func WithRegistry(reg *resolver.Registry) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.registry = reg
	}
}

// WithFlows uses defs instead of the flows file named in the config.
func WithFlows(defs flow.Definitions) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.flows = defs
	}
}

// WithRuntimeLogger replaces the logger built from the logging config.
func WithRuntimeLogger(l *slog.Logger) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.logger = l
	}
}

// WithAppMiddleware appends middleware after RequestID, Recover and
// AccessLog.
func WithAppMiddleware(mw ...Middleware) BootstrapOption {
	return func(o *bootstrapOptions) {
		o.middleware = append(o.middleware, mw...)
	}
}

func buildOptions(opts []BootstrapOption) *bootstrapOptions {
	o := &bootstrapOptions{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// newRegistry runs the registrars against the configured registry, or against
// a fresh one seeded with the built-in actions and formatters.
func (o *bootstrapOptions) newRegistry() (*resolver.Registry, error) {
	reg, registrars := o.registry, o.registrars
	if reg == nil {
		reg = resolver.NewRegistry()
		registrars = append([]Registrar{actions.Register, formatters.Register}, registrars...)
	}
	for _, register := range registrars {
		if err := register(reg); err != nil {
			return nil, fmt.Errorf("flowforge: registering components: %w", err)
		}
	}
	return reg, nil
}

// Runtime is a fully wired process: registry, component makers, flow
// engine and HTTP app.
type Runtime struct {
	Config     *config.Config
	Logger     *slog.Logger
	Registry   *resolver.Registry
	Components *maker.Components
	Engine     *flow.Engine
	App        *App

	// Daos is nil unless database.url is set.
	Daos *dao.Provider

	redis  goredis.UniversalClient
	pool   *pgxpool.Pool
	closed bool
}

// Bootstrap builds a Runtime from cfg. Every configuration problem is
// reported here, before any request is served.
func Bootstrap(ctx context.Context, cfg *config.Config, opts ...BootstrapOption) (_ *Runtime, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: nil config", resolver.ErrConfiguration)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Join(resolver.ErrConfiguration, err)
	}

	o := buildOptions(opts)
	rt := &Runtime{Config: cfg, Logger: o.logger}
	defer func() {
		if err != nil {
			err = errors.Join(err, rt.Close(ctx))
		}
	}()

	if rt.Logger == nil {
		if rt.Logger, err = newLogger(cfg.Logging); err != nil {
			return nil, err
		}
	}

	if rt.Registry, err = o.newRegistry(); err != nil {
		return nil, err
	}

	var checks []HealthOption
	if cfg.Redis.URL != "" {
		if rt.redis, err = redis.Open(ctx, cfg.Redis.URL); err != nil {
			return nil, err
		}
		checks = append(checks, WithReadinessCheck("redis", redis.Healthcheck(rt.redis)))
	}
	if cfg.Database.URL != "" {
		if rt.pool, err = dao.Connect(ctx, cfg.Database); err != nil {
			return nil, err
		}
		checks = append(checks, WithReadinessCheck("database", dao.Healthcheck(rt.pool)))
	}

	rt.Components, err = maker.NewComponents(rt.Registry,
		maker.SearchPaths{
			Actions:    cfg.SearchPaths.Actions,
			Formatters: cfg.SearchPaths.Formatters,
			Daos:       cfg.SearchPaths.Daos,
		},
		rt.bindingCache,
		maker.WithLogger(rt.Logger.With(slog.String("component", "maker"))),
		maker.WithVerbose(cfg.Verbose),
	)
	if err != nil {
		return nil, err
	}
	if rt.pool != nil {
		rt.Daos = dao.NewProvider(rt.Components.Daos, rt.pool)
	}

	defs := o.flows
	if defs == nil && cfg.Flows != "" {
		if defs, err = flow.Load(cfg.Flows); err != nil {
			return nil, errors.Join(resolver.ErrConfiguration, err)
		}
	}
	rt.Engine = flow.NewEngine(rt.Components.Actions, defs,
		flow.WithLogger(rt.Logger.With(slog.String("component", "flow"))),
	)

	handlers := []Handler{NewFlowHandler(rt.Engine, rt.Components)}
	if cfg.Server.ResetEndpoint {
		handlers = append(handlers, NewResetHandler(rt.Components))
	}

	rt.App = New(
		WithCustomLogger(rt.Logger),
		WithMiddleware(append([]Middleware{
			middlewares.RequestID(),
			middlewares.Recover(),
			middlewares.AccessLog(defaultLivenessPath, defaultReadinessPath),
		}, o.middleware...)...),
		WithHealthChecks(checks...),
		WithHandlers(handlers...),
	)

	return rt, nil
}

const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// Run serves the app until SIGINT/SIGTERM. Bindings are warmed once the
// listener is up; warm failures are logged and never stop the server.
func (rt *Runtime) Run(opts ...RunOption) error {
	return rt.App.Run(rt.Config.Server.Address, append([]RunOption{
		Logger(rt.Logger),
		ShutdownTimeout(rt.Config.Server.ShutdownTimeout),
		StartupHook(rt.warm),
		ShutdownHook(rt.Close),
	}, opts...)...)
}

// Close releases caches and connections. It is safe to call more than once.
func (rt *Runtime) Close(context.Context) error {
	if rt.closed {
		return nil
	}
	rt.closed = true

	var errs []error
	if rt.Components != nil {
		errs = append(errs, rt.Components.Close())
	}
	if rt.pool != nil {
		rt.pool.Close()
	}
	if rt.redis != nil {
		errs = append(errs, rt.redis.Close())
	}
	return errors.Join(errs...)
}

func (rt *Runtime) warm(ctx context.Context) error {
	n, err := rt.Components.Warm(ctx)
	if err != nil {
		rt.Logger.WarnContext(ctx, "component warm-up incomplete", slog.Int("bound", n), slog.Any("error", err))
		return nil
	}
	rt.Logger.InfoContext(ctx, "component bindings warmed", slog.Int("bound", n))
	return nil
}

// bindingCache builds the binding cache of one kind on the configured
// backend.
func (rt *Runtime) bindingCache(kind resolver.Kind) (*binding.Cache, error) {
	cc := rt.Config.Cache
	sliding := cc.Expiration == config.ExpirationSliding

	var backend cache.Cache[binding.Binding]
	switch cc.Backend {
	case config.BackendRedis:
		if rt.redis == nil {
			return nil, fmt.Errorf("%w: redis backend without a redis client", resolver.ErrConfiguration)
		}
		ropts := []cache.RedisOption{
			cache.WithPrefix(cc.KeyPrefix + kind.Name),
			cache.WithRedisDefaultTTL(cmp.Or(cc.Lifetime, binding.DefaultLifetime)),
		}
		if sliding {
			ropts = append(ropts, cache.WithRedisSlidingExpiration())
		}
		backend = cache.NewRedis[binding.Binding](rt.redis, nil, ropts...)
	default:
		mopts := []cache.MemoryOption{
			cache.WithSweepSchedule(cc.Sweep),
			cache.WithMaxEntries(cc.MaxEntries),
		}
		if sliding {
			mopts = append(mopts, cache.WithSlidingExpiration())
		}
		backend = cache.NewMemory[binding.Binding](mopts...)
	}

	bopts := []binding.Option{
		binding.WithLifetime(cc.Lifetime),
		binding.WithName(kind.Name),
		binding.WithLogger(rt.Logger.With(slog.String("component", "binding"))),
	}
	if sliding {
		bopts = append(bopts, binding.WithSliding())
	}
	return binding.New(backend, bopts...), nil
}

func newLogger(cfg config.Logging) (*slog.Logger, error) {
	level, err := logger.ParseLevel(cfg.Level)
	if err != nil {
		return nil, errors.Join(resolver.ErrConfiguration, err)
	}
	minLevel, err := logger.ParseLevel(cfg.Sentry.MinLevel)
	if err != nil {
		return nil, errors.Join(resolver.ErrConfiguration, err)
	}

	return logger.NewWithSentry(
		logger.Options{Level: level, Format: cfg.Format},
		logger.SentryConfig{
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			MinLevel:    minLevel,
		},
		middlewares.RequestIDExtractor(),
	), nil
}
