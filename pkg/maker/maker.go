package maker

import (
	"context"
	"io"
	"log/slog"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/flowforge/pkg/binding"
	"github.com/dmitrymomot/flowforge/pkg/factory"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// defaultWarmConcurrency bounds parallel resolutions during Warm.
const defaultWarmConcurrency = 8

// Option configures a Maker.
type Option func(*options)

type options struct {
	logger          *slog.Logger
	warmConcurrency int
	verbose         bool
}

// WithLogger sets the logger shared by the maker and its resolver.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithVerbose enables verbose resolution diagnostics.
func WithVerbose(v bool) Option {
	return func(o *options) {
		o.verbose = v
	}
}

// WithWarmConcurrency bounds the number of concurrent resolutions in Warm.
// Default: 8.
func WithWarmConcurrency(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.warmConcurrency = n
		}
	}
}

// Maker looks up, caches and instantiates components of one contract kind.
//
// Make runs Lookup → Resolve → CacheWrite → Instantiate. A cache hit skips
// resolution. An instantiation failure evicts the binding so the next call
// resolves again.
type Maker[T any] struct {
	registry  *resolver.Registry
	resolver  *resolver.Resolver
	factory   *factory.Factory[T]
	cache     *binding.Cache
	logger    *slog.Logger
	locations []resolver.Location
	warmLimit int
}

// New creates a Maker for kind. locations are searched in order before the
// kind's native location.
func New[T any](kind resolver.Kind, locations []resolver.Location, registry *resolver.Registry, bc *binding.Cache, opts ...Option) *Maker[T] {
	o := &options{
		logger:          slog.New(slog.NewTextHandler(io.Discard, nil)),
		warmConcurrency: defaultWarmConcurrency,
	}
	for _, opt := range opts {
		opt(o)
	}

	return &Maker[T]{
		registry:  registry,
		resolver:  resolver.New(registry, kind, resolver.WithLogger(o.logger), resolver.WithVerbose(o.verbose)),
		factory:   factory.New[T](registry, kind),
		cache:     bc,
		logger:    o.logger,
		locations: slices.Clone(locations),
		warmLimit: o.warmConcurrency,
	}
}

// Kind returns the contract kind.
func (m *Maker[T]) Kind() resolver.Kind {
	return m.resolver.Kind()
}

// Locations returns the configured search locations.
func (m *Maker[T]) Locations() []resolver.Location {
	return slices.Clone(m.locations)
}

// Resolver exposes the underlying resolver for diagnostics.
func (m *Maker[T]) Resolver() *resolver.Resolver {
	return m.resolver
}

// Make returns a new instance for the logical name.
// Errors are *resolver.NotFoundError or *factory.InstantiationError.
func (m *Maker[T]) Make(ctx context.Context, name string) (T, error) {
	return m.build(ctx, name, false)
}

func (m *Maker[T]) build(ctx context.Context, name string, optional bool) (T, error) {
	var zero T

	b, err := m.bind(ctx, name)
	if err != nil {
		if optional && resolver.IsNotFound(err) {
			return zero, err
		}
		m.logger.ErrorContext(ctx, "component resolution failed",
			slog.String("kind", m.Kind().Name),
			slog.String("name", name),
			slog.Any("locations", m.locationStrings()),
			slog.Any("error", err),
		)
		return zero, err
	}

	inst, err := m.factory.Create(ctx, b)
	if err != nil {
		m.cache.Remove(ctx, name)
		m.logger.ErrorContext(ctx, "component instantiation failed",
			slog.String("kind", m.Kind().Name),
			slog.String("name", name),
			slog.String("type_id", string(b.TypeID)),
			slog.Time("resolved_at", b.ResolvedAt),
			slog.Any("error", err),
		)
		return zero, err
	}

	return inst, nil
}

// MakeOptional is Make with resolution misses recovered: a name that cannot
// be resolved is logged and reported with ok=false. Instantiation failures
// are still returned.
func (m *Maker[T]) MakeOptional(ctx context.Context, name string) (T, bool, error) {
	inst, err := m.build(ctx, name, true)
	switch {
	case err == nil:
		return inst, true, nil
	case resolver.IsNotFound(err):
		m.logger.WarnContext(ctx, "optional component missing",
			slog.String("kind", m.Kind().Name),
			slog.String("name", name),
		)
		var zero T
		return zero, false, nil
	default:
		var zero T
		return zero, false, err
	}
}

// Binding returns the cached binding for name, if any.
func (m *Maker[T]) Binding(ctx context.Context, name string) (binding.Binding, bool) {
	return m.cache.Get(ctx, name)
}

// Names lists the logical names discoverable in the configured locations
// and the native location, without duplicates.
func (m *Maker[T]) Names() []string {
	kind := m.Kind()
	locs := append(slices.Clone(m.locations), kind.Native)

	seen := make(map[string]struct{})
	var names []string
	for _, loc := range locs {
		if loc.IsZero() {
			continue
		}
		for _, name := range m.registry.Scan(loc, kind.Suffix) {
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Warm resolves every discoverable name concurrently and caches the
// bindings. Nothing is instantiated. It returns the number of bindings
// written.
func (m *Maker[T]) Warm(ctx context.Context) (int, error) {
	names := m.Names()

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(m.warmLimit)

	bound := make([]bool, len(names))
	for i, name := range names {
		g.Go(func() error {
			if _, ok := m.cache.Get(ctx, name); ok {
				return nil
			}
			id, err := m.resolver.Resolve(ctx, name, m.locations)
			if err != nil {
				return err
			}
			m.cache.Put(ctx, name, id)
			bound[i] = true
			return nil
		})
	}
	err := g.Wait()

	n := 0
	for _, ok := range bound {
		if ok {
			n++
		}
	}

	if err != nil {
		return n, err
	}

	m.logger.InfoContext(ctx, "component bindings warmed",
		slog.String("kind", m.Kind().Name),
		slog.Int("names", len(names)),
		slog.Int("bound", n),
	)
	return n, nil
}

// Reset drops every cached binding of this kind.
func (m *Maker[T]) Reset(ctx context.Context) error {
	return m.cache.Reset(ctx)
}

// bind returns the cached binding or resolves and caches a new one.
func (m *Maker[T]) bind(ctx context.Context, name string) (binding.Binding, error) {
	if b, ok := m.cache.Get(ctx, name); ok {
		return b, nil
	}

	id, err := m.resolver.Resolve(ctx, name, m.locations)
	if err != nil {
		return binding.Binding{}, err
	}

	if m.logger.Enabled(ctx, slog.LevelDebug) {
		m.logger.DebugContext(ctx, "component bound",
			slog.String("kind", m.Kind().Name),
			slog.String("name", name),
			slog.String("type_id", string(id)),
		)
	}

	return m.cache.Put(ctx, name, id), nil
}

func (m *Maker[T]) locationStrings() []string {
	out := make([]string, len(m.locations))
	for i, loc := range m.locations {
		out[i] = loc.String()
	}
	return out
}
