package resolver

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync/atomic"
)

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithVerbose logs every resolution attempt at Info, including the full list
// of configured locations. Off by default; attempts are then logged at Debug.
func WithVerbose(v bool) Option {
	return func(r *Resolver) {
		r.verbose = v
	}
}

// Resolver turns a logical name into a loadable TypeID for one contract kind.
type Resolver struct {
	loader  Loader
	logger  *slog.Logger
	kind    Kind
	calls   atomic.Int64
	verbose bool
}

// New creates a resolver for kind backed by loader.
func New(loader Loader, kind Kind, opts ...Option) *Resolver {
	r := &Resolver{
		loader: loader,
		kind:   kind,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Kind returns the contract kind this resolver serves.
func (r *Resolver) Kind() Kind {
	return r.kind
}

// Resolve tries each location in order and returns the first candidate the
// loader knows. If none matches, the kind's native location is tried once.
// Returns a *NotFoundError listing every candidate when both fail.
//
// The result depends only on name, locations and the native location, so
// concurrent calls for the same name agree.
func (r *Resolver) Resolve(ctx context.Context, name string, locations []Location) (TypeID, error) {
	r.calls.Add(1)

	if name == "" {
		return "", ErrEmptyName
	}

	level := slog.LevelDebug
	if r.verbose {
		level = slog.LevelInfo
		dump := make([]string, len(locations))
		for i, loc := range locations {
			dump[i] = loc.String()
		}
		r.logger.Log(ctx, level, "resolving component",
			slog.String("kind", r.kind.Name),
			slog.String("name", name),
			slog.Any("locations", dump),
			slog.String("native", r.kind.Native.String()),
		)
	}

	tried := make([]TypeID, 0, len(locations)+1)
	for _, loc := range locations {
		id := Candidate(loc, name, r.kind.Suffix)
		tried = append(tried, id)
		if r.load(ctx, level, id) {
			return id, nil
		}
	}

	if !r.kind.Native.IsZero() {
		id := Candidate(r.kind.Native, name, r.kind.Suffix)
		if !slices.Contains(tried, id) {
			tried = append(tried, id)
			if r.load(ctx, level, id) {
				r.logger.Log(ctx, level, "component resolved by self-fallback",
					slog.String("kind", r.kind.Name),
					slog.String("name", name),
					slog.String("type_id", string(id)),
				)
				return id, nil
			}
		}
	}

	return "", &NotFoundError{Kind: r.kind.Name, Name: name, Tried: tried}
}

// Resolutions returns how many times Resolve has been called.
func (r *Resolver) Resolutions() int64 {
	return r.calls.Load()
}

func (r *Resolver) load(ctx context.Context, level slog.Level, id TypeID) bool {
	_, ok := r.loader.Load(id)
	r.logger.Log(ctx, level, "component candidate",
		slog.String("kind", r.kind.Name),
		slog.String("type_id", string(id)),
		slog.Bool("found", ok),
	)
	return ok
}
