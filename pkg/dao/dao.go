package dao

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// Querier is the subset of pgx shared by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Dao is the data access contract. Implementations are resolved by logical
// name like any other component and receive their querier after
// construction.
type Dao interface {
	Attach(q Querier)
}

// Kind describes DAOs. Concrete type names carry the "Dao" suffix, e.g.
// logical name "User" resolves to "UserDao".
var Kind = resolver.Kind{
	Name:   "dao",
	Suffix: "Dao",
	Native: resolver.Location{Namespace: "Flowforge.Dao", Module: component.NativeModule},
}

// Base is embedded by DAO implementations to satisfy Dao.
type Base struct {
	q Querier
}

// Attach stores the querier.
func (b *Base) Attach(q Querier) {
	b.q = q
}

// Querier returns the attached querier or ErrNoQuerier.
func (b *Base) Querier() (Querier, error) {
	if b.q == nil {
		return nil, ErrNoQuerier
	}
	return b.q, nil
}

// Maker is satisfied by the DAO component maker.
type Maker interface {
	Make(ctx context.Context, name string) (Dao, error)
}

// Provider builds DAOs by logical name and attaches a querier to them.
type Provider struct {
	maker   Maker
	querier Querier
}

// NewProvider creates a Provider.
func NewProvider(m Maker, q Querier) *Provider {
	return &Provider{maker: m, querier: q}
}

// Get returns a fresh DAO for name with the provider's querier attached.
func (p *Provider) Get(ctx context.Context, name string) (Dao, error) {
	return p.get(ctx, name, p.querier)
}

// GetTx returns a fresh DAO for name bound to tx.
func (p *Provider) GetTx(ctx context.Context, name string, tx pgx.Tx) (Dao, error) {
	return p.get(ctx, name, tx)
}

func (p *Provider) get(ctx context.Context, name string, q Querier) (Dao, error) {
	if q == nil {
		return nil, ErrNoQuerier
	}
	d, err := p.maker.Make(ctx, name)
	if err != nil {
		return nil, err
	}
	d.Attach(q)
	return d, nil
}

// As returns the DAO for name converted to T.
func As[T Dao](ctx context.Context, p *Provider, name string) (T, error) {
	var zero T
	d, err := p.Get(ctx, name)
	if err != nil {
		return zero, err
	}
	t, ok := d.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s", ErrTypeMismatch, name)
	}
	return t, nil
}
