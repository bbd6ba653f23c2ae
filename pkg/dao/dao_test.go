package dao_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/dao"
)

type fakeQuerier struct{}

func (fakeQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (fakeQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, nil
}

func (fakeQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	return nil
}

type userDao struct{ dao.Base }

type makerFunc func(ctx context.Context, name string) (dao.Dao, error)

func (f makerFunc) Make(ctx context.Context, name string) (dao.Dao, error) { return f(ctx, name) }

func TestPage(t *testing.T) {
	t.Parallel()

	t.Run("normalizes", func(t *testing.T) {
		t.Parallel()
		p := dao.NewPage(0, 0)
		require.Equal(t, dao.Page{Number: 1, Size: dao.DefaultPageSize}, p)
		require.Equal(t, dao.MaxPageSize, dao.NewPage(1, 1000).Size)
	})

	t.Run("limit and offset", func(t *testing.T) {
		t.Parallel()
		p := dao.Page{Number: 3, Size: 10}
		require.Equal(t, 10, p.Limit())
		require.Equal(t, 20, p.Offset())
	})

	t.Run("zero value", func(t *testing.T) {
		t.Parallel()
		var p dao.Page
		require.Equal(t, dao.DefaultPageSize, p.Limit())
		require.Equal(t, 0, p.Offset())
	})
}

func TestBase(t *testing.T) {
	t.Parallel()

	var d userDao
	_, err := d.Querier()
	require.ErrorIs(t, err, dao.ErrNoQuerier)

	d.Attach(fakeQuerier{})
	q, err := d.Querier()
	require.NoError(t, err)
	require.NotNil(t, q)
}

func TestProvider(t *testing.T) {
	t.Parallel()

	m := makerFunc(func(_ context.Context, name string) (dao.Dao, error) {
		if name != "User" {
			return nil, errors.New("not found")
		}
		return &userDao{}, nil
	})

	t.Run("attaches querier", func(t *testing.T) {
		t.Parallel()
		p := dao.NewProvider(m, fakeQuerier{})
		users, err := dao.As[*userDao](context.Background(), p, "User")
		require.NoError(t, err)
		_, err = users.Querier()
		require.NoError(t, err)
	})

	t.Run("propagates maker errors", func(t *testing.T) {
		t.Parallel()
		p := dao.NewProvider(m, fakeQuerier{})
		_, err := p.Get(context.Background(), "Order")
		require.Error(t, err)
	})

	t.Run("requires querier", func(t *testing.T) {
		t.Parallel()
		p := dao.NewProvider(m, nil)
		_, err := p.Get(context.Background(), "User")
		require.ErrorIs(t, err, dao.ErrNoQuerier)
	})

	t.Run("wrong type", func(t *testing.T) {
		t.Parallel()
		type other struct{ dao.Base }
		p := dao.NewProvider(m, fakeQuerier{})
		_, err := dao.As[*other](context.Background(), p, "User")
		require.ErrorIs(t, err, dao.ErrTypeMismatch)
		require.ErrorContains(t, err, "User")
	})
}

func TestKind(t *testing.T) {
	t.Parallel()
	require.Equal(t, component.NativeModule, dao.Kind.Native.Module)
	require.Equal(t, "Flowforge.Dao", dao.Kind.Native.Namespace)
}

func TestConnect(t *testing.T) {
	t.Parallel()

	t.Run("empty url", func(t *testing.T) {
		t.Parallel()
		_, err := dao.Connect(context.Background(), dao.DefaultConfig())
		require.ErrorIs(t, err, dao.ErrEmptyConnectionString)
	})

	t.Run("malformed url", func(t *testing.T) {
		t.Parallel()
		cfg := dao.DefaultConfig()
		cfg.ConnectionString = "postgres://%zz"
		_, err := dao.Connect(context.Background(), cfg)
		require.ErrorIs(t, err, dao.ErrFailedToParseConfig)
	})
}
