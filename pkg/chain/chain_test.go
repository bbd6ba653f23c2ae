package chain_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/chain"
	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// actions is a static Maker that records every execution.
type actions struct {
	byName map[string]component.ActionFunc
	ran    []string
}

func (a *actions) Make(_ context.Context, name string) (component.Action, error) {
	fn, ok := a.byName[name]
	if !ok {
		return nil, &resolver.NotFoundError{Kind: "action", Name: name}
	}
	return component.ActionFunc(func(ctx context.Context, ec *component.Context) (component.Event, error) {
		a.ran = append(a.ran, name)
		return fn(ctx, ec)
	}), nil
}

func emit(ev component.Event, errs ...component.Error) component.ActionFunc {
	return func(_ context.Context, ec *component.Context) (component.Event, error) {
		if len(errs) > 0 {
			ec.AddError(errs...)
		}
		return ev, nil
	}
}

func TestRun(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	v2Errs := []component.Error{
		{Source: "V2", Field: "email", Code: "required", Message: "email is required"},
		{Source: "V2", Field: "password", Code: "too_short", Message: "password is too short"},
	}

	newActions := func() *actions {
		return &actions{byName: map[string]component.ActionFunc{
			"V1":    emit(component.EventPass),
			"V2":    emit(component.EventFail, v2Errs...),
			"V3":    emit(component.EventPass),
			"Maybe": emit(component.EventNo),
			"Boom": func(context.Context, *component.Context) (component.Event, error) {
				return "", errors.New("boom")
			},
		}}
	}

	t.Run("fail in the middle does not short-circuit", func(t *testing.T) {
		t.Parallel()

		a := newActions()
		ec := component.NewContext(nil)

		ev, err := chain.Run(ctx, a, "V1, V2, V3", ec)
		require.NoError(t, err)
		require.Equal(t, component.EventFail, ev)
		require.Equal(t, []string{"V1", "V2", "V3"}, a.ran)
		require.Equal(t, component.Errors(v2Errs), ec.Errors())
	})

	t.Run("all pass", func(t *testing.T) {
		t.Parallel()

		ec := component.NewContext(nil)
		ev, err := chain.Run(ctx, newActions(), "V1,V3", ec)
		require.NoError(t, err)
		require.Equal(t, component.EventPass, ev)
		require.Nil(t, ec.Errors())
	})

	t.Run("error outranks fail", func(t *testing.T) {
		t.Parallel()

		a := newActions()
		ec := component.NewContext(nil)
		ev, err := chain.Run(ctx, a, "V2,Boom,V1", ec)
		require.Error(t, err)
		require.Equal(t, component.EventError, ev)
		require.Equal(t, []string{"V2", "Boom", "V1"}, a.ran)

		errs := ec.Errors()
		require.Len(t, errs, 3)
		require.Equal(t, "Boom", errs[2].Source)
		require.Equal(t, chain.CodeFailed, errs[2].Code)
	})

	t.Run("unresolved action counts as error", func(t *testing.T) {
		t.Parallel()

		ec := component.NewContext(nil)
		ev, err := chain.Run(ctx, newActions(), "V1,Nope", ec)
		require.ErrorIs(t, err, resolver.ErrNotFound)
		require.Equal(t, component.EventError, ev)
		require.Equal(t, chain.CodeUnresolved, ec.Errors()[0].Code)
	})

	t.Run("foreign events count as fail", func(t *testing.T) {
		t.Parallel()

		ev, err := chain.Run(ctx, newActions(), "V1,Maybe", component.NewContext(nil))
		require.NoError(t, err)
		require.Equal(t, component.EventFail, ev)
	})

	t.Run("empty chain", func(t *testing.T) {
		t.Parallel()

		_, err := chain.Run(ctx, newActions(), " , ", component.NewContext(nil))
		require.ErrorIs(t, err, chain.ErrEmpty)
	})

	t.Run("nil execution context", func(t *testing.T) {
		t.Parallel()

		a := newActions()
		ev, err := chain.Run(ctx, a, "V1,V2", nil)
		require.ErrorIs(t, err, chain.ErrNilContext)
		require.Equal(t, component.EventError, ev)
		require.Empty(t, a.ran)
	})
}

func TestSplit(t *testing.T) {
	t.Parallel()

	require.Equal(t, []string{"A", "B", "C"}, chain.Split(" A,B ,, C "))
	require.Nil(t, chain.Split(""))
	require.True(t, chain.IsChain("A,B"))
	require.False(t, chain.IsChain("A,"))
}
