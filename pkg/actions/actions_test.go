package actions_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/actions"
	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := resolver.NewRegistry()
	require.NoError(t, actions.Register(reg))
	require.Equal(t,
		[]string{"Noop", "Pass", "Fail", "ParamsCount", "RequireParams"},
		reg.Scan(component.ActionKind.Native, component.ActionKind.Suffix),
	)

	require.Error(t, actions.Register(reg), "second registration must collide")
}

func TestActions(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("noop", func(t *testing.T) {
		t.Parallel()
		ev, err := (&actions.Noop{}).Execute(ctx, component.NewContext(nil))
		require.NoError(t, err)
		require.Equal(t, component.EventOK, ev)
	})

	t.Run("fail records one error", func(t *testing.T) {
		t.Parallel()
		ec := component.NewContext(nil)
		ev, err := (&actions.Fail{}).Execute(ctx, ec)
		require.NoError(t, err)
		require.Equal(t, component.EventFail, ev)
		require.Len(t, ec.Errors(), 1)
	})

	t.Run("params count", func(t *testing.T) {
		t.Parallel()
		a := &actions.ParamsCount{}
		for want, params := range map[component.Event]map[string][]string{
			component.EventZero:     nil,
			component.EventOne:      {"a": {"1"}},
			component.EventMultiple: {"a": {"1"}, "b": {"2"}},
		} {
			ev, err := a.Execute(ctx, component.NewContext(params))
			require.NoError(t, err)
			require.Equal(t, want, ev)
		}
	})

	t.Run("require params", func(t *testing.T) {
		t.Parallel()
		ec := component.NewContext(map[string][]string{"email": {"a@b.c"}, "password": {"  "}})
		ec.Set(actions.RequiredKey, []any{"email", "password", "name"})

		ev, err := (&actions.RequireParams{}).Execute(ctx, ec)
		require.NoError(t, err)
		require.Equal(t, component.EventFail, ev)

		errs := ec.Errors()
		require.Len(t, errs, 2)
		require.Equal(t, "password", errs[0].Field)
		require.Equal(t, "name", errs[1].Field)
	})

	t.Run("require params passes", func(t *testing.T) {
		t.Parallel()
		ec := component.NewContext(map[string][]string{"email": {"a@b.c"}})
		ec.Set(actions.RequiredKey, "email")

		ev, err := (&actions.RequireParams{}).Execute(ctx, ec)
		require.NoError(t, err)
		require.Equal(t, component.EventPass, ev)
		require.False(t, ec.HasErrors())
	})

	t.Run("require params rejects bad config", func(t *testing.T) {
		t.Parallel()
		ec := component.NewContext(nil)
		ec.Set(actions.RequiredKey, 42)

		ev, err := (&actions.RequireParams{}).Execute(ctx, ec)
		require.Error(t, err)
		require.Equal(t, component.EventError, ev)
	})
}
