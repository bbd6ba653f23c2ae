package resolver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

func TestParseLocation(t *testing.T) {
	t.Parallel()

	t.Run("bare namespace", func(t *testing.T) {
		t.Parallel()

		loc, err := resolver.ParseLocation("App.Actions")
		require.NoError(t, err)
		require.Equal(t, resolver.Location{Namespace: "App.Actions"}, loc)
		require.Equal(t, "App.Actions", loc.String())
	})

	t.Run("namespace with module", func(t *testing.T) {
		t.Parallel()

		loc, err := resolver.ParseLocation(" App.Actions , App.dll ")
		require.NoError(t, err)
		require.Equal(t, resolver.Location{Namespace: "App.Actions", Module: "App.dll"}, loc)
		require.Equal(t, "App.Actions,App.dll", loc.String())
	})

	t.Run("more than one separator is a configuration error", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.ParseLocation("App.Actions,App.dll,extra")
		require.ErrorIs(t, err, resolver.ErrConfiguration)
	})

	t.Run("empty parts are configuration errors", func(t *testing.T) {
		t.Parallel()

		for _, s := range []string{"", " ", ",App.dll", "App.Actions,"} {
			_, err := resolver.ParseLocation(s)
			require.ErrorIs(t, err, resolver.ErrConfiguration, s)
		}
	})

	t.Run("list fails on first malformed entry", func(t *testing.T) {
		t.Parallel()

		_, err := resolver.ParseLocations([]string{"A", "B,b,c", "C"})
		require.ErrorIs(t, err, resolver.ErrConfiguration)
	})

	t.Run("list keeps order", func(t *testing.T) {
		t.Parallel()

		locs, err := resolver.ParseLocations([]string{"B,b", "A"})
		require.NoError(t, err)
		require.Equal(t, []resolver.Location{{Namespace: "B", Module: "b"}, {Namespace: "A"}}, locs)
	})
}

func TestTypeID(t *testing.T) {
	t.Parallel()

	id := resolver.Candidate(resolver.Location{Namespace: "App.Actions", Module: "App.dll"}, "Login", "Action")
	require.Equal(t, resolver.TypeID("App.Actions.LoginAction,App.dll"), id)
	require.Equal(t, "App.Actions.LoginAction", id.TypeName())
	require.Equal(t, "App.dll", id.Module())

	bare := resolver.Candidate(resolver.Location{Namespace: "App.Formatters"}, "Json", "")
	require.Equal(t, resolver.TypeID("App.Formatters.Json"), bare)
	require.Empty(t, bare.Module())
}
