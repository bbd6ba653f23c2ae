package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge"
	"github.com/dmitrymomot/flowforge/pkg/config"
	"github.com/dmitrymomot/flowforge/pkg/flow"
	"github.com/dmitrymomot/flowforge/pkg/logger"
)

func TestLoginFlow(t *testing.T) {
	t.Parallel()

	defs, err := flow.Load("flows.yaml")
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Cache.Sweep = ""
	cfg.SearchPaths = config.SearchPaths{
		Actions:    []string{"App.Actions,App.dll"},
		Formatters: []string{"App.Formatters,App.dll"},
		Daos:       []string{},
	}

	rt, err := flowforge.Bootstrap(context.Background(), &cfg,
		flowforge.WithRuntimeLogger(logger.NewNope()),
		flowforge.WithRegistrars(register),
		flowforge.WithFlows(defs),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rt.Close(context.Background()) })

	get := func(target string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		rt.App.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
		return rec
	}

	t.Run("welcome", func(t *testing.T) {
		rec := get("/login?email=ada@example.com&password=lovelace")
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "Welcome, ada@example.com!\n", rec.Body.String())
	})

	t.Run("wrong password", func(t *testing.T) {
		rec := get("/login?email=ada@example.com&password=babbage")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		require.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	})

	t.Run("missing params", func(t *testing.T) {
		rec := get("/login")
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}
