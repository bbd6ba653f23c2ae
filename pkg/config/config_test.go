package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/config"
)

func TestParse(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Parse([]byte("{}"))
		require.NoError(t, err)
		require.Equal(t, ":8080", cfg.Server.Address)
		require.Equal(t, 10*time.Minute, cfg.Cache.Lifetime)
		require.Equal(t, config.BackendMemory, cfg.Cache.Backend)
		require.Nil(t, cfg.SearchPaths.Actions)
	})

	t.Run("full document with env expansion", func(t *testing.T) {
		t.Setenv("FLOWFORGE_TEST_REDIS", "redis://localhost:6379/1")

		cfg, err := config.Parse([]byte(`
server:
  address: ":9000"
  shutdown_timeout: 5s
  reset_endpoint: true
logging:
  level: debug
  format: text
search_paths:
  actions: ["App.Actions,App.dll", "Shared.Actions"]
  formatters: []
cache:
  lifetime: 90s
  expiration: sliding
  backend: redis
  sweep: ""
redis:
  url: ${FLOWFORGE_TEST_REDIS}
verbose: true
`))
		require.NoError(t, err)
		require.Equal(t, ":9000", cfg.Server.Address)
		require.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
		require.True(t, cfg.Server.ResetEndpoint)
		require.Equal(t, []string{"App.Actions,App.dll", "Shared.Actions"}, cfg.SearchPaths.Actions)
		require.NotNil(t, cfg.SearchPaths.Formatters)
		require.Empty(t, cfg.SearchPaths.Formatters)
		require.Nil(t, cfg.SearchPaths.Daos)
		require.Equal(t, 90*time.Second, cfg.Cache.Lifetime)
		require.Equal(t, config.ExpirationSliding, cfg.Cache.Expiration)
		require.Empty(t, cfg.Cache.Sweep)
		require.Equal(t, "redis://localhost:6379/1", cfg.Redis.URL)
		require.True(t, cfg.Verbose)
	})

	t.Run("invalid values", func(t *testing.T) {
		for name, src := range map[string]string{
			"level":         "logging: {level: loud}",
			"format":        "logging: {format: xml}",
			"backend":       "cache: {backend: disk}",
			"redis url":     "cache: {backend: redis}",
			"expiration":    "cache: {expiration: never}",
			"negative ttl":  "cache: {lifetime: -1s}",
			"sweep":         "cache: {sweep: 'every tuesday'}",
			"syntax":        "server: [",
			"empty address": "server: {address: ''}",
		} {
			_, err := config.Parse([]byte(src))
			require.ErrorIs(t, err, config.ErrInvalid, name)
		}
	})
}

func TestLoad(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flowforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flows: flows.yaml\n"), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.Equal(t, "flows.yaml", cfg.Flows)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
