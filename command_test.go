package flowforge_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

const cliConfig = `
search_paths:
  actions: ["App.Actions,App.dll"]
  formatters: []
  daos: []
cache:
  sweep: ""
`

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "flowforge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cliConfig), 0o600))

	cmd := flowforge.NewCommand(flowforge.WithRegistrars(registerApp))
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--config", path}, args...))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestCommand_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("configured location", func(t *testing.T) {
		t.Parallel()
		out, err := runCommand(t, "resolve", "action", "Login")
		require.NoError(t, err)
		require.Equal(t, "App.Actions.LoginAction,App.dll\n", out)
	})

	t.Run("native fallback", func(t *testing.T) {
		t.Parallel()
		out, err := runCommand(t, "resolve", "formatter", "Json")
		require.NoError(t, err)
		require.Equal(t, "Flowforge.Formatters.Json,flowforge\n", out)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := runCommand(t, "resolve", "action", "Missing")
		require.ErrorIs(t, err, resolver.ErrNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		t.Parallel()
		_, err := runCommand(t, "resolve", "widget", "Login")
		require.Error(t, err)
	})
}

func TestCommand_Locations(t *testing.T) {
	t.Parallel()

	out, err := runCommand(t, "locations")
	require.NoError(t, err)
	require.Contains(t, out, "action:\n  App.Actions,App.dll\n    Login\n    Explode\n")
	require.Contains(t, out, "  Flowforge.Actions,flowforge (native)\n    Noop\n")
	require.Contains(t, out, "formatter:\n  Flowforge.Formatters,flowforge (native)\n    Json\n")
}

func TestCommand_Reset(t *testing.T) {
	t.Parallel()

	rt := newRuntime(t, nil)
	srv := httptest.NewServer(rt.App)
	t.Cleanup(srv.Close)

	_, err := runCommand(t, "reset", "--url", srv.URL)
	require.NoError(t, err)

	_, err = runCommand(t, "reset", "--url", srv.URL+"/nowhere")
	require.Error(t, err)
}
