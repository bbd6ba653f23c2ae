package internal_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/internal"
)

type pingHandler struct{}

func (pingHandler) Routes(r internal.Router) {
	r.GET("/ping", func(c internal.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	r.GET("/fail", func(c internal.Context) error {
		return errors.New("database exploded")
	})
	r.GET("/missing", func(c internal.Context) error {
		return c.Error(http.StatusNotFound, "nothing here")
	})
	r.POST("/echo", func(c internal.Context) error {
		return c.JSON(http.StatusOK, c.Params())
	})
	r.POST("/echo-form", func(c internal.Context) error {
		for _, v := range c.Params() {
			v[0] = "changed"
		}
		return c.JSON(http.StatusOK, c.Request().PostForm)
	})
	r.GET("/value", func(c internal.Context) error {
		v, _ := c.Get(ctxKey{}).(string)
		return c.String(http.StatusOK, v)
	})
}

type ctxKey struct{}

func setValue(v string) internal.Middleware {
	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			c.Set(ctxKey{}, v)
			return next(c)
		}
	}
}

func serve(app *internal.App, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	app.ServeHTTP(rec, req)
	return rec
}

func TestApp(t *testing.T) {
	t.Parallel()

	app := internal.New(
		internal.WithHandlers(pingHandler{}),
		internal.WithMiddleware(setValue("from-middleware")),
		internal.WithHealthChecks(internal.WithReadinessCheck("ok", func(context.Context) error { return nil })),
	)

	t.Run("route", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "pong", rec.Body.String())
	})

	t.Run("plain errors become 500", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/fail", nil))
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		require.NotContains(t, rec.Body.String(), "database exploded")
	})

	t.Run("http errors keep their status", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/missing", nil))
		require.Equal(t, http.StatusNotFound, rec.Code)
		require.JSONEq(t, `{"message":"nothing here","status":404}`, rec.Body.String())
	})

	t.Run("params merge form and query", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/echo?a=1", strings.NewReader("b=2"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(app, req)
		require.JSONEq(t, `{"a":["1"],"b":["2"]}`, rec.Body.String())
	})

	t.Run("params do not alias the posted form", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/echo-form?a=1", strings.NewReader("a=2&a=3&a=4"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := serve(app, req)
		require.Equal(t, http.StatusOK, rec.Code)
		require.JSONEq(t, `{"a":["2","3","4"]}`, rec.Body.String())
	})

	t.Run("middleware values reach handlers", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/value", nil))
		require.Equal(t, "from-middleware", rec.Body.String())
	})

	t.Run("health", func(t *testing.T) {
		t.Parallel()
		rec := serve(app, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
		require.Equal(t, http.StatusOK, rec.Code)
		rec = serve(app, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestHTTPError(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := fmt.Errorf("outer: %w", internal.ErrBadRequest("bad input", internal.WithError(cause), internal.WithErrorCode("invalid")))

	require.True(t, internal.IsHTTPError(err))
	httpErr := internal.AsHTTPError(err)
	require.NotNil(t, httpErr)
	require.Equal(t, http.StatusBadRequest, httpErr.StatusCode())
	require.Equal(t, "invalid", httpErr.ErrorCode)
	require.ErrorIs(t, err, cause)

	require.False(t, internal.IsHTTPError(errors.New("plain")))
	require.Nil(t, internal.AsHTTPError(nil))
}

func TestResponseWriter(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	rw := internal.NewResponseWriter(rec)
	require.Same(t, rw, internal.NewResponseWriter(rw))

	rw.WriteHeader(http.StatusCreated)
	rw.WriteHeader(http.StatusTeapot)
	_, err := rw.Write([]byte("abc"))
	require.NoError(t, err)

	require.True(t, rw.Written())
	require.Equal(t, http.StatusCreated, rw.Status())
	require.Equal(t, http.StatusCreated, rec.Code)
	require.EqualValues(t, 3, rw.Size())
}
