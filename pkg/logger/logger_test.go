package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/logger"
)

type ctxKey struct{}

func extractor(ctx context.Context) (slog.Attr, bool) {
	if v, ok := ctx.Value(ctxKey{}).(string); ok {
		return slog.String("request_id", v), true
	}
	return slog.Attr{}, false
}

func TestNew(t *testing.T) {
	t.Parallel()

	t.Run("json with extractor", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf}, extractor, nil)

		ctx := context.WithValue(context.Background(), ctxKey{}, "abc")
		log.With(slog.String("component", "maker")).InfoContext(ctx, "resolved")

		var rec map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
		require.Equal(t, "resolved", rec["msg"])
		require.Equal(t, "abc", rec["request_id"])
		require.Equal(t, "maker", rec["component"])
	})

	t.Run("level filters", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.New(logger.Options{Output: &buf, Level: slog.LevelWarn})
		log.Info("hidden")
		require.Empty(t, buf.String())
	})

	t.Run("text format", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		logger.New(logger.Options{Output: &buf, Format: logger.FormatText}).Info("hello")
		require.Contains(t, buf.String(), "msg=hello")
	})

	t.Run("sentry without dsn", func(t *testing.T) {
		t.Parallel()
		var buf bytes.Buffer
		log := logger.NewWithSentry(logger.Options{Output: &buf}, logger.SentryConfig{})
		log.Error("boom")
		require.Contains(t, buf.String(), "boom")
	})
}

func TestParseLevel(t *testing.T) {
	t.Parallel()

	for in, want := range map[string]slog.Level{
		"":      slog.LevelInfo,
		"debug": slog.LevelDebug,
		"WARN":  slog.LevelWarn,
		"error": slog.LevelError,
	} {
		got, err := logger.ParseLevel(in)
		require.NoError(t, err)
		require.Equal(t, want, got)
	}

	_, err := logger.ParseLevel("loud")
	require.Error(t, err)
}
