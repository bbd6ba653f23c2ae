package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFanout(t *testing.T) {
	t.Parallel()

	var info, errs bytes.Buffer
	h := fanout{
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	}
	log := slog.New(h).With(slog.String("kind", "action"))

	require.True(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.False(t, h.Enabled(context.Background(), slog.LevelDebug))

	log.Info("resolved")
	require.Contains(t, info.String(), `"kind":"action"`)
	require.Empty(t, errs.String())

	log.Error("instantiation failed")
	require.Contains(t, errs.String(), "instantiation failed")
}

func TestNewLogHandlerDecorator_NoExtractors(t *testing.T) {
	t.Parallel()

	base := slog.NewTextHandler(&bytes.Buffer{}, nil)
	require.Same(t, base, NewLogHandlerDecorator(base, nil, nil))
}
