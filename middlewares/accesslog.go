package middlewares

import (
	"log/slog"
	"time"

	"github.com/dmitrymomot/flowforge/internal"
)

// AccessLog logs one record per request after it completes. Requests whose
// path is in skip are not logged.
func AccessLog(skip ...string) internal.Middleware {
	skipped := make(map[string]struct{}, len(skip))
	for _, p := range skip {
		skipped[p] = struct{}{}
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			if _, ok := skipped[c.Request().URL.Path]; ok {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			status := 0
			if rw, ok := c.Response().(*internal.ResponseWriter); ok {
				status = rw.Status()
			}
			c.LogInfo("request",
				slog.String("method", c.Request().Method),
				slog.String("path", c.Request().URL.Path),
				slog.Int("status", status),
				slog.Duration("duration", time.Since(start)),
			)
			return err
		}
	}
}
