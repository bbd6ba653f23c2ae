// Package logger builds slog loggers with per-call context attributes and
// optional Sentry reporting.
//
// A [ContextExtractor] pulls one attribute out of a context. Extractors run on
// every log call so request-scoped values such as the request ID stay fresh:
//
//	log := logger.New(logger.Options{Format: logger.FormatText}, middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "flow finished", slog.String("flow", "Login"))
//
// [NewWithSentry] fans records out to the base handler and Sentry. Errors
// become Sentry issues; records at or above SentryConfig.MinLevel are kept as
// Sentry logs. An empty DSN keeps the base handler only, so one code path
// serves development and production.
package logger
