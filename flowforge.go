package flowforge

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/flowforge/internal"
	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/logger"
)

// Type aliases - public API
type (
	// App owns the router, middleware and handlers.
	App = internal.App

	// Router is the interface handlers use to declare routes.
	Router = internal.Router

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// Handler declares routes on a router.
	Handler = internal.Handler

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc.
	Middleware = internal.Middleware

	// ErrorHandler renders errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the application.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// HealthOption configures the health endpoints.
	HealthOption = internal.HealthOption

	// HTTPError is an error with an HTTP status and a client-safe message.
	HTTPError = internal.HTTPError

	// ViewModel is what flow routes hand to formatters.
	ViewModel = internal.ViewModel

	// ContextExtractor pulls a log attribute out of a request context.
	ContextExtractor = logger.ContextExtractor

	// Action is the executable component contract.
	Action = component.Action

	// Formatter is the output component contract.
	Formatter = component.Formatter

	// Event is the outcome of an action.
	Event = component.Event
)

// New creates an application.
//
//	app := flowforge.New(
//		flowforge.WithMiddleware(middlewares.RequestID(), middlewares.Recover()),
//		flowforge.WithHandlers(flowforge.NewFlowHandler(engine, components)),
//		flowforge.WithHealthChecks(),
//	)
//	err := app.Run(":8080", flowforge.ShutdownTimeout(10*time.Second))
func New(opts ...Option) *App {
	return internal.New(opts...)
}

// App options

// WithMiddleware adds global middleware, applied in order.
func WithMiddleware(mw ...Middleware) Option {
	return internal.WithMiddleware(mw...)
}

// WithHandlers registers route-declaring handlers.
func WithHandlers(h ...Handler) Option {
	return internal.WithHandlers(h...)
}

// WithErrorHandler replaces the default JSON error handler.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// WithHealthChecks mounts /health/live and /health/ready.
func WithHealthChecks(opts ...HealthOption) Option {
	return internal.WithHealthChecks(opts...)
}

// WithLogger builds a JSON logger tagged with component.
func WithLogger(component string, extractors ...ContextExtractor) Option {
	return internal.WithLogger(component, extractors...)
}

// WithCustomLogger sets a fully configured logger.
func WithCustomLogger(l *slog.Logger) Option {
	return internal.WithCustomLogger(l)
}

// Health options

// WithLivenessPath overrides /health/live.
func WithLivenessPath(path string) HealthOption {
	return internal.WithLivenessPath(path)
}

// WithReadinessPath overrides /health/ready.
func WithReadinessPath(path string) HealthOption {
	return internal.WithReadinessPath(path)
}

// WithReadinessCheck adds a named readiness check.
func WithReadinessCheck(name string, fn func(context.Context) error) HealthOption {
	return internal.WithReadinessCheck(name, fn)
}

// Run options

// Logger sets the server logger.
func Logger(l *slog.Logger) RunOption {
	return internal.Logger(l)
}

// ShutdownTimeout bounds graceful shutdown.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// StartupHook runs after the listener is bound and before serving.
func StartupHook(fn func(context.Context) error) RunOption {
	return internal.StartupHook(fn)
}

// ShutdownHook runs after the server stops accepting requests.
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// WithContext sets the base context for signal handling.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Handlers

// NewFlowHandler exposes flows at /{flow} and /{flow}/{state}.
func NewFlowHandler(runner internal.FlowRunner, fs internal.FormatterSource, opts ...internal.FlowHandlerOption) *internal.FlowHandler {
	return internal.NewFlowHandler(runner, fs, opts...)
}

// WithFlowPrefix mounts the flow routes under prefix.
func WithFlowPrefix(prefix string) internal.FlowHandlerOption {
	return internal.WithFlowPrefix(prefix)
}

// NewResetHandler exposes POST /_components/reset.
func NewResetHandler(r internal.Resetter) *internal.ResetHandler {
	return internal.NewResetHandler(r)
}

// Errors

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// AsHTTPError extracts an HTTPError from err, or nil.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}
