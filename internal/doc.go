// Package internal implements the HTTP layer behind the flowforge package:
// the App, the chi-backed Router, the request Context, error rendering and
// the graceful server runtime.
//
// Handlers return errors instead of writing failure responses themselves.
// The App's ErrorHandler turns them into responses; [HTTPError] carries the
// status and user-facing message while the wrapped error is only logged.
//
// [FlowHandler] exposes flows as routes and renders the resulting view model
// with a resolved formatter. [ResetHandler] exposes the binding cache reset.
package internal
