package component

import (
	"context"

	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// Event is the token an Action returns to select the next transition.
type Event string

// Well-known event tokens. The vocabulary is open; components may return any
// non-empty token their flows declare.
const (
	EventPass     Event = "pass"
	EventFail     Event = "fail"
	EventError    Event = "error"
	EventYes      Event = "yes"
	EventNo       Event = "no"
	EventZero     Event = "zero"
	EventOne      Event = "one"
	EventMultiple Event = "multiple"
	EventOK       Event = "ok"
)

func (e Event) String() string {
	return string(e)
}

// Action is the executable contract.
type Action interface {
	Execute(ctx context.Context, ec *Context) (Event, error)
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context, ec *Context) (Event, error)

func (f ActionFunc) Execute(ctx context.Context, ec *Context) (Event, error) {
	return f(ctx, ec)
}

// Formatter is the formatting contract.
type Formatter interface {
	// Format converts v into its formatted representation.
	Format(v any) (any, error)

	// SupportedTypes lists the media types this formatter produces,
	// most preferred first.
	SupportedTypes() []string
}

// Native module shared by every component shipped with the framework.
const NativeModule = "flowforge"

// ActionKind describes executable actions. Concrete type names carry the
// "Action" suffix, e.g. logical name "Login" resolves to "LoginAction".
var ActionKind = resolver.Kind{
	Name:   "action",
	Suffix: "Action",
	Native: resolver.Location{Namespace: "Flowforge.Actions", Module: NativeModule},
}

// FormatterKind describes formatters. Formatter type names have no suffix.
var FormatterKind = resolver.Kind{
	Name:   "formatter",
	Native: resolver.Location{Namespace: "Flowforge.Formatters", Module: NativeModule},
}
