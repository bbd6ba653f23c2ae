// Package chain executes a delimiter-separated list of actions as one
// composite action.
//
// Every listed action runs; a failure never short-circuits the chain, so all
// structured errors are collected in the shared execution context in
// invocation order. The composite event is pass only when every action
// passed. Otherwise error outranks fail.
package chain

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrymomot/flowforge/pkg/component"
)

// Separator delimits action names in a chain.
const Separator = ","

// Error codes recorded for actions that could not be run.
const (
	CodeUnresolved = "unresolved"
	CodeFailed     = "failed"
)

var (
	// ErrEmpty is returned for a chain without names.
	ErrEmpty = errors.New("chain: no actions")
	// ErrNilContext is returned when no execution context is given.
	ErrNilContext = errors.New("chain: nil execution context")
)

// Maker makes actions by logical name.
type Maker interface {
	Make(ctx context.Context, name string) (component.Action, error)
}

// Split returns the trimmed, non-empty names in s.
func Split(s string) []string {
	var names []string
	for part := range strings.SplitSeq(s, Separator) {
		if part = strings.TrimSpace(part); part != "" {
			names = append(names, part)
		}
	}
	return names
}

// IsChain reports whether s names more than one action.
func IsChain(s string) bool {
	return len(Split(s)) > 1
}

// Run makes and executes every action named in names against ec.
//
// A make or execute error counts as EventError and is also recorded in ec.
// Any event other than pass, fail or error counts as fail. The returned
// error joins every Go error raised along the way. A nil ec yields
// ErrNilContext without running anything.
func Run(ctx context.Context, actions Maker, names string, ec *component.Context) (component.Event, error) {
	if ec == nil {
		return component.EventError, ErrNilContext
	}
	list := Split(names)
	if len(list) == 0 {
		return component.EventError, ErrEmpty
	}

	result := component.EventPass
	var errs []error

	for _, name := range list {
		ev, err := runOne(ctx, actions, name, ec)
		if err != nil {
			errs = append(errs, err)
		}
		result = worst(result, ev)
	}

	return result, errors.Join(errs...)
}

func runOne(ctx context.Context, actions Maker, name string, ec *component.Context) (component.Event, error) {
	a, err := actions.Make(ctx, name)
	if err != nil {
		ec.AddError(component.Error{Source: name, Code: CodeUnresolved, Message: err.Error()})
		return component.EventError, fmt.Errorf("chain: make %s: %w", name, err)
	}

	ev, err := a.Execute(ctx, ec)
	if err != nil {
		ec.AddError(component.Error{Source: name, Code: CodeFailed, Message: err.Error()})
		return component.EventError, fmt.Errorf("chain: execute %s: %w", name, err)
	}

	return ev, nil
}

func rank(ev component.Event) int {
	switch ev {
	case component.EventPass:
		return 0
	case component.EventError:
		return 2
	default:
		return 1
	}
}

func worst(a, b component.Event) component.Event {
	if rank(b) > rank(a) {
		if rank(b) == 1 {
			return component.EventFail
		}
		return b
	}
	return a
}
