// Package actions holds the actions shipped with the framework. They live
// in the native action location so every application can reach them by
// self-fallback.
package actions

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// RequiredKey is the context value listing the parameters RequireParams
// checks. It accepts []string, []any or a comma-separated string.
const RequiredKey = "required"

// Error codes.
const (
	CodeFailed   = "failed"
	CodeRequired = "required"
)

// Register adds the built-in actions to reg under the native action
// location.
func Register(reg *resolver.Registry) error {
	loc := component.ActionKind.Native
	builtins := []struct {
		name string
		ctor resolver.Constructor
	}{
		{"NoopAction", resolver.Func(func() *Noop { return &Noop{} })},
		{"PassAction", resolver.Func(func() *Pass { return &Pass{} })},
		{"FailAction", resolver.Func(func() *Fail { return &Fail{} })},
		{"ParamsCountAction", resolver.Func(func() *ParamsCount { return &ParamsCount{} })},
		{"RequireParamsAction", resolver.Func(func() *RequireParams { return &RequireParams{} })},
	}
	for _, b := range builtins {
		if err := reg.Register(loc, b.name, b.ctor); err != nil {
			return err
		}
	}
	return nil
}

// Noop does nothing and signals ok.
type Noop struct{}

func (*Noop) Execute(context.Context, *component.Context) (component.Event, error) {
	return component.EventOK, nil
}

// Pass signals pass.
type Pass struct{}

func (*Pass) Execute(context.Context, *component.Context) (component.Event, error) {
	return component.EventPass, nil
}

// Fail signals fail and records one error.
type Fail struct{}

func (*Fail) Execute(_ context.Context, ec *component.Context) (component.Event, error) {
	ec.AddError(component.Error{Source: "Fail", Code: CodeFailed, Message: "action failed"})
	return component.EventFail, nil
}

// ParamsCount signals zero, one or multiple by the number of request
// parameters.
type ParamsCount struct{}

func (*ParamsCount) Execute(_ context.Context, ec *component.Context) (component.Event, error) {
	switch n := len(ec.Params()); n {
	case 0:
		return component.EventZero, nil
	case 1:
		return component.EventOne, nil
	default:
		return component.EventMultiple, nil
	}
}

// RequireParams checks that every parameter listed under RequiredKey has a
// non-blank value. Each missing parameter adds one error.
type RequireParams struct{}

func (*RequireParams) Execute(_ context.Context, ec *component.Context) (component.Event, error) {
	required, err := requiredNames(ec.Get(RequiredKey))
	if err != nil {
		return component.EventError, err
	}

	var missing []component.Error
	for _, name := range required {
		if strings.TrimSpace(ec.Param(name)) == "" {
			missing = append(missing, component.Error{
				Source:  "RequireParams",
				Field:   name,
				Code:    CodeRequired,
				Message: name + " is required",
			})
		}
	}

	if len(missing) > 0 {
		ec.AddError(missing...)
		return component.EventFail, nil
	}
	return component.EventPass, nil
}

func requiredNames(v any) ([]string, error) {
	switch v := v.(type) {
	case nil:
		return nil, nil
	case string:
		var out []string
		for s := range strings.SplitSeq(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("actions: %s entry %v is not a string", RequiredKey, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("actions: unsupported %s value %T", RequiredKey, v)
	}
}
