// Package factory builds live component instances from resolved bindings.
//
// Every failure mode collapses into one [*InstantiationError] so callers can
// treat "the binding is no longer usable" uniformly, typically by evicting it.
package factory

import (
	"context"
	"errors"
	"fmt"
	"reflect"

	"github.com/dmitrymomot/flowforge/pkg/binding"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// Instantiation failure causes, available through errors.Is.
var (
	// ErrTypeUnavailable means the bound type can no longer be loaded,
	// e.g. it was unregistered after the binding was cached.
	ErrTypeUnavailable = errors.New("factory: type unavailable")

	// ErrConstructor means the constructor returned an error or panicked.
	ErrConstructor = errors.New("factory: constructor failed")

	// ErrContractMismatch means the instance does not implement the
	// expected contract.
	ErrContractMismatch = errors.New("factory: contract mismatch")
)

// InstantiationError reports a binding that could not produce a usable
// instance. Name is the logical name plus the kind's suffix.
type InstantiationError struct {
	Err    error
	Kind   string
	Name   string
	TypeID resolver.TypeID
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("factory: cannot instantiate %s %s (%s): %v", e.Kind, e.Name, e.TypeID, e.Err)
}

func (e *InstantiationError) Unwrap() error {
	return e.Err
}

// IsInstantiationError reports whether err is or wraps an InstantiationError.
func IsInstantiationError(err error) bool {
	var ie *InstantiationError
	return errors.As(err, &ie)
}

// Factory creates instances of contract T.
type Factory[T any] struct {
	loader resolver.Loader
	kind   resolver.Kind
}

// New creates a factory for kind. T is the contract instances must satisfy.
func New[T any](loader resolver.Loader, kind resolver.Kind) *Factory[T] {
	return &Factory[T]{loader: loader, kind: kind}
}

// Create invokes the constructor bound to b and checks the result against T.
// Each call returns a new instance.
func (f *Factory[T]) Create(_ context.Context, b binding.Binding) (inst T, err error) {
	fail := func(cause error) (T, error) {
		var zero T
		return zero, &InstantiationError{
			Err:    cause,
			Kind:   f.kind.Name,
			Name:   b.LogicalName + f.kind.Suffix,
			TypeID: b.TypeID,
		}
	}

	ctor, ok := f.loader.Load(b.TypeID)
	if !ok {
		return fail(ErrTypeUnavailable)
	}

	v, err := construct(ctor)
	if err != nil {
		return fail(err)
	}

	inst, ok = v.(T)
	if !ok {
		return fail(fmt.Errorf("%w: %s does not implement %s", ErrContractMismatch, typeName(v), contractName[T]()))
	}

	return inst, nil
}

// construct runs ctor, turning panics and nil results into errors.
func construct(ctor resolver.Constructor) (v any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: panic: %v", ErrConstructor, r)
		}
	}()

	v, err = ctor()
	if err != nil {
		return nil, errors.Join(ErrConstructor, err)
	}
	if v == nil {
		return nil, fmt.Errorf("%w: constructor returned nil", ErrConstructor)
	}
	return v, nil
}

func typeName(v any) string {
	return reflect.TypeOf(v).String()
}

func contractName[T any]() string {
	return reflect.TypeFor[T]().String()
}
