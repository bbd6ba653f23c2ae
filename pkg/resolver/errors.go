package resolver

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for resolution.
var (
	// ErrNotFound is matched by every NotFoundError.
	ErrNotFound = errors.New("resolver: component not found")

	// ErrConfiguration marks search-path configuration that cannot be used.
	// It is fatal and must not be retried.
	ErrConfiguration = errors.New("resolver: invalid configuration")

	// ErrEmptyName is returned when Resolve is called without a logical name.
	ErrEmptyName = errors.New("resolver: empty logical name")

	// ErrAlreadyRegistered is returned when a type id is registered twice.
	ErrAlreadyRegistered = errors.New("resolver: type already registered")

	// ErrInvalidRegistration is returned for registrations missing a
	// namespace, a type name or a constructor.
	ErrInvalidRegistration = errors.New("resolver: invalid registration")
)

// NotFoundError reports a logical name that no configured location nor the
// native location could satisfy.
type NotFoundError struct {
	Kind  string
	Name  string
	Tried []TypeID
}

func (e *NotFoundError) Error() string {
	tried := make([]string, len(e.Tried))
	for i, id := range e.Tried {
		tried[i] = string(id)
	}
	return fmt.Sprintf("resolver: %s %q not found (tried: %s)", e.Kind, e.Name, strings.Join(tried, "; "))
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// IsNotFound reports whether err is a resolution miss.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
