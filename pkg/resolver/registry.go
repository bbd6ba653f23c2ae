package resolver

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Constructor builds a fresh component instance. It takes no arguments.
type Constructor func() (any, error)

// Func adapts a plain zero-argument constructor.
//
//	reg.MustRegister(loc, "LoginAction", resolver.Func(NewLoginAction))
func Func[T any](fn func() T) Constructor {
	return func() (any, error) {
		return fn(), nil
	}
}

// Loader loads a constructor by type id. Registry is the standard
// implementation; a load is the only potentially blocking step of resolution.
type Loader interface {
	Load(id TypeID) (Constructor, bool)
}

// Registry maps qualified type ids to constructors. Components register
// themselves at startup; the resolver then queries it with candidate ids
// built from the configured locations.
//
// The lock is held for single map operations only.
type Registry struct {
	byID   map[TypeID]Constructor
	byName map[string][]TypeID
	order  []TypeID
	mu     sync.RWMutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[TypeID]Constructor),
		byName: make(map[string][]TypeID),
	}
}

// Register adds a constructor for typeName at loc.
// The resulting id is "loc.Namespace.typeName[,loc.Module]".
func (r *Registry) Register(loc Location, typeName string, ctor Constructor) error {
	if loc.Namespace == "" || typeName == "" || ctor == nil {
		return fmt.Errorf("%w: namespace=%q type=%q", ErrInvalidRegistration, loc.Namespace, typeName)
	}
	if strings.Contains(typeName, locationSeparator) {
		return fmt.Errorf("%w: type name %q contains %q", ErrInvalidRegistration, typeName, locationSeparator)
	}

	id := Candidate(loc, typeName, "")

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[id]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, id)
	}

	r.byID[id] = ctor
	name := id.TypeName()
	r.byName[name] = append(r.byName[name], id)
	r.order = append(r.order, id)

	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(loc Location, typeName string, ctor Constructor) {
	if err := r.Register(loc, typeName, ctor); err != nil {
		panic(err)
	}
}

// Load returns the constructor for id.
// A module-qualified id must match exactly. A bare id matches a module-less
// registration first, then the earliest registration of that type name in
// any module.
func (r *Registry) Load(id TypeID) (Constructor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if ctor, ok := r.byID[id]; ok {
		return ctor, true
	}
	if id.Module() != "" {
		return nil, false
	}

	ids := r.byName[id.TypeName()]
	if len(ids) == 0 {
		return nil, false
	}
	return r.byID[ids[0]], true
}

// Unregister removes id. It reports whether anything was removed.
func (r *Registry) Unregister(id TypeID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[id]; !ok {
		return false
	}

	delete(r.byID, id)

	name := id.TypeName()
	r.byName[name] = slices.DeleteFunc(r.byName[name], func(v TypeID) bool { return v == id })
	if len(r.byName[name]) == 0 {
		delete(r.byName, name)
	}
	r.order = slices.DeleteFunc(r.order, func(v TypeID) bool { return v == id })

	return true
}

// Scan lists the logical names registered directly under loc whose type
// names end in suffix, in registration order. A location without a module
// matches every module.
func (r *Registry) Scan(loc Location, suffix string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	prefix := loc.Namespace + "."
	seen := make(map[string]struct{})
	var names []string

	for _, id := range r.order {
		if loc.Module != "" && id.Module() != loc.Module {
			continue
		}
		rest, ok := strings.CutPrefix(id.TypeName(), prefix)
		if !ok || strings.Contains(rest, ".") {
			continue
		}
		name, ok := strings.CutSuffix(rest, suffix)
		if !ok || name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	return names
}

// Entries returns every registered id in registration order.
func (r *Registry) Entries() []TypeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Len returns the number of registered ids.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

var _ Loader = (*Registry)(nil)
