package resolver

import (
	"fmt"
	"strings"
)

// locationSeparator splits a namespace from its module override.
const locationSeparator = ","

// Location is one configured search candidate: a namespace and an optional
// module the namespace lives in.
type Location struct {
	Namespace string `json:"namespace" yaml:"namespace"`
	Module    string `json:"module,omitempty" yaml:"module,omitempty"`
}

// String renders the location in its configuration form.
func (l Location) String() string {
	if l.Module == "" {
		return l.Namespace
	}
	return l.Namespace + locationSeparator + l.Module
}

// IsZero reports whether the location is unset.
func (l Location) IsZero() bool {
	return l.Namespace == "" && l.Module == ""
}

// ParseLocation parses "namespace" or "namespace,module".
// More than one separator or an empty namespace is a configuration error.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, locationSeparator)
	if len(parts) > 2 {
		return Location{}, fmt.Errorf("%w: location %q has more than one %q", ErrConfiguration, s, locationSeparator)
	}

	loc := Location{Namespace: strings.TrimSpace(parts[0])}
	if len(parts) == 2 {
		loc.Module = strings.TrimSpace(parts[1])
		if loc.Module == "" {
			return Location{}, fmt.Errorf("%w: location %q has an empty module", ErrConfiguration, s)
		}
	}
	if loc.Namespace == "" {
		return Location{}, fmt.Errorf("%w: location %q has an empty namespace", ErrConfiguration, s)
	}

	return loc, nil
}

// ParseLocations parses an ordered list of locations, failing on the first
// malformed entry. Order is preserved.
func ParseLocations(ss []string) ([]Location, error) {
	locs := make([]Location, 0, len(ss))
	for _, s := range ss {
		loc, err := ParseLocation(s)
		if err != nil {
			return nil, err
		}
		locs = append(locs, loc)
	}
	return locs, nil
}

// TypeID is a fully qualified, loadable type identifier:
// "namespace.TypeName" optionally followed by ",module".
type TypeID string

// Candidate builds the type id for a logical name at a location.
//
//	Candidate(Location{"App.Actions", "App.dll"}, "Login", "Action")
//	// App.Actions.LoginAction,App.dll
func Candidate(loc Location, name, suffix string) TypeID {
	id := loc.Namespace + "." + name + suffix
	if loc.Module != "" {
		id += locationSeparator + loc.Module
	}
	return TypeID(id)
}

// TypeName returns the id without its module part.
func (id TypeID) TypeName() string {
	name, _, _ := strings.Cut(string(id), locationSeparator)
	return name
}

// Module returns the module part, or "" for a bare id.
func (id TypeID) Module() string {
	_, mod, _ := strings.Cut(string(id), locationSeparator)
	return mod
}

func (id TypeID) String() string {
	return string(id)
}

// Kind describes one contract kind: its name for diagnostics, the fixed
// suffix appended to logical names, and the native location used for
// self-fallback.
type Kind struct {
	Name   string
	Suffix string
	Native Location
}

func (k Kind) String() string {
	return k.Name
}
