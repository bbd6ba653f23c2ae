package flow

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/flowforge/pkg/component"
)

// Error policies applied when an action cannot be made or executed.
const (
	// OnErrorAbort stops the flow and returns the error.
	OnErrorAbort = "abort"
	// OnErrorEvent turns the failure into the "error" event.
	OnErrorEvent = "event"
)

// Definitions is a set of flows keyed by name.
type Definitions map[string]*Flow

// Flow is a named state machine.
type Flow struct {
	Name    string            `yaml:"-"`
	Start   string            `yaml:"start"`
	OnError string            `yaml:"on_error"`
	States  map[string]*State `yaml:"states"`
}

// State either runs an action (one name or a comma-separated chain) and
// follows the transition for the resulting event, or renders a view and
// ends the flow.
type State struct {
	Name        string                     `yaml:"-"`
	Action      string                     `yaml:"action"`
	With        map[string]any             `yaml:"with"`
	Transitions map[component.Event]string `yaml:"transitions"`
	View        string                     `yaml:"view"`
	Format      string                     `yaml:"format"`
}

// Terminal reports whether the state renders a view.
func (s *State) Terminal() bool {
	return s.View != ""
}

type document struct {
	Flows Definitions `yaml:"flows"`
}

// Parse decodes and validates YAML flow definitions.
func Parse(data []byte) (Definitions, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDefinition, err)
	}
	if len(doc.Flows) == 0 {
		return nil, fmt.Errorf("%w: no flows defined", ErrInvalidDefinition)
	}

	for name, f := range doc.Flows {
		if f == nil {
			return nil, fmt.Errorf("%w: flow %q is empty", ErrInvalidDefinition, name)
		}
		f.Name = name
		if err := f.validate(); err != nil {
			return nil, err
		}
	}
	return doc.Flows, nil
}

// Load reads and parses a definitions file.
func Load(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("flow: reading %q: %w", path, err)
	}
	return Parse(data)
}

// LoadFS reads and parses a definitions file from fsys.
func LoadFS(fsys fs.FS, name string) (Definitions, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("flow: reading %q: %w", name, err)
	}
	return Parse(data)
}

// Names returns the flow names in sorted order.
func (d Definitions) Names() []string {
	return slices.Sorted(maps.Keys(d))
}

func (f *Flow) validate() error {
	invalid := func(format string, args ...any) error {
		return fmt.Errorf("%w: flow %q: %s", ErrInvalidDefinition, f.Name, fmt.Sprintf(format, args...))
	}

	switch f.OnError {
	case "":
		f.OnError = OnErrorAbort
	case OnErrorAbort, OnErrorEvent:
	default:
		return invalid("unknown on_error policy %q", f.OnError)
	}

	if len(f.States) == 0 {
		return invalid("no states")
	}
	if _, ok := f.States[f.Start]; !ok {
		return invalid("start state %q does not exist", f.Start)
	}

	for _, name := range slices.Sorted(maps.Keys(f.States)) {
		s := f.States[name]
		if s == nil {
			return invalid("state %q is empty", name)
		}
		s.Name = name

		switch {
		case s.Action != "" && s.View != "":
			return invalid("state %q has both action and view", name)
		case s.Action == "" && s.View == "":
			return invalid("state %q needs an action or a view", name)
		case s.Action != "" && len(s.Transitions) == 0:
			return invalid("state %q has no transitions", name)
		case s.View != "" && len(s.Transitions) > 0:
			return invalid("view state %q cannot have transitions", name)
		}

		for ev, target := range s.Transitions {
			if _, ok := f.States[target]; !ok {
				return invalid("state %q: event %q targets unknown state %q", name, ev, target)
			}
		}
	}
	return nil
}
