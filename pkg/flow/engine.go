package flow

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrymomot/flowforge/pkg/chain"
	"github.com/dmitrymomot/flowforge/pkg/component"
)

// DefaultMaxSteps bounds the transitions of one run.
const DefaultMaxSteps = 64

// Step records one executed action state.
type Step struct {
	State  string          `json:"state"`
	Action string          `json:"action"`
	Event  component.Event `json:"event"`
}

// Result is the outcome of a run that reached a view.
type Result struct {
	Flow   string `json:"flow"`
	State  string `json:"state"`
	View   string `json:"view"`
	Format string `json:"format,omitempty"`
	Steps  []Step `json:"steps"`
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMaxSteps overrides DefaultMaxSteps.
func WithMaxSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSteps = n
		}
	}
}

// Engine runs flows, making each state's actions by logical name.
type Engine struct {
	actions  chain.Maker
	flows    Definitions
	logger   *slog.Logger
	maxSteps int
}

// NewEngine creates an Engine over flows.
func NewEngine(actions chain.Maker, flows Definitions, opts ...Option) *Engine {
	e := &Engine{
		actions:  actions,
		flows:    flows,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		maxSteps: DefaultMaxSteps,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Flow returns the named flow definition.
func (e *Engine) Flow(name string) (*Flow, bool) {
	f, ok := e.flows[name]
	return f, ok
}

// Run executes flowName from state (the start state when empty) until a view
// state is reached. The partial result is returned along with any error.
func (e *Engine) Run(ctx context.Context, flowName, state string, ec *component.Context) (*Result, error) {
	f, ok := e.flows[flowName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFlow, flowName)
	}
	if state == "" {
		state = f.Start
	}

	res := &Result{Flow: flowName}
	for range e.maxSteps {
		s, ok := f.States[state]
		if !ok {
			return res, fmt.Errorf("%w: %q in flow %q", ErrUnknownState, state, flowName)
		}
		res.State = s.Name

		if s.Terminal() {
			res.View = s.View
			res.Format = s.Format
			return res, nil
		}

		for k, v := range s.With {
			ec.Set(k, v)
		}

		ev, err := e.execute(ctx, s.Action, ec)
		if err != nil {
			if f.OnError == OnErrorAbort {
				e.logger.ErrorContext(ctx, "flow aborted",
					slog.String("flow", flowName),
					slog.String("state", s.Name),
					slog.String("action", s.Action),
					slog.Any("error", err),
				)
				return res, fmt.Errorf("flow %s state %s: %w", flowName, s.Name, err)
			}
			e.logger.WarnContext(ctx, "action failed, continuing with error event",
				slog.String("flow", flowName),
				slog.String("state", s.Name),
				slog.Any("error", err),
			)
			ev = component.EventError
		}
		res.Steps = append(res.Steps, Step{State: s.Name, Action: s.Action, Event: ev})

		next, ok := s.Transitions[ev]
		if !ok {
			return res, fmt.Errorf("%w: %q in state %q of flow %q", ErrNoTransition, ev, s.Name, flowName)
		}
		state = next
	}

	return res, fmt.Errorf("%w: flow %q exceeded %d steps", ErrTooManySteps, flowName, e.maxSteps)
}

func (e *Engine) execute(ctx context.Context, action string, ec *component.Context) (component.Event, error) {
	if chain.IsChain(action) {
		return chain.Run(ctx, e.actions, action, ec)
	}

	a, err := e.actions.Make(ctx, action)
	if err != nil {
		return component.EventError, err
	}
	return a.Execute(ctx, ec)
}
