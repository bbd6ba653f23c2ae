package flow

import "errors"

var (
	ErrInvalidDefinition = errors.New("flow: invalid definition")
	ErrUnknownFlow       = errors.New("flow: unknown flow")
	ErrUnknownState      = errors.New("flow: unknown state")
	ErrNoTransition      = errors.New("flow: no transition for event")
	ErrTooManySteps      = errors.New("flow: too many steps")
)
