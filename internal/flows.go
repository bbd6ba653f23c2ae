package internal

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"slices"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/flow"
	"github.com/dmitrymomot/flowforge/pkg/formatters"
)

// FlowRunner runs a flow to its view.
type FlowRunner interface {
	Run(ctx context.Context, flowName, state string, ec *component.Context) (*flow.Result, error)
}

// FormatterSource looks formatters up by logical name. A miss reports
// ok=false without an error.
type FormatterSource interface {
	Formatter(ctx context.Context, name string) (component.Formatter, bool, error)
}

// FlowHandler exposes flows over HTTP:
//
//	GET|POST /{flow}          run from the start state
//	GET|POST /{flow}/{state}  run from state
//
// The view model is rendered with the state's formatter, or the one
// negotiated from the Accept header.
type FlowHandler struct {
	runner     FlowRunner
	formatters FormatterSource
	fallback   component.Formatter
	prefix     string
}

// FlowHandlerOption configures a FlowHandler.
type FlowHandlerOption func(*FlowHandler)

// WithFlowPrefix mounts the flow routes under prefix.
func WithFlowPrefix(prefix string) FlowHandlerOption {
	return func(h *FlowHandler) {
		h.prefix = prefix
	}
}

// WithFallbackFormatter sets the formatter used when a named formatter
// cannot be resolved. Defaults to JSON.
func WithFallbackFormatter(f component.Formatter) FlowHandlerOption {
	return func(h *FlowHandler) {
		if f != nil {
			h.fallback = f
		}
	}
}

// NewFlowHandler creates a FlowHandler.
func NewFlowHandler(runner FlowRunner, fs FormatterSource, opts ...FlowHandlerOption) *FlowHandler {
	h := &FlowHandler{
		runner:     runner,
		formatters: fs,
		fallback:   &formatters.JSON{},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *FlowHandler) Routes(r Router) {
	routes := func(r Router) {
		r.GET("/{flow}", h.run)
		r.POST("/{flow}", h.run)
		r.GET("/{flow}/{state}", h.run)
		r.POST("/{flow}/{state}", h.run)
	}
	if h.prefix == "" {
		routes(r)
		return
	}
	r.Route(h.prefix, routes)
}

// ViewModel is what formatters receive for a finished flow.
type ViewModel struct {
	Flow   string           `json:"flow"`
	State  string           `json:"state"`
	View   string           `json:"view"`
	Steps  []flow.Step      `json:"steps"`
	Values map[string]any   `json:"values,omitempty"`
	Errors component.Errors `json:"errors,omitempty"`
}

// Map flattens the view model for formatters that render maps.
func (vm ViewModel) Map() map[string]any {
	m := map[string]any{
		"flow":  vm.Flow,
		"state": vm.State,
		"view":  vm.View,
	}
	for k, v := range vm.Values {
		if _, taken := m[k]; !taken {
			m[k] = v
		}
	}
	if len(vm.Errors) > 0 {
		m["errors"] = vm.Errors.Error()
	}
	return m
}

func (h *FlowHandler) run(c Context) error {
	ec := component.NewContext(c.Params())

	res, err := h.runner.Run(c, c.Param("flow"), c.Param("state"), ec)
	if err != nil {
		return flowError(err)
	}

	vm := ViewModel{
		Flow:   res.Flow,
		State:  res.State,
		View:   res.View,
		Steps:  res.Steps,
		Values: ec.Values(),
		Errors: ec.Errors(),
	}

	status := http.StatusOK
	if ec.HasErrors() {
		status = http.StatusUnprocessableEntity
	}

	f, mediaType, err := h.formatter(c, res.Format)
	if err != nil {
		return err
	}

	var v any = vm
	if !slices.Contains(f.SupportedTypes(), formatters.MediaJSON) {
		v = vm.Map()
	}
	out, err := f.Format(v)
	if err != nil {
		return ErrInternal("rendering failed", WithError(err))
	}
	body, err := formatters.Bytes(out)
	if err != nil {
		return ErrInternal("rendering failed", WithError(err))
	}

	return c.Blob(status, mediaType+"; charset=utf-8", body)
}

// formatter picks the explicit formatter name or negotiates one, then makes
// it. An unresolvable name, or a formatter declaring no media types,
// degrades to the fallback formatter.
func (h *FlowHandler) formatter(c Context, name string) (component.Formatter, string, error) {
	var mediaType string
	if name == "" {
		available := []string{formatters.MediaJSON, formatters.MediaHTML, formatters.MediaText}
		mediaType = formatters.Negotiate(c.Header("Accept"), available)
		if mediaType == "" {
			return nil, "", ErrNotAcceptable("no acceptable representation")
		}
		name = formatters.ByMediaType[mediaType]
	}

	f, ok, err := h.formatters.Formatter(c, name)
	if err != nil {
		return nil, "", ErrInternal("formatter unavailable", WithError(err))
	}
	if !ok {
		c.LogWarn("formatter not found, using fallback", slog.String("formatter", name))
		f = h.fallback
	}

	types := f.SupportedTypes()
	if len(types) == 0 {
		c.LogWarn("formatter declares no media types, using fallback", slog.String("formatter", name))
		f = h.fallback
		types = f.SupportedTypes()
	}
	if mediaType == "" || !slices.Contains(types, mediaType) {
		mediaType = types[0]
	}
	return f, mediaType, nil
}

func flowError(err error) error {
	switch {
	case errors.Is(err, flow.ErrUnknownFlow), errors.Is(err, flow.ErrUnknownState):
		return ErrNotFound("flow not found", WithError(err))
	default:
		return ErrInternal("flow failed", WithError(err))
	}
}

// Resetter clears component binding caches.
type Resetter interface {
	Reset(ctx context.Context) error
}

// ResetHandler exposes POST /_components/reset.
type ResetHandler struct {
	resetter Resetter
}

// NewResetHandler creates a ResetHandler.
func NewResetHandler(r Resetter) *ResetHandler {
	return &ResetHandler{resetter: r}
}

func (h *ResetHandler) Routes(r Router) {
	r.POST("/_components/reset", h.reset)
}

func (h *ResetHandler) reset(c Context) error {
	if err := h.resetter.Reset(c); err != nil {
		return ErrServiceUnavailable("reset failed", WithError(err))
	}
	c.LogInfo("component bindings reset")
	return c.NoContent(http.StatusNoContent)
}
