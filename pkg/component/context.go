package component

import (
	"maps"
	"slices"
	"strings"
	"sync"
)

// Error is a structured, user-facing problem reported by an action.
type Error struct {
	Source  string `json:"source,omitempty"`
	Field   string `json:"field,omitempty"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func (e Error) Error() string {
	if e.Field != "" {
		return e.Field + ": " + e.Message
	}
	return e.Message
}

// Errors is an ordered collection of structured errors.
type Errors []Error

func (e Errors) Error() string {
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// Context carries per-call state into actions: request parameters, a value
// bag shared across the actions of one request, and the error collection.
// It is safe for concurrent use.
type Context struct {
	params map[string][]string
	values map[string]any
	errors Errors
	mu     sync.RWMutex
}

// NewContext creates a Context over the given request parameters.
// The map is copied.
func NewContext(params map[string][]string) *Context {
	p := make(map[string][]string, len(params))
	for k, v := range params {
		p[k] = slices.Clone(v)
	}
	return &Context{
		params: p,
		values: make(map[string]any),
	}
}

// Param returns the first value of the named parameter, or "".
func (c *Context) Param(name string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if v := c.params[name]; len(v) > 0 {
		return v[0]
	}
	return ""
}

// ParamValues returns every value of the named parameter.
func (c *Context) ParamValues(name string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.params[name])
}

// Params returns the parameter names in sorted order.
func (c *Context) Params() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.params))
}

// Set stores a value for later actions or the response.
func (c *Context) Set(key string, v any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = v
}

// Get returns a stored value or nil.
func (c *Context) Get(key string) any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.values[key]
}

// Values returns a copy of the value bag.
func (c *Context) Values() map[string]any {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return maps.Clone(c.values)
}

// AddError appends structured errors in order. The collection is created on
// the first call.
func (c *Context) AddError(errs ...Error) {
	if len(errs) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.errors == nil {
		c.errors = make(Errors, 0, len(errs))
	}
	c.errors = append(c.errors, errs...)
}

// Errors returns the collected errors, or nil if none were ever added.
func (c *Context) Errors() Errors {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.errors == nil {
		return nil
	}
	return slices.Clone(c.errors)
}

// HasErrors reports whether any error was collected.
func (c *Context) HasErrors() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.errors) > 0
}
