// Package formatters holds the formatters shipped with the framework.
//
// Formatters turn a view model into a response body ([]byte). They are
// registered in the native formatter location so that a formatter name not
// provided by the application falls back to these.
package formatters

import (
	"errors"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

// Media types produced by the built-in formatters.
const (
	MediaJSON     = "application/json"
	MediaHTML     = "text/html"
	MediaMarkdown = "text/markdown"
	MediaText     = "text/plain"
)

// ErrUnsupportedValue is returned when a formatter cannot render a value.
var ErrUnsupportedValue = errors.New("formatters: unsupported value")

// Register adds the built-in formatters to reg under the native formatter
// location.
func Register(reg *resolver.Registry) error {
	loc := component.FormatterKind.Native
	builtins := []struct {
		name string
		ctor resolver.Constructor
	}{
		{"Json", resolver.Func(func() *JSON { return &JSON{} })},
		{"Html", resolver.Func(NewHTML)},
		{"Markdown", resolver.Func(NewMarkdown)},
		{"SafeHtml", resolver.Func(NewSafeHTML)},
		{"Text", resolver.Func(func() *Text { return &Text{} })},
	}
	for _, b := range builtins {
		if err := reg.Register(loc, b.name, b.ctor); err != nil {
			return err
		}
	}
	return nil
}

// ContentKey is the map key text formatters render when given a map.
const ContentKey = "content"

// text extracts the source text of v: a string, a byte slice, or the
// ContentKey entry of a map.
func text(v any) ([]byte, bool) {
	switch v := v.(type) {
	case string:
		return []byte(v), true
	case []byte:
		return v, true
	case map[string]any:
		return text(v[ContentKey])
	default:
		return nil, false
	}
}

// ByMediaType maps the negotiable media types to formatter names.
var ByMediaType = map[string]string{
	MediaJSON: "Json",
	MediaHTML: "Html",
	MediaText: "Text",
}

// Bytes returns the body produced by a formatter.
func Bytes(out any) ([]byte, error) {
	switch v := out.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, ErrUnsupportedValue
	}
}
