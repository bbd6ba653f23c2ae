package formatters

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"maps"
	"slices"

	"github.com/a-h/templ"
)

// HTML renders templ components. Other values are rendered by a minimal
// escaped view: strings as a paragraph, maps as a definition list.
type HTML struct {
	ctx context.Context
}

// NewHTML creates an HTML formatter.
func NewHTML() *HTML {
	return &HTML{ctx: context.Background()}
}

func (h *HTML) Format(v any) (any, error) {
	var c templ.Component
	switch v := v.(type) {
	case templ.Component:
		c = v
	case string:
		c = paragraph(v)
	case map[string]any:
		c = definitions(v)
	case nil:
		return []byte{}, nil
	default:
		c = paragraph(fmt.Sprint(v))
	}

	var buf bytes.Buffer
	if err := c.Render(h.ctx, &buf); err != nil {
		return nil, fmt.Errorf("formatters: html: %w", err)
	}
	return buf.Bytes(), nil
}

func (*HTML) SupportedTypes() []string {
	return []string{MediaHTML}
}

func paragraph(s string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<p>"+templ.EscapeString(s)+"</p>")
		return err
	})
}

func definitions(m map[string]any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<dl>"); err != nil {
			return err
		}
		for _, k := range slices.Sorted(maps.Keys(m)) {
			if _, err := fmt.Fprintf(w, "<dt>%s</dt><dd>%s</dd>",
				templ.EscapeString(k), templ.EscapeString(fmt.Sprint(m[k]))); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</dl>")
		return err
	})
}
