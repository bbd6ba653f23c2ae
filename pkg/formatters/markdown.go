package formatters

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// Markdown converts Markdown source into HTML. Maps are rendered from their
// ContentKey entry.
type Markdown struct {
	md goldmark.Markdown
}

// NewMarkdown creates a Markdown formatter with GitHub flavored extensions.
func NewMarkdown() *Markdown {
	return &Markdown{md: goldmark.New(goldmark.WithExtensions(extension.GFM))}
}

func (m *Markdown) Format(v any) (any, error) {
	src, ok := text(v)
	if !ok {
		return nil, fmt.Errorf("%w: markdown needs text, got %T", ErrUnsupportedValue, v)
	}

	var buf bytes.Buffer
	if err := m.md.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("formatters: markdown: %w", err)
	}
	return buf.Bytes(), nil
}

func (*Markdown) SupportedTypes() []string {
	return []string{MediaHTML, MediaMarkdown}
}
