package formatters

import (
	"fmt"

	"github.com/microcosm-cc/bluemonday"
)

// SafeHTML strips everything but basic formatting from HTML input.
type SafeHTML struct {
	policy *bluemonday.Policy
}

// NewSafeHTML creates a SafeHTML formatter with a user-content policy.
func NewSafeHTML() *SafeHTML {
	p := bluemonday.NewPolicy()
	p.AllowStandardURLs()
	p.AllowElements(
		"p", "br",
		"strong", "b", "em", "i",
		"ul", "ol", "li",
		"code", "pre", "blockquote",
		"h1", "h2", "h3",
	)
	p.AllowAttrs("href").OnElements("a")
	p.RequireNoFollowOnLinks(true)
	return &SafeHTML{policy: p}
}

func (s *SafeHTML) Format(v any) (any, error) {
	src, ok := text(v)
	if !ok {
		return nil, fmt.Errorf("%w: safe html needs text, got %T", ErrUnsupportedValue, v)
	}
	return s.policy.SanitizeBytes(src), nil
}

func (*SafeHTML) SupportedTypes() []string {
	return []string{MediaHTML}
}
