package formatters_test

import (
	"context"
	"io"
	"testing"

	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/flowforge/pkg/component"
	"github.com/dmitrymomot/flowforge/pkg/formatters"
	"github.com/dmitrymomot/flowforge/pkg/resolver"
)

func format(t *testing.T, f component.Formatter, v any) string {
	t.Helper()
	out, err := f.Format(v)
	require.NoError(t, err)
	b, err := formatters.Bytes(out)
	require.NoError(t, err)
	return string(b)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	reg := resolver.NewRegistry()
	require.NoError(t, formatters.Register(reg))
	require.Equal(t,
		[]string{"Json", "Html", "Markdown", "SafeHtml", "Text"},
		reg.Scan(component.FormatterKind.Native, ""),
	)
}

func TestFormatters(t *testing.T) {
	t.Parallel()

	t.Run("json", func(t *testing.T) {
		t.Parallel()
		require.JSONEq(t, `{"user":"ann"}`, format(t, &formatters.JSON{}, map[string]any{"user": "ann"}))
	})

	t.Run("json error", func(t *testing.T) {
		t.Parallel()
		_, err := (&formatters.JSON{}).Format(make(chan int))
		require.Error(t, err)
	})

	t.Run("text", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "a: 1\nb: x\n", format(t, &formatters.Text{}, map[string]any{"b": "x", "a": 1}))
		require.Equal(t, "hello", format(t, &formatters.Text{}, "hello"))
	})

	t.Run("html escapes strings", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "<p>&lt;b&gt;hi&lt;/b&gt;</p>", format(t, formatters.NewHTML(), "<b>hi</b>"))
	})

	t.Run("html renders components", func(t *testing.T) {
		t.Parallel()
		c := templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<h1>Welcome</h1>")
			return err
		})
		require.Equal(t, "<h1>Welcome</h1>", format(t, formatters.NewHTML(), c))
	})

	t.Run("html renders maps", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "<dl><dt>user</dt><dd>ann</dd></dl>", format(t, formatters.NewHTML(), map[string]any{"user": "ann"}))
	})

	t.Run("markdown", func(t *testing.T) {
		t.Parallel()
		require.Equal(t, "<h1>Title</h1>\n<p><em>hi</em></p>\n", format(t, formatters.NewMarkdown(), "# Title\n\n*hi*"))

		_, err := formatters.NewMarkdown().Format(42)
		require.ErrorIs(t, err, formatters.ErrUnsupportedValue)
	})

	t.Run("safe html", func(t *testing.T) {
		t.Parallel()
		got := format(t, formatters.NewSafeHTML(), `<p onclick="x()">ok<script>alert(1)</script></p>`)
		require.Equal(t, "<p>ok</p>", got)
	})
}

func TestNegotiate(t *testing.T) {
	t.Parallel()

	available := []string{formatters.MediaJSON, formatters.MediaHTML, formatters.MediaText}

	for accept, want := range map[string]string{
		"":                                  formatters.MediaJSON,
		"text/html":                         formatters.MediaHTML,
		"text/*":                            formatters.MediaHTML,
		"*/*":                               formatters.MediaJSON,
		"text/html;q=0.5, application/json": formatters.MediaJSON,
		"text/html, application/xhtml+xml, */*;q=0.8": formatters.MediaHTML,
		"text/plain;q=0.9, text/*;q=0.1":              formatters.MediaText,
		"image/png":                                   "",
		"application/json;q=0":                        "",
	} {
		require.Equal(t, want, formatters.Negotiate(accept, available), "accept=%q", accept)
	}
}

func TestTextFormatters_MapContent(t *testing.T) {
	t.Parallel()

	v := map[string]any{formatters.ContentKey: "**bold**", "view": "welcome"}
	require.Equal(t, "<p><strong>bold</strong></p>\n", format(t, formatters.NewMarkdown(), v))

	_, err := formatters.NewSafeHTML().Format(map[string]any{"view": "welcome"})
	require.ErrorIs(t, err, formatters.ErrUnsupportedValue)
}
