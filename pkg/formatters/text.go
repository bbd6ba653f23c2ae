package formatters

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Text renders values as plain text. Maps become sorted "key: value" lines.
type Text struct{}

func (*Text) Format(v any) (any, error) {
	switch v := v.(type) {
	case nil:
		return []byte{}, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	case fmt.Stringer:
		return []byte(v.String()), nil
	case map[string]any:
		var sb strings.Builder
		for _, k := range slices.Sorted(maps.Keys(v)) {
			fmt.Fprintf(&sb, "%s: %v\n", k, v[k])
		}
		return []byte(sb.String()), nil
	default:
		return fmt.Appendf(nil, "%v", v), nil
	}
}

func (*Text) SupportedTypes() []string {
	return []string{MediaText}
}
