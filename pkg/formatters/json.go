package formatters

import (
	"encoding/json"
	"fmt"
)

// JSON encodes values as JSON.
type JSON struct{}

func (*JSON) Format(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("formatters: json: %w", err)
	}
	return b, nil
}

func (*JSON) SupportedTypes() []string {
	return []string{MediaJSON}
}
