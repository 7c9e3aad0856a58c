package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// OverrideSet maps remote field names to replacement values.
type OverrideSet map[string]any

// ParseOverrides decodes a JSON object literal. Anything else, including
// null, arrays and trailing garbage, is an input error.
func ParseOverrides(raw string) (OverrideSet, error) {
	data := bytes.TrimSpace([]byte(raw))
	if len(data) == 0 {
		return nil, NewInputError(errors.New("empty argument"))
	}
	if data[0] != '{' {
		return nil, NewInputError(fmt.Errorf("expected a JSON object, got %q", truncate(string(data), 40)))
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var overrides OverrideSet
	if err := dec.Decode(&overrides); err != nil {
		return nil, NewInputError(err)
	}
	if err := dec.Decode(new(json.RawMessage)); err != io.EOF {
		return nil, NewInputError(errors.New("unexpected data after JSON object"))
	}
	if overrides == nil {
		overrides = OverrideSet{}
	}
	return overrides, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
