package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FieldKind tells which shape the remote service used for a field.
type FieldKind int

const (
	FieldAbsent FieldKind = iota
	// FieldScalar is a bare JSON string: "sys_id": "abc123".
	FieldScalar
	// FieldReference is the object form: "sys_id": {"value": "abc123", "display_value": "abc123"}.
	FieldReference
)

func (k FieldKind) String() string {
	switch k {
	case FieldScalar:
		return "scalar"
	case FieldReference:
		return "reference"
	default:
		return "absent"
	}
}

// FieldValue decodes a response field that the change API returns either as a
// scalar or as a {value, display_value} pair, depending on the endpoint and
// the sysparm_display_value setting.
type FieldValue struct {
	Kind         FieldKind
	Value        string
	DisplayValue string
}

type referenceField struct {
	Value        *string `json:"value"`
	DisplayValue string  `json:"display_value"`
}

func (f *FieldValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = FieldValue{Kind: FieldAbsent}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FieldValue{Kind: FieldScalar, Value: s, DisplayValue: s}
		return nil

	case '{':
		var ref referenceField
		if err := json.Unmarshal(data, &ref); err != nil {
			return err
		}
		if ref.Value == nil {
			*f = FieldValue{Kind: FieldAbsent, DisplayValue: ref.DisplayValue}
			return nil
		}
		*f = FieldValue{Kind: FieldReference, Value: *ref.Value, DisplayValue: ref.DisplayValue}
		return nil

	case '[':
		return fmt.Errorf("unsupported field shape: %s", string(data))
	}

	// numbers and booleans
	if !json.Valid(data) {
		return fmt.Errorf("invalid field value: %s", string(data))
	}
	*f = FieldValue{Kind: FieldScalar, Value: string(data), DisplayValue: string(data)}
	return nil
}

func (f FieldValue) MarshalJSON() ([]byte, error) {
	switch f.Kind {
	case FieldScalar:
		return json.Marshal(f.Value)
	case FieldReference:
		return json.Marshal(map[string]string{"value": f.Value, "display_value": f.DisplayValue})
	default:
		return []byte("null"), nil
	}
}

// String returns the raw value regardless of shape; empty when absent.
func (f FieldValue) String() string {
	if f.Kind == FieldAbsent {
		return ""
	}
	return f.Value
}

func (f FieldValue) IsEmpty() bool {
	return f.String() == ""
}
