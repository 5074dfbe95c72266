package models

import (
	"encoding/json"
	"fmt"
)

// MetaKind identifies the value kind held by a MetaValue
type MetaKind string

const (
	MetaKindString MetaKind = "string"
	MetaKindNumber MetaKind = "number"
	MetaKindList   MetaKind = "list"
)

// MetaValue is a single metadata annotation. Providers attach arbitrary
// key/value data to documents; the value space is deliberately closed to
// strings, numbers and string lists so the storage blob stays portable.
type MetaValue struct {
	Kind MetaKind
	Str  string
	Num  float64
	List []string
}

// Metadata is the provider-specific annotation bag attached to a document
type Metadata map[string]MetaValue

// String creates a string-valued metadata entry
func String(v string) MetaValue { return MetaValue{Kind: MetaKindString, Str: v} }

// Number creates a numeric metadata entry
func Number(v float64) MetaValue { return MetaValue{Kind: MetaKindNumber, Num: v} }

// List creates a string-list metadata entry
func List(v []string) MetaValue { return MetaValue{Kind: MetaKindList, List: v} }

// MarshalJSON serializes the value as its plain JSON representation
// (string, number or array), not as the tagged struct.
func (v MetaValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case MetaKindString:
		return json.Marshal(v.Str)
	case MetaKindNumber:
		return json.Marshal(v.Num)
	case MetaKindList:
		if v.List == nil {
			return json.Marshal([]string{})
		}
		return json.Marshal(v.List)
	default:
		return nil, fmt.Errorf("unknown metadata kind: %q", v.Kind)
	}
}

// UnmarshalJSON restores a value from its plain JSON representation
func (v *MetaValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = String(s)
		return nil
	}

	var n float64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Number(n)
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*v = List(list)
		return nil
	}

	return fmt.Errorf("unsupported metadata value: %s", string(data))
}
