package validation

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Document is a generic structured payload. Protocol envelopes vary across
// versions, so access goes through explicit path lookups instead of typed
// structs; every accessor degrades to its zero value when the path is absent
// or the wrong shape.
type Document map[string]any

// ParseDocument decodes a raw JSON envelope. Empty input yields a nil
// Document, not an error.
func ParseDocument(raw []byte) (Document, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var d Document
	if err := json.Unmarshal(raw, &d); err != nil {
		return nil, err
	}
	return d, nil
}

// AsDocument converts a decoded JSON value into a Document if it is an object.
func AsDocument(v any) (Document, bool) {
	switch m := v.(type) {
	case Document:
		return m, true
	case map[string]any:
		return Document(m), true
	default:
		return nil, false
	}
}

// Lookup walks the path through nested objects.
func (d Document) Lookup(path ...string) (any, bool) {
	var cur any = map[string]any(d)
	for _, key := range path {
		m, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		cur, ok = m[key]
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// Has reports presence of the path, regardless of the value's shape.
func (d Document) Has(path ...string) bool {
	_, ok := d.Lookup(path...)
	return ok
}

// String returns the string at path, or "" when absent or not a string.
func (d Document) String(path ...string) string {
	v, ok := d.Lookup(path...)
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Map returns the nested object at path.
func (d Document) Map(path ...string) (Document, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	return AsDocument(v)
}

// Slice returns the array at path.
func (d Document) Slice(path ...string) ([]any, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return nil, false
	}
	s, ok := v.([]any)
	return s, ok
}

// Int returns the number at path as an int. JSON numbers decode as float64;
// strings holding integers are accepted too since some BPPs send counts as
// strings.
func (d Document) Int(path ...string) (int, bool) {
	v, ok := d.Lookup(path...)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}
