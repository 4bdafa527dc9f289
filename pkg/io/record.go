package io

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is an ordered mapping from field name to a JSON scalar.
// The zero value is an empty record ready to use.
type Record struct {
	names  []string
	values map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{values: make(map[string]any)}
}

// Set stores v under name. A new name is appended to the key order;
// an existing name keeps its position.
func (r *Record) Set(name string, v any) {
	if r.values == nil {
		r.values = make(map[string]any)
	}
	if _, ok := r.values[name]; !ok {
		r.names = append(r.names, name)
	}
	r.values[name] = v
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (any, bool) {
	if r == nil {
		return nil, false
	}
	v, ok := r.values[name]
	return v, ok
}

// Has reports whether the record has a property named name.
func (r *Record) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns the field names in key order.
func (r *Record) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of fields.
func (r *Record) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}

// Clone returns an independent copy of r.
func (r *Record) Clone() *Record {
	out := NewRecord()
	if r == nil {
		return out
	}
	for _, name := range r.names {
		out.Set(name, r.values[name])
	}
	return out
}

// Strings returns every value stringified with [Stringify], keyed by name.
func (r *Record) Strings() map[string]string {
	out := make(map[string]string, r.Len())
	if r == nil {
		return out
	}
	for _, name := range r.names {
		out[name] = Stringify(r.values[name])
	}
	return out
}

// MarshalJSON encodes the record as a compact JSON object in key order.
// HTML characters are written as-is.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	if r != nil {
		for i, name := range r.names {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := encodeValue(&buf, name); err != nil {
				return nil, fmt.Errorf("encode key %q: %w", name, err)
			}
			buf.WriteByte(':')
			if err := encodeValue(&buf, r.values[name]); err != nil {
				return nil, fmt.Errorf("encode %q: %w", name, err)
			}
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the record's contents with the object in data,
// keeping the document's key order.
func (r *Record) UnmarshalJSON(data []byte) error {
	doc, err := ParseDocument(data)
	if err != nil {
		return err
	}
	*r = *doc
	return nil
}

func encodeValue(buf *bytes.Buffer, v any) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Write(bytes.TrimRight(tmp.Bytes(), "\n"))
	return nil
}

// Stringify converts a JSON value to the text a form control holds.
//
// Strings are returned unchanged, numbers as their JSON text as written
// (1e2 stays "1e2", 37.0 stays "37.0"), booleans as
// "true" or "false", and null as the empty string. Objects and arrays are
// rendered as compact JSON.
func Stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "true"
		}
		return "false"
	}
	var buf bytes.Buffer
	if err := encodeValue(&buf, v); err != nil {
		return fmt.Sprint(v)
	}
	return buf.String()
}
