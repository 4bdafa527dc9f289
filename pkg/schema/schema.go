// Package schema describes a form: its fields, their kinds and defaults.
//
// A [Schema] is what the host page knows about its inputs. It yields the
// list of field names an import checks for ([Schema.Names]), the initial
// record of values ([Schema.Defaults]) and the coercion a control applies
// when its value is set ([Schema.Coerce]).
package schema

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/formio/pkg/errors"
	"github.com/matzehuels/formio/pkg/io"
)

// Kind is the input type of a field.
type Kind string

// Supported field kinds.
const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindCheckbox Kind = "checkbox"
	KindSelect   Kind = "select"
)

// Field is one named form input.
type Field struct {
	Name    string   `toml:"name"`
	Title   string   `toml:"title"`
	Kind    Kind     `toml:"kind"`
	Default any      `toml:"default"`
	Options []string `toml:"options"`
}

// Label returns the title, falling back to the name.
func (f Field) Label() string {
	if f.Title != "" {
		return f.Title
	}
	return f.Name
}

// Coerce converts the text a control receives into the value the field holds.
//
//   - number: a valid number becomes a json.Number, anything else stays text
//   - checkbox: "true", "on" and "1" are checked, everything else is not
//   - select: values outside Options become the empty string
//   - text: unchanged
func (f Field) Coerce(s string) any {
	switch f.Kind {
	case KindNumber:
		t := strings.TrimSpace(s)
		if _, err := strconv.ParseFloat(t, 64); err == nil && json.Valid([]byte(t)) {
			return json.Number(t)
		}
		return s
	case KindCheckbox:
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "on", "1":
			return true
		}
		return false
	case KindSelect:
		if slices.Contains(f.Options, s) {
			return s
		}
		return ""
	}
	return s
}

// Schema is an ordered list of fields with presentation settings.
type Schema struct {
	Title         string  `toml:"title"`
	Locale        string  `toml:"locale"`
	ReportUnbound bool    `toml:"report_unbound"`
	Fields        []Field `toml:"field"`
}

// Names returns the field names in declaration order.
func (s *Schema) Names() []string {
	names := make([]string, len(s.Fields))
	for i, f := range s.Fields {
		names[i] = f.Name
	}
	return names
}

// Field returns the first field named name.
func (s *Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Coerce converts s for the field named name. Unknown names keep the text.
func (s *Schema) Coerce(name, value string) any {
	if f, ok := s.Field(name); ok {
		return f.Coerce(value)
	}
	return value
}

// Defaults returns a record holding every field's default value in
// declaration order.
func (s *Schema) Defaults() *io.Record {
	rec := io.NewRecord()
	for _, f := range s.Fields {
		rec.Set(f.Name, f.defaultValue())
	}
	return rec
}

func (f Field) defaultValue() any {
	switch v := f.Default.(type) {
	case nil:
		if f.Kind == KindCheckbox {
			return false
		}
		if f.Kind == KindSelect && len(f.Options) > 0 {
			return f.Options[0]
		}
		return ""
	case int64:
		if f.Kind == KindNumber {
			return json.Number(strconv.FormatInt(v, 10))
		}
	case float64:
		if f.Kind == KindNumber {
			return json.Number(strconv.FormatFloat(v, 'f', -1, 64))
		}
	case bool:
		if f.Kind == KindCheckbox {
			return v
		}
	}
	return f.Coerce(io.Stringify(f.Default))
}

// Validate checks names, kinds and options.
func (s *Schema) Validate() error {
	if len(s.Fields) == 0 {
		return errors.New(errors.ErrCodeInvalidSchema, "form has no fields")
	}
	seen := make(map[string]bool, len(s.Fields))
	for i := range s.Fields {
		f := &s.Fields[i]
		if err := errors.ValidateFieldName(f.Name); err != nil {
			return err
		}
		if seen[f.Name] {
			return errors.New(errors.ErrCodeInvalidSchema, "duplicate field name: %s", f.Name)
		}
		seen[f.Name] = true

		if f.Kind == "" {
			f.Kind = KindText
		}
		switch f.Kind {
		case KindText, KindNumber, KindCheckbox:
		case KindSelect:
			if len(f.Options) == 0 {
				return errors.New(errors.ErrCodeInvalidSchema, "select field %s has no options", f.Name)
			}
		default:
			return errors.New(errors.ErrCodeInvalidSchema, "field %s has unknown kind %q", f.Name, f.Kind)
		}
	}
	return nil
}
