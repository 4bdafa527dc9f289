package io

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func TestMarshalScenario(t *testing.T) {
	rec := NewRecord()
	rec.Set("name", "Ada")
	rec.Set("age", "37")

	got, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := "{\n  \"name\": \"Ada\",\n  \"age\": \"37\"\n}"
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestMarshalEmpty(t *testing.T) {
	tests := []struct {
		name string
		rec  *Record
	}{
		{"nil record", nil},
		{"new record", NewRecord()},
		{"zero value", &Record{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Marshal(tt.rec)
			if err != nil {
				t.Fatalf("Marshal: %v", err)
			}
			if string(got) != "{}" {
				t.Errorf("Marshal() = %q, want %q", got, "{}")
			}
		})
	}
}

func TestMarshalKeepsKeyOrder(t *testing.T) {
	rec := NewRecord()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		rec.Set(name, name)
	}

	got, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	za := bytes.Index(got, []byte(`"zeta"`))
	al := bytes.Index(got, []byte(`"alpha"`))
	mi := bytes.Index(got, []byte(`"mid"`))
	if !(za < al && al < mi) {
		t.Errorf("keys out of insertion order:\n%s", got)
	}
}

func TestMarshalScalars(t *testing.T) {
	rec := NewRecord()
	rec.Set("text", "<b>&</b>")
	rec.Set("number", json.Number("0.0005"))
	rec.Set("float", 80.5)
	rec.Set("int", 30)
	rec.Set("flag", true)
	rec.Set("empty", nil)

	got, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{
  "text": "<b>&</b>",
  "number": 0.0005,
  "float": 80.5,
  "int": 30,
  "flag": true,
  "empty": null
}`
	if string(got) != want {
		t.Errorf("Marshal() =\n%s\nwant\n%s", got, want)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := NewRecord()
	rec.Set("x", json.Number("1"))

	var buf bytes.Buffer
	if err := WriteJSON(rec, &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if buf.String() != "{\n  \"x\": 1\n}" {
		t.Errorf("WriteJSON wrote %q", buf.String())
	}
}

func TestExportJSON(t *testing.T) {
	rec := NewRecord()
	rec.Set("name", "Ada")

	path := filepath.Join(t.TempDir(), "input.json")
	if err := ExportJSON(rec, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if string(data) != "{\n  \"name\": \"Ada\"\n}" {
		t.Errorf("file content = %q", data)
	}
}

func TestExportJSONBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "input.json")
	if err := ExportJSON(NewRecord(), path); err == nil {
		t.Error("ExportJSON into a missing directory should fail")
	}
}

func TestRoundTrip(t *testing.T) {
	rec := NewRecord()
	rec.Set("name", "Ada")
	rec.Set("age", "37")
	rec.Set("temperature_c", json.Number("80.0"))
	rec.Set("flow_arrangement", "counter-flow")
	rec.Set("enabled", false)

	data, err := Marshal(rec)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	res, err := ImportDocument(data, rec.Names())
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if !res.Complete() {
		t.Errorf("Missing = %v, want none", res.Missing)
	}
	for _, name := range rec.Names() {
		want, _ := rec.Get(name)
		got, ok := res.Applied.Get(name)
		if !ok {
			t.Errorf("field %q not applied", name)
			continue
		}
		if Stringify(got) != Stringify(want) {
			t.Errorf("field %q = %v, want %v", name, got, want)
		}
	}
}
