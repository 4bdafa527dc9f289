package io

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestImportDocumentScenario(t *testing.T) {
	raw := []byte(`{"name":"Ada","age":"37"}`)

	res, err := ImportDocument(raw, []string{"name", "age", "email"})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}

	if got := res.Applied.Strings(); !reflect.DeepEqual(got, map[string]string{"name": "Ada", "age": "37"}) {
		t.Errorf("Applied = %v", got)
	}
	if !reflect.DeepEqual(res.Missing, []string{"email"}) {
		t.Errorf("Missing = %v, want [email]", res.Missing)
	}
	if res.Complete() {
		t.Error("Complete() = true, want false")
	}
}

func TestImportDocumentByteOrderMark(t *testing.T) {
	raw := []byte("\xef\xbb\xbf{\"name\":\"Ada\",\"age\":\"37\"}")

	res, err := ImportDocument(raw, []string{"name", "age"})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if got := res.Applied.Strings(); !reflect.DeepEqual(got, map[string]string{"name": "Ada", "age": "37"}) {
		t.Errorf("Applied = %v", got)
	}
	if !res.Complete() {
		t.Errorf("Missing = %v, want none", res.Missing)
	}

	if _, err := ParseDocument([]byte("\xef\xbb\xbf")); err == nil {
		t.Error("ParseDocument(BOM only) succeeded, want error")
	}
}

func TestImportDocumentMissingIsSetDifference(t *testing.T) {
	expected := []string{"a", "b", "c", "d"}

	tests := []struct {
		name    string
		raw     string
		missing []string
	}{
		{"all present", `{"a":1,"b":2,"c":3,"d":4}`, nil},
		{"all present reordered", `{"d":4,"c":3,"b":2,"a":1}`, nil},
		{"one missing", `{"a":1,"b":2,"d":4}`, []string{"c"}},
		{"one missing reordered", `{"d":4,"a":1,"b":2}`, []string{"c"}},
		{"two missing", `{"c":3,"b":2}`, []string{"a", "d"}},
		{"none present", `{}`, []string{"a", "b", "c", "d"}},
		{"only extras", `{"x":1,"y":2}`, []string{"a", "b", "c", "d"}},
		{"null counts as present", `{"a":null,"b":"","c":false,"d":0}`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ImportDocument([]byte(tt.raw), expected)
			if err != nil {
				t.Fatalf("ImportDocument: %v", err)
			}
			if !reflect.DeepEqual(res.Missing, tt.missing) {
				t.Errorf("Missing = %v, want %v", res.Missing, tt.missing)
			}
			if res.Applied.Len()+len(res.Missing) != len(expected) {
				t.Errorf("applied %d + missing %d != expected %d", res.Applied.Len(), len(res.Missing), len(expected))
			}
		})
	}
}

func TestImportDocumentIgnoresExtraKeys(t *testing.T) {
	res, err := ImportDocument([]byte(`{"name":"Ada","unused":"x"}`), []string{"name"})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if res.Applied.Has("unused") {
		t.Error("extra key should not be applied")
	}
	if got := res.Applied.Names(); !reflect.DeepEqual(got, []string{"name"}) {
		t.Errorf("Applied names = %v", got)
	}
}

func TestImportDocumentAppliedInExpectedOrder(t *testing.T) {
	res, err := ImportDocument([]byte(`{"b":"2","a":"1"}`), []string{"a", "b"})
	if err != nil {
		t.Fatalf("ImportDocument: %v", err)
	}
	if got := res.Applied.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Applied names = %v, want [a b]", got)
	}
}

func TestImportDocumentMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"not json", "not valid json"},
		{"empty", ""},
		{"whitespace", "   \n"},
		{"truncated", `{"name":"Ada"`},
		{"trailing comma", `{"name":"Ada",}`},
		{"trailing data", `{"name":"Ada"} extra`},
		{"two objects", `{} {}`},
		{"array", `["name"]`},
		{"string", `"name"`},
		{"number", `42`},
		{"null", `null`},
		{"single quotes", `{'name':'Ada'}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ImportDocument([]byte(tt.raw), []string{"name"})
			if err == nil {
				t.Fatalf("ImportDocument(%q) succeeded, want error", tt.raw)
			}
			if res != nil {
				t.Errorf("ImportDocument(%q) returned a result alongside the error", tt.raw)
			}
			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Errorf("error %v is not a *ParseError", err)
			}
			if !strings.HasPrefix(err.Error(), "parse JSON: ") {
				t.Errorf("error text = %q", err.Error())
			}
		})
	}
}

func TestImportDocumentIdempotent(t *testing.T) {
	raw := []byte(`{"name":"Ada","age":37}`)
	expected := []string{"name", "age", "email"}

	first, err := ImportDocument(raw, expected)
	if err != nil {
		t.Fatalf("first import: %v", err)
	}
	second, err := ImportDocument(raw, expected)
	if err != nil {
		t.Fatalf("second import: %v", err)
	}
	if !reflect.DeepEqual(first.Applied.Strings(), second.Applied.Strings()) {
		t.Errorf("applied values differ: %v vs %v", first.Applied.Strings(), second.Applied.Strings())
	}
	if !reflect.DeepEqual(first.Missing, second.Missing) {
		t.Errorf("missing differs: %v vs %v", first.Missing, second.Missing)
	}
}

func TestParseDocumentDuplicateKeys(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"a":"first","b":"x","a":"last"}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if got := doc.Names(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("Names() = %v, want [a b]", got)
	}
	if v, _ := doc.Get("a"); v != "last" {
		t.Errorf("a = %v, want last", v)
	}
}

func TestParseDocumentKeepsNumberText(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"p":101325,"t":0.0005,"big":12345678901234567890}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	want := map[string]string{"p": "101325", "t": "0.0005", "big": "12345678901234567890"}
	if got := doc.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
}

func TestStringifyKeepsNumberSpelling(t *testing.T) {
	doc, err := ParseDocument([]byte(`{"a":37.0,"b":1e2,"c":-0}`))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	want := map[string]string{"a": "37.0", "b": "1e2", "c": "-0"}
	if got := doc.Strings(); !reflect.DeepEqual(got, want) {
		t.Errorf("Strings() = %v, want %v", got, want)
	}
}

func TestReadDocument(t *testing.T) {
	res, err := ReadDocument(strings.NewReader(`{"x": "1"}`), []string{"x", "y"})
	if err != nil {
		t.Fatalf("ReadDocument: %v", err)
	}
	if !reflect.DeepEqual(res.Missing, []string{"y"}) {
		t.Errorf("Missing = %v", res.Missing)
	}
}

func TestImportJSON(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.json")
	if err := os.WriteFile(path, []byte("{\n  \"name\": \"Ada\"\n}"), 0o644); err != nil {
		t.Fatal(err)
	}

	res, err := ImportJSON(path, []string{"name"})
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	if v, _ := res.Applied.Get("name"); v != "Ada" {
		t.Errorf("name = %v", v)
	}

	if _, err := ImportJSON(filepath.Join(dir, "nope.json"), []string{"name"}); err == nil {
		t.Error("ImportJSON on a missing file should fail")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ImportJSON(bad, []string{"name"})
	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Errorf("ImportJSON(bad) error = %v, want *ParseError", err)
	}
}
