package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/formio/pkg/schema"
)

func editorSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s := &schema.Schema{
		Title:  "Varmeveksler",
		Locale: "nb",
		Fields: []schema.Field{
			{Name: "plates", Kind: schema.KindNumber, Default: int64(30)},
			{Name: "cleaned", Kind: schema.KindCheckbox},
			{Name: "flow", Kind: schema.KindSelect, Options: []string{"counter", "parallel"}},
			{Name: "note"},
		},
	}
	if err := s.Validate(); err != nil {
		t.Fatal(err)
	}
	return s
}

func newTestEditor(t *testing.T) EditorModel {
	t.Helper()
	s := editorSchema(t)
	out := filepath.Join(t.TempDir(), "input.json")
	return NewEditorModel(context.Background(), s, s.Defaults(), out, out, nil)
}

func press(m EditorModel, keys ...tea.KeyMsg) EditorModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(EditorModel)
	}
	return m
}

func key(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

func TestEditorEditsValues(t *testing.T) {
	m := newTestEditor(t)

	m = press(m, key(tea.KeyBackspace), runes("5"))
	if got := m.text("plates"); got != "35" {
		t.Errorf("plates = %q, want 35", got)
	}

	m = press(m, key(tea.KeyDown), key(tea.KeySpace))
	if got := m.text("cleaned"); got != "true" {
		t.Errorf("cleaned = %q, want true", got)
	}

	m = press(m, key(tea.KeyDown), key(tea.KeyRight))
	if got := m.text("flow"); got != "parallel" {
		t.Errorf("flow = %q, want parallel", got)
	}
	m = press(m, key(tea.KeyRight))
	if got := m.text("flow"); got != "counter" {
		t.Errorf("flow = %q, want counter after wrapping", got)
	}

	m = press(m, key(tea.KeyDown), runes("hei"), key(tea.KeySpace), runes("du"))
	if got := m.text("note"); got != "hei du" {
		t.Errorf("note = %q", got)
	}

	m = press(m, key(tea.KeyDown))
	if m.Cursor != 3 {
		t.Errorf("Cursor = %d, want to stay on the last field", m.Cursor)
	}
}

func TestEditorSaveAndLoad(t *testing.T) {
	m := newTestEditor(t)
	m = press(m, runes("0"), key(tea.KeyCtrlS))

	if !m.Saved {
		t.Fatalf("not saved, status = %v", m.Status)
	}
	data, err := os.ReadFile(m.Output)
	if err != nil {
		t.Fatal(err)
	}
	want := "{\n  \"plates\": 300,\n  \"cleaned\": false,\n  \"flow\": \"counter\",\n  \"note\": \"\"\n}"
	if string(data) != want {
		t.Errorf("saved =\n%s\nwant\n%s", data, want)
	}

	if err := os.WriteFile(m.Input, []byte(`{"plates": 12, "flow": "parallel"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	m = press(m, key(tea.KeyCtrlO))
	if got := m.text("plates"); got != "12" {
		t.Errorf("plates = %q after load", got)
	}
	if got := m.text("flow"); got != "parallel" {
		t.Errorf("flow = %q after load", got)
	}
	if len(m.Status) != 1 || m.Status[0] != "Følgende felter mangler i filen: cleaned, note" {
		t.Errorf("status = %q", m.Status)
	}
	if !strings.Contains(m.View(), "Følgende felter mangler") {
		t.Error("view should show the alert")
	}
}

func TestEditorLoadMalformed(t *testing.T) {
	m := newTestEditor(t)
	if err := os.WriteFile(m.Input, []byte("not valid json"), 0o644); err != nil {
		t.Fatal(err)
	}
	m = press(m, key(tea.KeyCtrlO))

	if got := m.text("plates"); got != "30" {
		t.Errorf("plates = %q, want unchanged 30", got)
	}
	if len(m.Status) != 1 || !strings.HasPrefix(m.Status[0], "Kunne ikke lese JSON: ") {
		t.Errorf("status = %q", m.Status)
	}
}

func TestEditorView(t *testing.T) {
	m := newTestEditor(t)
	view := m.View()
	for _, want := range []string{"Varmeveksler", "plates", "30", "[ ]", "‹ counter ›", "ctrl+s"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEditorQuit(t *testing.T) {
	m := newTestEditor(t)
	next, cmd := m.Update(key(tea.KeyEsc))
	if !next.(EditorModel).Quitted || cmd == nil {
		t.Error("esc should quit")
	}
}

func TestCycle(t *testing.T) {
	opts := []string{"a", "b", "c"}
	tests := []struct {
		current string
		forward bool
		want    string
	}{
		{"a", true, "b"},
		{"c", true, "a"},
		{"a", false, "c"},
		{"", true, "a"},
	}
	for _, tt := range tests {
		if got := cycle(opts, tt.current, tt.forward); got != tt.want {
			t.Errorf("cycle(%q, %v) = %q, want %q", tt.current, tt.forward, got, tt.want)
		}
	}
}
