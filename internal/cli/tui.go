package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/formio/pkg/download"
	"github.com/matzehuels/formio/pkg/form"
	jsonio "github.com/matzehuels/formio/pkg/io"
	"github.com/matzehuels/formio/pkg/schema"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
	statusStyle       = lipgloss.NewStyle().Foreground(colorYellow)
)

// =============================================================================
// EditorModel - Interactive form editor
// =============================================================================

// EditorModel is the bubbletea model for editing a form's values.
type EditorModel struct {
	Schema  *schema.Schema
	Values  *jsonio.Record
	Cursor  int
	Output  string
	Input   string
	Status  []string
	Saved   bool
	Quitted bool

	ctx    context.Context
	logger *log.Logger
}

// NewEditorModel creates an editor over values. Ctrl+S exports to output;
// Ctrl+O imports from input.
func NewEditorModel(ctx context.Context, s *schema.Schema, values *jsonio.Record, output, input string, logger *log.Logger) EditorModel {
	return EditorModel{
		Schema: s,
		Values: values,
		Output: output,
		Input:  input,
		ctx:    ctx,
		logger: logger,
	}
}

func (m EditorModel) Init() tea.Cmd {
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Schema.Fields) == 0 {
		return m, nil
	}

	field := m.Schema.Fields[m.Cursor]
	switch key.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.Quitted = true
		return m, tea.Quit
	case tea.KeyUp, tea.KeyShiftTab:
		if m.Cursor > 0 {
			m.Cursor--
		}
	case tea.KeyDown, tea.KeyTab, tea.KeyEnter:
		if m.Cursor < len(m.Schema.Fields)-1 {
			m.Cursor++
		}
	case tea.KeyCtrlS:
		m.export()
	case tea.KeyCtrlO:
		m.load()
	case tea.KeyBackspace:
		if field.Kind == schema.KindText || field.Kind == schema.KindNumber {
			text := m.text(field.Name)
			if text != "" {
				r := []rune(text)
				m.set(field, string(r[:len(r)-1]))
			}
		}
	case tea.KeySpace:
		switch field.Kind {
		case schema.KindCheckbox:
			m.set(field, fmt.Sprint(m.text(field.Name) != "true"))
		case schema.KindText:
			m.set(field, m.text(field.Name)+" ")
		}
	case tea.KeyLeft, tea.KeyRight:
		if field.Kind == schema.KindSelect {
			m.set(field, cycle(field.Options, m.text(field.Name), key.Type == tea.KeyRight))
		}
	case tea.KeyRunes:
		if field.Kind == schema.KindText || field.Kind == schema.KindNumber {
			m.set(field, m.text(field.Name)+string(key.Runes))
		}
	}
	return m, nil
}

func (m *EditorModel) text(name string) string {
	v, _ := m.Values.Get(name)
	return jsonio.Stringify(v)
}

func (m *EditorModel) set(f schema.Field, text string) {
	m.Values.Set(f.Name, f.Coerce(text))
	m.Saved = false
}

// cycle returns the option after (or before) current.
func cycle(options []string, current string, forward bool) string {
	if len(options) == 0 {
		return current
	}
	i := slices.Index(options, current)
	switch {
	case i < 0:
		i = 0
	case forward:
		i = (i + 1) % len(options)
	default:
		i = (i - 1 + len(options)) % len(options)
	}
	return options[i]
}

func (m *EditorModel) export() {
	store := download.NewMemoryStore()
	exp := &form.Exporter{Store: store, Logger: m.logger}
	err := exp.Export(m.ctx, m.Values, func(ctx context.Context, url string) error {
		blob, err := store.Open(ctx, url)
		if err != nil {
			return err
		}
		return writeFileAtomic(m.Output, blob.Data)
	})
	if err != nil {
		m.Status = []string{err.Error()}
		return
	}
	m.Saved = true
	m.Status = []string{"Saved " + m.Output}
}

func (m *EditorModel) load() {
	m.Status = nil
	imp := &form.Importer{
		Fields:        m.Schema.Names(),
		Controls:      form.RecordControls{Record: m.Values, Coerce: m.Schema.Coerce},
		Notifier:      form.NotifierFunc(func(ctx context.Context, msg string) { m.Status = append(m.Status, msg) }),
		Messages:      form.MessagesFor(m.Schema.Locale),
		ReportUnbound: m.Schema.ReportUnbound,
		Logger:        m.logger,
	}
	out, err := imp.Upload(m.ctx, form.PathInput(m.Input))
	if err == nil && len(m.Status) == 0 && !out.Skipped {
		m.Status = []string{"Loaded " + m.Input}
	}
}

func (m EditorModel) View() string {
	var b strings.Builder

	title := m.Schema.Title
	if title == "" {
		title = "Edit Form"
	}
	b.WriteString(StyleTitle.Render(title))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  type to edit  space toggle  ←/→ choose  ctrl+s save  ctrl+o load  esc quit"))
	b.WriteString("\n\n")

	width := 0
	for _, f := range m.Schema.Fields {
		width = max(width, lipgloss.Width(f.Label()))
	}
	labelStyle := lipgloss.NewStyle().Width(width + 2)

	for i, f := range m.Schema.Fields {
		cursor := "  "
		style := listNormalStyle
		if i == m.Cursor {
			cursor = "▸ "
			style = listSelectedStyle
		}
		value := m.text(f.Name)
		switch f.Kind {
		case schema.KindCheckbox:
			value = "[ ]"
			if m.text(f.Name) == "true" {
				value = "[x]"
			}
		case schema.KindSelect:
			value = "‹ " + value + " ›"
		}
		b.WriteString(cursor + labelStyle.Render(f.Label()) + style.Render(value))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	for _, s := range m.Status {
		b.WriteString(statusStyle.Render(s))
		b.WriteString("\n")
	}
	return b.String()
}
