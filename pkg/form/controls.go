package form

import (
	"sync"

	jsonio "github.com/matzehuels/formio/pkg/io"
)

// Form is an in-memory page of text controls. Several controls may share
// a name; lookups return them in the order they were added.
type Form struct {
	mu       sync.RWMutex
	controls []*TextControl
}

// NewForm returns a form with one empty control per name.
func NewForm(names ...string) *Form {
	f := &Form{}
	for _, name := range names {
		f.Add(name, "")
	}
	return f
}

// Add appends a control and returns it.
func (f *Form) Add(name, value string) *TextControl {
	c := &TextControl{name: name, value: value}
	f.mu.Lock()
	f.controls = append(f.controls, c)
	f.mu.Unlock()
	return c
}

// Lookup implements [Controls].
func (f *Form) Lookup(name string) []Control {
	f.mu.RLock()
	defer f.mu.RUnlock()

	var out []Control
	for _, c := range f.controls {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Values returns the value of the first control of each name, in page
// order. A record is what the exporter serializes.
func (f *Form) Values() *jsonio.Record {
	f.mu.RLock()
	defer f.mu.RUnlock()

	rec := jsonio.NewRecord()
	for _, c := range f.controls {
		if !rec.Has(c.name) {
			rec.Set(c.name, c.Value())
		}
	}
	return rec
}

// Snapshot returns the value of every control in page order.
func (f *Form) Snapshot() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	out := make([]string, len(f.controls))
	for i, c := range f.controls {
		out[i] = c.Value()
	}
	return out
}

// TextControl is a control holding a string.
type TextControl struct {
	mu    sync.Mutex
	name  string
	value string
}

func (c *TextControl) Name() string { return c.name }

func (c *TextControl) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

func (c *TextControl) SetValue(v string) {
	c.mu.Lock()
	c.value = v
	c.mu.Unlock()
}

// RecordControls exposes the cells of a record as controls. Only names
// already present in the record resolve; setting a value passes it
// through Coerce first when Coerce is set.
type RecordControls struct {
	Record *jsonio.Record
	Coerce func(name, value string) any
}

// Lookup implements [Controls].
func (rc RecordControls) Lookup(name string) []Control {
	if !rc.Record.Has(name) {
		return nil
	}
	return []Control{recordCell{rc: rc, name: name}}
}

type recordCell struct {
	rc   RecordControls
	name string
}

func (c recordCell) Name() string { return c.name }

func (c recordCell) Value() string {
	v, _ := c.rc.Record.Get(c.name)
	return jsonio.Stringify(v)
}

func (c recordCell) SetValue(v string) {
	if c.rc.Coerce != nil {
		c.rc.Record.Set(c.name, c.rc.Coerce(c.name, v))
		return
	}
	c.rc.Record.Set(c.name, v)
}

var (
	_ Controls = (*Form)(nil)
	_ Controls = RecordControls{}
)
