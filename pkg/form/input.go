package form

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// PathFile is a file on disk.
type PathFile string

func (p PathFile) Name() string { return filepath.Base(string(p)) }

func (p PathFile) Open() (io.ReadCloser, error) { return os.Open(string(p)) }

// BytesFile is an in-memory file, such as a multipart upload already read
// into memory.
type BytesFile struct {
	Filename string
	Data     []byte
}

func (b BytesFile) Name() string { return b.Filename }

func (b BytesFile) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b.Data)), nil
}

// Picker is a [FileInput] holding a selection until it is reset.
type Picker struct {
	mu    sync.Mutex
	files []File
	reset int
}

// NewPicker returns a picker with files selected.
func NewPicker(files ...File) *Picker {
	return &Picker{files: files}
}

// PathInput returns a picker with the file at path selected. An empty
// path selects nothing.
func PathInput(path string) *Picker {
	if path == "" {
		return NewPicker()
	}
	return NewPicker(PathFile(path))
}

// Select replaces the selection.
func (p *Picker) Select(files ...File) {
	p.mu.Lock()
	p.files = files
	p.mu.Unlock()
}

func (p *Picker) Files() []File {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]File(nil), p.files...)
}

func (p *Picker) Reset() {
	p.mu.Lock()
	p.files = nil
	p.reset++
	p.mu.Unlock()
}

// Resets returns how many times the picker has been cleared.
func (p *Picker) Resets() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reset
}

var _ FileInput = (*Picker)(nil)
