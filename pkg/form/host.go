package form

import (
	"context"
	"io"
)

// Control is a named input whose value can be read and replaced.
type Control interface {
	Name() string
	Value() string
	SetValue(v string)
}

// Controls looks up the controls registered under a name, in page order.
// An import writes to the first one only.
type Controls interface {
	Lookup(name string) []Control
}

// Notifier shows a message to the user.
type Notifier interface {
	Alert(ctx context.Context, msg string)
}

// NotifierFunc adapts a function to [Notifier].
type NotifierFunc func(ctx context.Context, msg string)

// Alert calls f(ctx, msg).
func (f NotifierFunc) Alert(ctx context.Context, msg string) { f(ctx, msg) }

// File is a user-selected file.
type File interface {
	Name() string
	Open() (io.ReadCloser, error)
}

// FileInput is a file picker. Files returns the current selection, which
// may be empty; Reset clears it so the same file can be picked again.
type FileInput interface {
	Files() []File
	Reset()
}
