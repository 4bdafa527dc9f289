package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Indent is the per-level indentation of exported documents.
const Indent = "  "

// Marshal encodes rec as a pretty-printed JSON object.
// The output keeps the record's key order, is indented with [Indent], and
// has no trailing newline. A nil or empty record encodes as {}.
func Marshal(rec *Record) ([]byte, error) {
	compact, err := rec.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode: %w", err)
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", Indent); err != nil {
		return nil, fmt.Errorf("indent: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteJSON encodes rec as JSON and writes it to w.
// The output can be re-imported with [ReadDocument] for round-trip processing.
func WriteJSON(rec *Record, w io.Writer) error {
	data, err := Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// ExportJSON writes rec to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(rec *Record, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(rec, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
