package io

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// ParseError reports input that is not a single valid JSON object.
type ParseError struct {
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse JSON: " + e.Err.Error()
}

// Unwrap returns the underlying decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Result is the outcome of matching an imported document against the
// expected field names.
type Result struct {
	// Applied holds the expected names present in the document, in the
	// order they were expected, with the document's values.
	Applied *Record

	// Missing lists the expected names absent from the document.
	Missing []string
}

// Complete reports whether every expected name was present.
func (r *Result) Complete() bool {
	return len(r.Missing) == 0
}

var utf8BOM = []byte("\xef\xbb\xbf")

// ParseDocument decodes raw as a single JSON object.
//
// Numbers are kept as json.Number so their text survives a round trip.
// Duplicate keys keep their first position and their last value. Empty
// input, a non-object top-level value, or trailing data after the object
// are reported as a [*ParseError]. A leading UTF-8 byte order mark is
// skipped.
func ParseDocument(raw []byte) (*Record, error) {
	raw = bytes.TrimPrefix(raw, utf8BOM)
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, &ParseError{Err: eofToUnexpected(err)}
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return nil, &ParseError{Err: fmt.Errorf("top-level value must be an object, got %s", describeToken(tok))}
	}

	rec := NewRecord()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, &ParseError{Err: eofToUnexpected(err)}
		}
		name, ok := tok.(string)
		if !ok {
			return nil, &ParseError{Err: fmt.Errorf("object key must be a string, got %s", describeToken(tok))}
		}
		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, &ParseError{Err: eofToUnexpected(err)}
		}
		rec.Set(name, v)
	}
	if _, err := dec.Token(); err != nil {
		return nil, &ParseError{Err: eofToUnexpected(err)}
	}
	if tok, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = fmt.Errorf("unexpected %s after top-level value", describeToken(tok))
		}
		return nil, &ParseError{Err: err}
	}
	return rec, nil
}

// Apply matches doc against the expected field names.
// It never fails: absent names go to Result.Missing.
func Apply(doc *Record, expected []string) *Result {
	res := &Result{Applied: NewRecord()}
	for _, name := range expected {
		if v, ok := doc.Get(name); ok {
			res.Applied.Set(name, v)
			continue
		}
		res.Missing = append(res.Missing, name)
	}
	return res
}

// ImportDocument parses raw and matches it against expected.
// A parse failure returns a [*ParseError] and no Result.
func ImportDocument(raw []byte, expected []string) (*Result, error) {
	doc, err := ParseDocument(raw)
	if err != nil {
		return nil, err
	}
	return Apply(doc, expected), nil
}

// ReadDocument reads all of r and imports it with [ImportDocument].
// ReadDocument does not close r.
func ReadDocument(r io.Reader, expected []string) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return ImportDocument(raw, expected)
}

// ImportJSON reads a JSON file at path and imports it with [ReadDocument].
// The error wraps the underlying cause with the file path for context.
func ImportJSON(path string, expected []string) (*Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	res, err := ReadDocument(f, expected)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}

func eofToUnexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		return fmt.Sprintf("%q", string(t))
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case bool:
		return "boolean"
	case nil:
		return "null"
	}
	return fmt.Sprintf("%T", tok)
}
