// Package io provides JSON import and export of form input values.
//
// # Overview
//
// A form's logical input is a flat, ordered mapping from field name to a
// scalar value, represented by [Record]. This package turns a Record into a
// downloadable JSON document and turns a previously exported document back
// into values for a known list of field names. It knows nothing about pages,
// controls, downloads or alerts: those belong to the adapters in
// [github.com/matzehuels/formio/pkg/form].
//
// # JSON Format
//
// The payload is a single top-level JSON object:
//
//	{
//	  "name": "Ada",
//	  "age": "37"
//	}
//
// Keys are field names, values are strings, numbers, booleans or null. There
// is no envelope, no version marker and no checksum. Exported documents use
// 2-space indentation and keep the record's key order; imported documents may
// use any formatting and any key order.
//
// # Export
//
// Use [Marshal] for the bytes of a download, [WriteJSON] to write to any
// io.Writer, or [ExportJSON] to write a file:
//
//	data, err := io.Marshal(rec)
//
// A nil or empty record exports as {}.
//
// # Import
//
// Use [ImportDocument] on raw bytes, [ReadDocument] on an io.Reader, or
// [ImportJSON] on a file path. Each takes the list of expected field names
// and returns a [Result]:
//
//	res, err := io.ImportDocument(raw, []string{"name", "age", "email"})
//	if err != nil {
//	    // *ParseError: nothing may be applied
//	}
//	for _, name := range res.Applied.Names() { ... }
//	if len(res.Missing) > 0 { ... }
//
// Keys in the document that are not expected are ignored. Expected names
// absent from the document are listed in Result.Missing in the order they
// were expected. Parsing is all-or-nothing: malformed input yields a
// [*ParseError] and no Result.
//
// # Concurrency
//
// All functions are safe for concurrent use. A Record is not safe for
// concurrent mutation.
package io
