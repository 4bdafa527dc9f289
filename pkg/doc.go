// Package pkg provides the libraries behind formio.
//
// # Overview
//
// formio saves a web form's input values to an input.json file and loads
// such a file back onto the form. The pkg directory is organized as:
//
//  1. [io] - the JSON export and import core (no page runtime)
//  2. [form] - adapters tying the core to controls, alerts and file inputs
//  3. [download] - short-lived download URLs released after use
//  4. [schema] - form definitions and configuration loaded from TOML
//  5. [session], [cache] - storage backends (memory, file, Redis, MongoDB)
//  6. [errors], [observability], [buildinfo] - shared infrastructure
//
// # Data Flow
//
//	schema.Defaults ─→ io.Record ─→ io.Marshal ─→ download.Offer ─→ input.json
//	input.json ─→ io.ImportDocument ─→ form.Importer ─→ controls + alerts
//
// # Quick Start
//
//	rec := io.NewRecord()
//	rec.Set("name", "Ada")
//	rec.Set("age", "37")
//	data, _ := io.Marshal(rec)
//
//	res, err := io.ImportDocument(data, []string{"name", "age", "email"})
//	// res.Missing == []string{"email"}
package pkg
