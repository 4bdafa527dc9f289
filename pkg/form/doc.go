// Package form connects the JSON export and import in package io to the
// page that hosts a form.
//
// The host page is described by a handful of small collaborator
// interfaces:
//   - [Controls] finds the named inputs whose values an import sets
//   - [Notifier] shows a message to the user
//   - [FileInput] supplies the selected file and is cleared afterwards
//
// [Importer] runs one upload against those collaborators: it reads the
// selected file, parses it, sets every expected field that is present,
// reports the expected fields that are not, and always clears the file
// input. [Exporter] serializes a record and hands it to the user as a
// download named input.json through a short-lived URL from package
// download.
//
// User-facing text comes from [Messages], selected by locale with
// [MessagesFor]; Norwegian and English are built in.
//
// # Example
//
//	f := form.NewForm("name", "age")
//	imp := &form.Importer{
//	    Fields:   []string{"name", "age"},
//	    Controls: f,
//	    Notifier: form.NotifierFunc(func(ctx context.Context, msg string) { fmt.Println(msg) }),
//	    Messages: form.Norwegian,
//	}
//	out, err := imp.Upload(ctx, form.PathInput("input.json"))
package form
