package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formio/pkg/errors"
	"github.com/matzehuels/formio/pkg/form"
	jsonio "github.com/matzehuels/formio/pkg/io"
	"github.com/matzehuels/formio/pkg/schema"
)

// warnNotifier prints importer alerts as warnings.
var warnNotifier = form.NotifierFunc(func(ctx context.Context, msg string) {
	printWarning("%s", msg)
})

// newImporter returns an importer that applies files to rec.
func newImporter(s *schema.Schema, rec *jsonio.Record, logger *log.Logger) *form.Importer {
	return &form.Importer{
		Fields:        s.Names(),
		Controls:      form.RecordControls{Record: rec, Coerce: s.Coerce},
		Notifier:      warnNotifier,
		Messages:      form.MessagesFor(s.Locale),
		ReportUnbound: s.ReportUnbound,
		Logger:        logger,
	}
}

// buildRecord starts from the schema defaults, applies the file at from
// (if any) and then each name=value assignment.
func buildRecord(ctx context.Context, s *schema.Schema, from string, sets []string, logger *log.Logger) (*jsonio.Record, error) {
	rec := s.Defaults()

	if from != "" {
		if _, err := newImporter(s, rec, logger).Upload(ctx, form.PathInput(from)); err != nil {
			return nil, err
		}
	}

	for _, assignment := range sets {
		name, value, ok := strings.Cut(assignment, "=")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--set %q: expected name=value", assignment)
		}
		name = strings.TrimSpace(name)
		if _, known := s.Field(name); !known {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--set %q: unknown field %q", assignment, name)
		}
		rec.Set(name, s.Coerce(name, value))
	}
	return rec, nil
}

// valueRows renders rec as name/value table rows in schema order.
func valueRows(s *schema.Schema, rec *jsonio.Record) [][]string {
	rows := make([][]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		v, _ := rec.Get(f.Name)
		rows = append(rows, []string{f.Name, jsonio.Stringify(v)})
	}
	return rows
}
