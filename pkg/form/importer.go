package form

import (
	"context"
	stderrors "errors"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formio/pkg/errors"
	jsonio "github.com/matzehuels/formio/pkg/io"
	"github.com/matzehuels/formio/pkg/observability"
)

// Importer applies an uploaded JSON file to a page's controls.
type Importer struct {
	// Fields is the list of names an import checks for.
	Fields []string

	// Controls resolves names to inputs.
	Controls Controls

	// Notifier shows alerts. A nil Notifier drops them.
	Notifier Notifier

	// Messages formats alerts. Unset formatters use Norwegian.
	Messages Messages

	// ReportUnbound also alerts about fields present in the file that
	// have no control on the page. They are always logged.
	ReportUnbound bool

	Logger *log.Logger
}

// Outcome describes one Upload.
type Outcome struct {
	// Skipped is set when no file was selected.
	Skipped bool

	// File is the name of the file that was read.
	File string

	// Applied lists the fields whose control was set, in field order.
	Applied []string

	// Missing lists the expected fields absent from the file.
	Missing []string

	// Unbound lists the fields present in the file with no control.
	Unbound []string
}

// UnboundError returns an UNBOUND_FIELD error naming the unbound fields,
// or nil when every field found a control.
func (o *Outcome) UnboundError() error {
	if len(o.Unbound) == 0 {
		return nil
	}
	return errors.New(errors.ErrCodeUnboundField, "no control for %s", strings.Join(o.Unbound, ", "))
}

// Upload reads the first file selected in input and applies it.
//
// With nothing selected Upload does nothing and returns an Outcome with
// Skipped set. Otherwise the input is reset before Upload returns,
// whatever happened. A file that cannot be read or parsed is reported
// through the Notifier and returned as an error with code FILE_READ or
// INVALID_JSON; no control is touched in that case. Missing and unbound
// fields are reported but are not errors.
func (im *Importer) Upload(ctx context.Context, input FileInput) (*Outcome, error) {
	logger := im.logger()

	files := input.Files()
	if len(files) == 0 {
		logger.Debug("no file selected")
		return &Outcome{Skipped: true}, nil
	}
	defer input.Reset()

	file := files[0]
	out := &Outcome{File: file.Name()}
	start := time.Now()

	err := im.apply(ctx, file, out)
	observability.Form().OnImport(ctx, out.File, len(out.Applied), len(out.Missing), len(out.Unbound), time.Since(start), err)
	if err != nil {
		return out, err
	}
	logger.Info("imported", "file", out.File, "applied", len(out.Applied), "missing", len(out.Missing))
	return out, nil
}

func (im *Importer) apply(ctx context.Context, file File, out *Outcome) error {
	logger := im.logger()
	msgs := im.Messages.withDefaults()

	raw, err := readFile(ctx, file)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		logger.Error("read failed", "file", out.File, "err", err)
		im.alert(ctx, msgs.ReadFailed(err))
		return errors.Wrap(errors.ErrCodeFileRead, err, "read %s", out.File)
	}

	res, err := jsonio.ImportDocument(raw, im.Fields)
	if err != nil {
		logger.Error("parse failed", "file", out.File, "err", err)
		var perr *jsonio.ParseError
		if stderrors.As(err, &perr) {
			im.alert(ctx, msgs.ParseFailed(perr.Err))
		} else {
			im.alert(ctx, msgs.ParseFailed(err))
		}
		return errors.Wrap(errors.ErrCodeInvalidJSON, err, "import %s", out.File)
	}

	for _, name := range res.Applied.Names() {
		v, _ := res.Applied.Get(name)
		var controls []Control
		if im.Controls != nil {
			controls = im.Controls.Lookup(name)
		}
		if len(controls) == 0 {
			out.Unbound = append(out.Unbound, name)
			continue
		}
		controls[0].SetValue(jsonio.Stringify(v))
		logger.Debug("set field", "field", name, "value", v)
		out.Applied = append(out.Applied, name)
	}
	out.Missing = res.Missing
	if err := out.UnboundError(); err != nil {
		logger.Warn("fields not applied", "file", out.File, "err", err)
	}

	if len(out.Missing) > 0 {
		im.alert(ctx, msgs.MissingFields(out.Missing))
	}
	if im.ReportUnbound && len(out.Unbound) > 0 {
		im.alert(ctx, msgs.UnboundFields(out.Unbound))
	}
	return nil
}

func readFile(ctx context.Context, file File) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rc, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return raw, nil
}

func (im *Importer) alert(ctx context.Context, msg string) {
	if im.Notifier != nil {
		im.Notifier.Alert(ctx, msg)
	}
}

func (im *Importer) logger() *log.Logger {
	if im.Logger == nil {
		return discard
	}
	return im.Logger
}
