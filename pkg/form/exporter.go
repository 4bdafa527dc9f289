package form

import (
	"context"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formio/pkg/download"
	"github.com/matzehuels/formio/pkg/errors"
	jsonio "github.com/matzehuels/formio/pkg/io"
	"github.com/matzehuels/formio/pkg/observability"
)

// DefaultFilename is the name an export is saved under.
const DefaultFilename = "input.json"

// ContentType is the media type of an export.
const ContentType = "application/json"

var discard = log.NewWithOptions(io.Discard, log.Options{})

// Exporter offers a record as a JSON download.
type Exporter struct {
	// Store hands out the download URL. Nil uses a fresh in-memory store.
	Store download.Store

	// Filename defaults to input.json.
	Filename string

	Logger *log.Logger
}

// Blob serializes rec into the download blob without offering it.
// Filename must be a plain basename.
func (e *Exporter) Blob(rec *jsonio.Record) (download.Blob, error) {
	if err := errors.ValidateDownloadName(e.filename()); err != nil {
		return download.Blob{}, err
	}
	data, err := jsonio.Marshal(rec)
	if err != nil {
		return download.Blob{}, err
	}
	return download.Blob{Name: e.filename(), ContentType: ContentType, Data: data}, nil
}

// Export serializes rec, acquires a URL for it, and passes the URL to
// deliver. The URL is revoked before Export returns.
func (e *Exporter) Export(ctx context.Context, rec *jsonio.Record, deliver download.Deliver) error {
	logger := e.Logger
	if logger == nil {
		logger = discard
	}

	blob, err := e.Blob(rec)
	if err != nil {
		observability.Form().OnExport(ctx, rec.Len(), 0, err)
		return err
	}

	store := e.Store
	if store == nil {
		store = download.NewMemoryStore()
	}
	err = download.Offer(ctx, store, blob, deliver)
	observability.Form().OnExport(ctx, rec.Len(), len(blob.Data), err)
	if err != nil {
		logger.Error("export failed", "file", blob.Name, "err", err)
		return err
	}
	logger.Debug("exported", "file", blob.Name, "fields", rec.Len(), "bytes", len(blob.Data))
	return nil
}

func (e *Exporter) filename() string {
	if e.Filename == "" {
		return DefaultFilename
	}
	return e.Filename
}
