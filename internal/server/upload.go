package server

import (
	"io"
	"mime/multipart"

	"github.com/matzehuels/formio/pkg/form"
)

// uploadFile is the file part of a multipart upload.
type uploadFile struct {
	header *multipart.FileHeader
}

func (f uploadFile) Name() string { return f.header.Filename }

func (f uploadFile) Open() (io.ReadCloser, error) { return f.header.Open() }

// uploadInput is the request's file field. Reset drops the parsed form
// and any temporary files backing it.
type uploadInput struct {
	form  *multipart.Form
	field string
}

func (in *uploadInput) Files() []form.File {
	if in.form == nil {
		return nil
	}
	headers := in.form.File[in.field]
	files := make([]form.File, 0, len(headers))
	for _, h := range headers {
		files = append(files, uploadFile{header: h})
	}
	return files
}

func (in *uploadInput) Reset() {
	if in.form != nil {
		in.form.RemoveAll()
		in.form = nil
	}
}

var _ form.FileInput = (*uploadInput)(nil)
