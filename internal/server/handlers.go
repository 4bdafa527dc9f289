package server

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/matzehuels/formio/pkg/form"
	jsonio "github.com/matzehuels/formio/pkg/io"
	"github.com/matzehuels/formio/pkg/schema"
	"github.com/matzehuels/formio/pkg/session"
)

type pageData struct {
	Title    string
	Filename string
	Rows     []row
	Alerts   []string
}

type row struct {
	Name    string
	Label   string
	Kind    schema.Kind
	Value   string
	Checked bool
	Step    string
	Options []option
}

type option struct {
	Value    string
	Selected bool
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.fail(w, "load session", err)
		return
	}

	data := pageData{
		Title:    s.schema.Title,
		Filename: form.DefaultFilename,
		Rows:     s.rows(sess.Values),
		Alerts:   sess.TakeFlash(),
	}
	if err := s.saveSession(r, sess); err != nil {
		s.fail(w, "save session", err)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Error("render page", "err", err)
	}
}

func (s *Server) rows(values *jsonio.Record) []row {
	rows := make([]row, 0, len(s.schema.Fields))
	for _, f := range s.schema.Fields {
		v, _ := values.Get(f.Name)
		text := jsonio.Stringify(v)
		rw := row{Name: f.Name, Label: f.Label(), Kind: f.Kind, Value: text}
		switch f.Kind {
		case schema.KindNumber:
			rw.Step = numberStep(text)
		case schema.KindCheckbox:
			rw.Checked = f.Coerce(text) == true
		case schema.KindSelect:
			for _, o := range f.Options {
				rw.Options = append(rw.Options, option{Value: o, Selected: o == text})
			}
		}
		rows = append(rows, rw)
	}
	return rows
}

// numberStep is a tenth of the value's magnitude, or 0.1 for zero and
// non-numbers.
func numberStep(text string) string {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil || v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return "0.1"
	}
	return strconv.FormatFloat(math.Abs(v)*0.1, 'g', 6, 64)
}

func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form submission", http.StatusBadRequest)
		return
	}

	sess, err := s.loadSession(w, r)
	if err != nil {
		s.fail(w, "load session", err)
		return
	}
	for _, f := range s.schema.Fields {
		switch {
		case f.Kind == schema.KindCheckbox:
			sess.Values.Set(f.Name, r.PostForm.Has(f.Name))
		case r.PostForm.Has(f.Name):
			sess.Values.Set(f.Name, f.Coerce(r.PostForm.Get(f.Name)))
		}
	}
	if err := s.saveSession(r, sess); err != nil {
		s.fail(w, "save session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.fail(w, "load session", err)
		return
	}

	exp := &form.Exporter{Store: s.downloads, Logger: s.logger}
	err = exp.Export(r.Context(), sess.Values, func(ctx context.Context, url string) error {
		blob, err := s.downloads.Open(ctx, url)
		if err != nil {
			return err
		}
		w.Header().Set("Content-Type", blob.ContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", blob.Name))
		w.Header().Set("Content-Length", strconv.Itoa(len(blob.Data)))
		w.Header().Set("Cache-Control", "no-store")
		_, err = w.Write(blob.Data)
		return err
	})
	if err != nil {
		s.logger.Error("export", "session", sess.ID, "err", err)
		if w.Header().Get("Content-Disposition") == "" {
			http.Error(w, "export failed", http.StatusInternalServerError)
		}
	}
}

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	sess, err := s.loadSession(w, r)
	if err != nil {
		s.fail(w, "load session", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUpload)
	input := &uploadInput{field: "file"}
	if err := r.ParseMultipartForm(s.maxUpload); err != nil {
		s.logger.Warn("upload rejected", "session", sess.ID, "err", err)
		sess.AddFlash(s.messages.ReadFailed(err))
	} else {
		input.form = r.MultipartForm
		s.apply(r.Context(), sess, input)
	}

	if err := s.saveSession(r, sess); err != nil {
		s.fail(w, "save session", err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// apply runs the importer against the session's values. Alerts become
// flash messages. On a failed read or parse the values are left as they
// were.
func (s *Server) apply(ctx context.Context, sess *session.Session, input form.FileInput) {
	imp := &form.Importer{
		Fields:        s.schema.Names(),
		Controls:      form.RecordControls{Record: sess.Values, Coerce: s.schema.Coerce},
		Notifier:      form.NotifierFunc(func(ctx context.Context, msg string) { sess.AddFlash(msg) }),
		Messages:      s.messages,
		ReportUnbound: s.schema.ReportUnbound,
		Logger:        s.logger.With("session", sess.ID),
	}
	if _, err := imp.Upload(ctx, input); err != nil {
		s.logger.Warn("import failed", "session", sess.ID, "err", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

func (s *Server) fail(w http.ResponseWriter, what string, err error) {
	s.logger.Error(what, "err", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

