// Package server is the web front end of formio.
//
// It renders the configured form, keeps each visitor's values in a
// session, offers them as an input.json download and applies uploaded
// input.json files back onto the form. Alerts raised by an import are
// queued on the session and shown on the next page render.
package server

import (
	"context"
	"embed"
	stderrors "errors"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/formio/pkg/download"
	"github.com/matzehuels/formio/pkg/form"
	"github.com/matzehuels/formio/pkg/schema"
	"github.com/matzehuels/formio/pkg/session"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Defaults for Config fields left unset.
const (
	DefaultMaxUpload     = 1 << 20
	DefaultSweepInterval = 10 * time.Minute
	shutdownTimeout      = 5 * time.Second
)

// Config wires the server's collaborators.
type Config struct {
	Schema     *schema.Schema
	Sessions   session.Store
	Downloads  download.Store
	SessionTTL time.Duration
	MaxUpload  int64
	Logger     *log.Logger
}

// Server serves one form.
type Server struct {
	schema    *schema.Schema
	sessions  session.Store
	downloads download.Store
	ttl       time.Duration
	maxUpload int64
	messages  form.Messages
	logger    *log.Logger
	router    chi.Router
}

// New builds a server. Schema is required; the stores default to
// in-memory ones.
func New(cfg Config) *Server {
	s := &Server{
		schema:    cfg.Schema,
		sessions:  cfg.Sessions,
		downloads: cfg.Downloads,
		ttl:       cfg.SessionTTL,
		maxUpload: cfg.MaxUpload,
		messages:  form.MessagesFor(cfg.Schema.Locale),
		logger:    cfg.Logger,
	}
	if s.sessions == nil {
		s.sessions = session.NewMemoryStore()
	}
	if s.downloads == nil {
		s.downloads = download.NewMemoryStore()
	}
	if s.ttl <= 0 {
		s.ttl = session.DefaultTTL
	}
	if s.maxUpload <= 0 {
		s.maxUpload = DefaultMaxUpload
	}
	if s.logger == nil {
		s.logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleIndex)
	r.Post("/", s.handleSave)
	r.Get("/"+form.DefaultFilename, s.handleExport)
	r.Post("/import", s.handleImport)
	r.Get("/healthz", s.handleHealth)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully. Expired sessions are swept periodically while it runs.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	defer stopSweep()
	go s.sweep(sweepCtx, DefaultSweepInterval)

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr, "form", s.schema.Title)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	s.logger.Info("server stopped")
	return nil
}

func (s *Server) sweep(ctx context.Context, every time.Duration) {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if err := s.sessions.Cleanup(ctx); err != nil {
				s.logger.Warn("session cleanup failed", "err", err)
			}
		}
	}
}
