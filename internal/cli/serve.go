package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/formio/internal/server"
	"github.com/matzehuels/formio/pkg/cache"
	"github.com/matzehuels/formio/pkg/download"
	"github.com/matzehuels/formio/pkg/observability"
	"github.com/matzehuels/formio/pkg/schema"
	"github.com/matzehuels/formio/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the form in a browser",
		Long: `Serve the form over HTTP.

Visitors get their own values, kept in the configured session store. The
page offers the values as an input.json download and accepts an uploaded
input.json to fill the form.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig(cmd)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides the config)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg *schema.Config) error {
	logger := loggerFromContext(ctx)

	b, err := openBackends(ctx, &cfg.Server, logger)
	if err != nil {
		return err
	}
	defer b.close(logger)

	hooks := &logHooks{logger: logger}
	observability.SetFormHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	srv := server.New(server.Config{
		Schema:     &cfg.Form,
		Sessions:   b.sessions,
		Downloads:  b.downloads,
		SessionTTL: cfg.Server.SessionTTL.Duration,
		MaxUpload:  cfg.Server.MaxUpload,
		Logger:     logger,
	})

	printKeyValue("Form", cfg.Form.Title)
	printKeyValue("Fields", fmt.Sprint(len(cfg.Form.Fields)))
	printKeyValue("Sessions", cfg.Server.SessionStore)
	printKeyValue("Downloads", cfg.Server.DownloadStore)
	printInfo("Listening on %s", StyleLink.Render(listenURL(cfg.Server.Addr)))

	return srv.ListenAndServe(ctx, cfg.Server.Addr)
}

func listenURL(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "http://localhost" + addr
	}
	return "http://" + addr
}

// backends holds the stores the server runs on.
type backends struct {
	sessions  session.Store
	downloads download.Store
	closers   []func() error
}

func (b *backends) close(logger *log.Logger) {
	for i := len(b.closers) - 1; i >= 0; i-- {
		if err := b.closers[i](); err != nil {
			logger.Warn("close backend", "err", err)
		}
	}
}

// openBackends connects the session and download stores named in cfg.
// Redis is dialled once and shared when both stores use it.
func openBackends(ctx context.Context, cfg *schema.Server, logger *log.Logger) (_ *backends, err error) {
	b := &backends{}
	defer func() {
		if err != nil {
			b.close(logger)
		}
	}()

	dir := cfg.DataDir
	if dir == "" && (cfg.SessionStore == schema.BackendFile || cfg.DownloadStore == schema.BackendFile) {
		if dir, err = dataDir(); err != nil {
			return nil, fmt.Errorf("get data dir: %w", err)
		}
	}

	var rc *cache.RedisCache
	if cfg.SessionStore == schema.BackendRedis || cfg.DownloadStore == schema.BackendRedis {
		spin := newSpinnerWithContext(ctx, "Connecting to Redis at "+cfg.RedisAddr)
		spin.Start()
		rc, err = cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
			Prefix:   "formio:",
		})
		if err != nil {
			spin.StopWithError("Redis unavailable")
			return nil, err
		}
		spin.StopWithSuccess("Connected to Redis")
		b.closers = append(b.closers, rc.Close)
	}

	switch cfg.DownloadStore {
	case schema.BackendFile:
		fc, err := cache.NewFileCache(filepath.Join(dir, "downloads"))
		if err != nil {
			return nil, err
		}
		b.downloads = download.NewCacheStore(fc, download.DefaultTTL)
	case schema.BackendRedis:
		b.downloads = download.NewCacheStore(rc, download.DefaultTTL)
	default:
		b.downloads = download.NewMemoryStore()
	}

	switch cfg.SessionStore {
	case schema.BackendFile:
		fs, err := session.NewFileStore(filepath.Join(dir, "sessions"))
		if err != nil {
			return nil, err
		}
		b.sessions = fs
	case schema.BackendRedis:
		// The client is closed through rc.
		b.sessions = session.NewRedisStore(rc.Client(), "formio:session:")
	case schema.BackendMongo:
		spin := newSpinnerWithContext(ctx, "Connecting to MongoDB")
		spin.Start()
		ms, err := session.NewMongoStore(ctx, session.MongoConfig{
			URI:      cfg.MongoURI,
			Database: cfg.MongoDatabase,
		})
		if err != nil {
			spin.StopWithError("MongoDB unavailable")
			return nil, err
		}
		spin.StopWithSuccess("Connected to MongoDB")
		b.sessions = ms
		b.closers = append(b.closers, ms.Close)
	default:
		b.sessions = session.NewMemoryStore()
	}

	logger.Debug("backends ready", "sessions", cfg.SessionStore, "downloads", cfg.DownloadStore, "dir", dir)
	return b, nil
}
