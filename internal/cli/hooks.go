package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/formio/pkg/observability"
)

// logHooks reports observability events to the CLI logger.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnExport(ctx context.Context, fields, size int, err error) {
	if err != nil {
		h.logger.Warn("export failed", "fields", fields, "err", err)
		return
	}
	h.logger.Info("export", "fields", fields, "bytes", size)
}

func (h *logHooks) OnImport(ctx context.Context, file string, applied, missing, unbound int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("import failed", "file", file, "err", err)
		return
	}
	h.logger.Info("import", "file", file, "applied", applied, "missing", missing, "unbound", unbound, "elapsed", d.Round(time.Millisecond))
}

func (h *logHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnResponse(ctx context.Context, method, path string, status int, d time.Duration) {
	if status >= 500 {
		h.logger.Warn("response", "method", method, "path", path, "status", status)
	}
}

var (
	_ observability.FormHooks  = (*logHooks)(nil)
	_ observability.CacheHooks = (*logHooks)(nil)
	_ observability.HTTPHooks  = (*logHooks)(nil)
)
