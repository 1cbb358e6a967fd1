package tri

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for tri, its backends and hosts.
// By default tri produces no log output. Pass nil to restore the silent
// default.
//
// The logger is also handed to the WebGPU HAL so adapter and driver
// diagnostics end up in the same place.
//
// Log levels used by tri:
//   - [slog.LevelDebug]: resource creation and release
//   - [slog.LevelInfo]: lifecycle transitions, key bindings, adapter choice
//   - [slog.LevelWarn]: texture fallback, release errors
//
// Example:
//
//	tri.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	hal.SetLogger(l)
}

// Logger returns the current logger. Backends and hosts call this to
// share one configuration without import cycles.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
