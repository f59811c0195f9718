// Package logger holds the process-wide structured logger used by pxkit.
package logger

import (
	"io"
	"log/slog"
)

// L is the global logger instance. It's initialized to discard all output by default.
// Call Init() to enable logging.
var L *slog.Logger = discard()

// Options configures the logger initialization.
type Options struct {
	Enabled bool         // If false, all logging is discarded
	Handler slog.Handler // Handler to install. Default: text handler on Writer
	Writer  io.Writer    // Destination for the default handler
	Level   slog.Leveler // Minimum log level for the default handler. Default: LevelInfo
}

// Init configures logging. Call from main() before any log calls.
// If opts.Enabled is false, all log output is discarded.
func Init(opts Options) {
	if !opts.Enabled {
		L = discard()
		return
	}
	h := opts.Handler
	if h == nil {
		w := opts.Writer
		if w == nil {
			w = io.Discard
		}
		level := opts.Level
		if level == nil {
			level = slog.LevelInfo
		}
		h = slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	}
	L = slog.New(h)
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
