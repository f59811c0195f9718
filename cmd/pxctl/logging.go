package main

import (
	"log/slog"
	"os"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"

	"github.com/pxtools/pxkit/internal/logger"
)

// setupLogging installs a tinted stderr handler as the library logger.
// --verbose lowers the level to debug whatever the config says.
func setupLogging(c Config) error {
	level, err := c.level()
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}
	h := tint.NewHandler(colorable.NewColorable(os.Stderr), &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05.000",
		NoColor:    noColor || !isatty.IsTerminal(os.Stderr.Fd()),
	})
	logger.Init(logger.Options{Enabled: true, Handler: h})
	return nil
}
