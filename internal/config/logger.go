package config

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
)

// NewLogger builds the structured logger described by cfg. A disabled
// logger discards everything.
func NewLogger(cfg LoggingConfig) *log.Logger {
	return newLogger(cfg, os.Stderr)
}

func newLogger(cfg LoggingConfig, w io.Writer) *log.Logger {
	if !cfg.Enabled {
		w = io.Discard
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		level = log.InfoLevel
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: cfg.Timestamps,
		Prefix:          cfg.Prefix,
		Level:           level,
	})
}
