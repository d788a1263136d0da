// Package logging builds the slog loggers used for diagnostic output.
// Logging is purely observational here: failures always surface as error
// values, never only as log lines.
package logging

import (
	"io"
	"log/slog"
	"os"
)

// Format selects the log output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Config holds logger construction options.
type Config struct {
	// Level is the minimum level to emit.
	Level slog.Level

	// Format is the output format, text by default.
	Format Format

	// Output receives the log lines. Defaults to os.Stderr.
	Output io.Writer
}

// New creates a logger from the configuration.
func New(cfg Config) *slog.Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stderr
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}

	var handler slog.Handler
	if cfg.Format == FormatJSON {
		handler = slog.NewJSONHandler(cfg.Output, opts)
	} else {
		handler = slog.NewTextHandler(cfg.Output, opts)
	}
	return slog.New(handler)
}

// Nop returns a logger that discards everything. Sandboxes use it when no
// logger is configured.
func Nop() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ParseLevel parses a level name. Unrecognized names fall back to info.
func ParseLevel(s string) slog.Level {
	switch s {
	case "debug", "DEBUG":
		return slog.LevelDebug
	case "warn", "WARN":
		return slog.LevelWarn
	case "error", "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
