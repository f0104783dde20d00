// Package log builds the diagnostic logger. Diagnostics never go to the
// merged output; the CLI points them at stderr.
package log

import (
	"io"
	"log/slog"
	"strings"

	"github.com/marcinbor85/hexmerge/internal/config"
)

// NewLogger returns a logger writing to w in the configured format and level.
func NewLogger(w io.Writer, cfg config.AppConfig) *slog.Logger {
	return NewLoggerWithFormat(w, cfg.LogFormat(), cfg.LogLevel())
}

// NewLoggerWithFormat returns a logger writing to w.
func NewLoggerWithFormat(w io.Writer, format config.LogFormat, level string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	switch format {
	case config.LogFormatJSON:
		handler = slog.NewJSONHandler(w, opts)
	default:
		handler = newTerminalHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level. Unknown names mean INFO.
func ParseLevel(level string) slog.Level {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return slog.LevelDebug
	case "WARN", "WARNING":
		return slog.LevelWarn
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
