package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// SetupLogger builds the process logger and installs it as the slog default.
// format is "json" or "text"; anything else falls back to text.
func SetupLogger(level string, format ...string) *slog.Logger {
	return newLogger(os.Stdout, level, format...)
}

func newLogger(w io.Writer, level string, format ...string) *slog.Logger {
	options := &slog.HandlerOptions{Level: ParseLevel(level)}

	var handler slog.Handler
	if len(format) > 0 && strings.EqualFold(format[0], "json") {
		handler = slog.NewJSONHandler(w, options)
	} else {
		handler = slog.NewTextHandler(w, options)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
