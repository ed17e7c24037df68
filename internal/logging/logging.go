package logging

import (
	"io"
	"log/slog"
	"strings"
)

// New creates a logger writing to w. color enables lipgloss styling and
// should be tied to a TTY check (isatty) at the call site, never
// inferred here.
func New(w io.Writer, level slog.Level, color bool) *slog.Logger {
	return slog.New(NewHandler(w, &slog.HandlerOptions{Level: level}, color))
}

// NewJSON creates a logger using slog's built-in JSON handler, for
// `--json` runs where log lines must not interleave with structured
// stdout.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// LevelFromString converts a config/flag string to a slog.Level,
// defaulting to Info for unrecognized values.
func LevelFromString(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LevelFromVerbosity converts imp-refactor's -v/--verbose count into a
// slog.Level: 0 verbose flags is warn (the CLI default), 1 is info, 2+
// is debug.
func LevelFromVerbosity(verbosity int) slog.Level {
	switch {
	case verbosity <= 0:
		return slog.LevelWarn
	case verbosity == 1:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}
