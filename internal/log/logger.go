// Package log provides a thin slog wrapper that stamps every record
// with the emitting component, so api and worker logs interleave
// legibly in one stream.
package log

import (
	"log/slog"
	"os"
)

// Component names used across the binaries.
const (
	ComponentAPI      = "api"
	ComponentReminder = "reminder-worker"
	ComponentSync     = "sync-worker"
)

// Logger carries a component attribute on every record.
type Logger struct {
	*slog.Logger
	component string
}

// New creates a text logger writing to stdout at the given level.
func New(component string, level slog.Level) *Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return &Logger{
		Logger:    slog.New(handler).With("component", component),
		component: component,
	}
}

// With returns a logger carrying additional attributes.
func (l *Logger) With(args ...any) *Logger {
	return &Logger{
		Logger:    l.Logger.With(args...),
		component: l.component,
	}
}

// Component returns the logger's component name.
func (l *Logger) Component() string {
	return l.component
}

// SetDefault installs the logger as the process-wide slog default, so
// packages logging through slog.InfoContext pick up the component too.
func SetDefault(l *Logger) {
	slog.SetDefault(l.Logger)
}
