// Package log provides the structured logger shared by xpense components.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Logger wraps slog.Logger so components can be tagged from a shared base.
type Logger struct {
	*slog.Logger
	base *slog.Logger
}

// Config holds logger configuration.
type Config struct {
	Level     slog.Level
	Component string
	Output    io.Writer
}

// DefaultConfig logs warnings and errors to stderr. Interactive output goes to
// stdout, so anything lower would interleave with the menu.
func DefaultConfig() Config {
	return Config{
		Level:     slog.LevelWarn,
		Component: "xpense",
		Output:    os.Stderr,
	}
}

// New creates a logger from cfg.
func New(cfg Config) *Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: cfg.Level})
	base := slog.New(handler)
	l := base
	if cfg.Component != "" {
		l = base.With("component", cfg.Component)
	}
	return &Logger{Logger: l, base: base}
}

// Discard returns a logger that drops everything. Handy in tests.
func Discard() *Logger {
	l := slog.New(slog.DiscardHandler)
	return &Logger{Logger: l, base: l}
}

// WithComponent returns a child logger tagged with a component name.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{
		Logger: l.base.With("component", component),
		base:   l.base,
	}
}

// ParseLevel maps a config string to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
}

// SetDefault makes logger the process-wide slog default.
func SetDefault(logger *Logger) {
	slog.SetDefault(logger.Logger)
}
