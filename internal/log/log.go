// Package log builds the structured loggers used across keychord.
// Records carry a "cat" attribute naming the subsystem that wrote them.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Category groups related log messages.
type Category string

const (
	CatKeymap  Category = "keymap"  // Keymap loading and resolution
	CatInput   Category = "input"   // Handler and chord state
	CatConfig  Category = "config"  // Settings and keymap files
	CatWatcher Category = "watcher" // File watcher events
	CatCLI     Category = "cli"     // Command line front end
)

// ParseLevel resolves "debug", "info", "warn" or "error".
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// Format is the encoding of log records.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// ParseFormat resolves "text" or "json". Empty means text.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return f, nil
	}
	return FormatText, fmt.Errorf("invalid log format %q", s)
}

// NewFormat returns a logger writing to w in format f at level.
func NewFormat(w io.Writer, f Format, level slog.Level) *slog.Logger {
	if f == FormatJSON {
		return NewJSON(w, level)
	}
	return New(w, level)
}

// New returns a text logger writing to w at level.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// NewJSON returns a JSON logger writing to w at level.
func NewJSON(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}))
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// Open returns a logger in format f appending to the file at path. The
// returned function closes the file.
func Open(path string, f Format, level slog.Level) (*slog.Logger, func(), error) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}
	return NewFormat(file, f, level), func() { _ = file.Close() }, nil
}

// For returns a child logger tagged with category c.
func For(l *slog.Logger, c Category) *slog.Logger {
	if l == nil {
		l = Discard()
	}
	return l.With("cat", string(c))
}
