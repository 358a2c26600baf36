// Package logging builds the slog loggers used by the installer. Messages
// go to the console and, once the log root is known, to the installer's log
// file as well.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/afero"
)

// Level is an alias for slog.Level for convenience.
type Level = slog.Level

// Level constants matching slog levels.
const (
	LevelDebug = slog.LevelDebug
	LevelInfo  = slog.LevelInfo
	LevelWarn  = slog.LevelWarn
	LevelError = slog.LevelError
)

// ParseLevel parses a level name, case-insensitively. Unknown names are
// LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// New returns a text logger writing to w at the given level.
// A nil writer means stdout.
func New(level Level, w io.Writer) *slog.Logger {
	if w == nil {
		w = os.Stdout
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Setup builds a logger with New and makes it the slog default.
func Setup(level Level, w io.Writer) *slog.Logger {
	logger := New(level, w)
	slog.SetDefault(logger)
	return logger
}

// SetupTee opens path for appending on fs and returns a default logger
// writing to both console and the file. The returned closer releases the
// file.
func SetupTee(fs afero.Fs, level Level, console io.Writer, path string) (*slog.Logger, io.Closer, error) {
	f, err := fs.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, nil, err
	}
	if console == nil {
		console = os.Stdout
	}
	return Setup(level, io.MultiWriter(console, f)), f, nil
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
