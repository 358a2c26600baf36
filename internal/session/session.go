// Package session performs the one-time setup shared by every command:
// locating the system root, reading the configuration, resolving the log
// layout and opening the installer's log.
package session

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/munichmade/javasvc/internal/config"
	"github.com/munichmade/javasvc/internal/logging"
	"github.com/munichmade/javasvc/internal/paths"
)

// Options configure New. Zero values pick the process defaults.
type Options struct {
	// Dir overrides the system root. Defaults to the working directory.
	Dir string

	LogLevel logging.Level

	// Fs defaults to the operating system filesystem.
	Fs afero.Fs

	// Console receives log output next to the log file. Defaults to stdout.
	Console io.Writer

	// Formatter defaults to the host separator.
	Formatter *paths.Formatter
}

// Session is the state resolved once per invocation and shared by the
// collaborators of a command.
type Session struct {
	Fs     afero.Fs
	Layout *paths.Layout
	Config *config.Accessor
	Logger *slog.Logger

	closer io.Closer
}

// New resolves the system root, loads the configuration and starts
// logging to the console and the installer log.
func New(opts Options) (*Session, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	console := opts.Console
	if console == nil {
		console = os.Stdout
	}
	format := paths.Native()
	if opts.Formatter != nil {
		format = *opts.Formatter
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("determine working directory: %w", err)
		}
		dir = wd
	}
	// The service runs from the system directory, so every path handed to
	// the wrapper must be absolute.
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve system root %s: %w", dir, err)
	}
	dir = abs

	reader, err := config.Load(fs, dir)
	if err != nil {
		return nil, err
	}

	// The log root depends on the configuration, so the log file can only
	// be opened once it has been read.
	root := config.NewAccessor(reader, logging.Discard()).Root()
	layout := paths.Resolve(dir, root, format)

	logger, closer, err := logging.SetupTee(fs, opts.LogLevel, console, layout.InstallerLog)
	if err != nil {
		return nil, fmt.Errorf("open installer log %s: %w", layout.InstallerLog, err)
	}

	logger.Debug("session started",
		"system_root", layout.SystemRoot,
		"log_root", layout.LogRoot,
		"root_mode", root)

	return &Session{
		Fs:     fs,
		Layout: layout,
		Config: config.NewAccessor(reader, logger),
		Logger: logger,
		closer: closer,
	}, nil
}

// Close releases the installer log.
func (s *Session) Close() error {
	if s == nil || s.closer == nil {
		return nil
	}
	err := s.closer.Close()
	s.closer = nil
	if errors.Is(err, os.ErrClosed) {
		return nil
	}
	return err
}
