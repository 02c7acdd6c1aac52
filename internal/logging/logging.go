// Package logging builds the charm loggers used by the CLI and the SSH server.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// New returns a leveled logger writing to w. An empty level means info.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl := log.InfoLevel
	if level != "" {
		parsed, err := log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("logging: %w", err)
		}
		lvl = parsed
	}

	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// Open returns a logger for the given file. With no file the logger writes
// to fallback, or discards everything if fallback is nil; the interactive
// game uses that so log lines never land on the alt screen.
// The returned close function is never nil.
func Open(file, level, prefix string, fallback io.Writer) (*log.Logger, func() error, error) {
	nop := func() error { return nil }

	if file == "" {
		if fallback == nil {
			fallback = io.Discard
		}
		logger, err := New(fallback, level, prefix)
		return logger, nop, err
	}

	if err := os.MkdirAll(filepath.Dir(file), 0o755); err != nil {
		return nil, nop, fmt.Errorf("logging: cannot create directory for %s: %w", file, err)
	}
	f, err := os.OpenFile(file, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nop, fmt.Errorf("logging: cannot open %s: %w", file, err)
	}

	logger, err := New(f, level, prefix)
	if err != nil {
		f.Close()
		return nil, nop, err
	}
	return logger, f.Close, nil
}
