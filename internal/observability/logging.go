// Package observability builds the structured logger used across paramclip.
package observability

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the logger configuration, usually the log section of the
// config file with flag overrides applied.
type Config struct {
	Level   string // error, warn, info, debug; empty means warn
	Format  string // text, json
	File    string
	Stderr  string // auto, on, off
	TUI     bool   // the alternate screen owns the terminal
	Session string
	Command string
	Version string
}

// NewLogger creates the logger and a cleanup that closes the log file, if
// one was opened. With no sink enabled records are discarded.
func NewLogger(cfg Config) (*slog.Logger, func() error, error) {
	level := slog.LevelWarn
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, nil, fmt.Errorf("invalid log level: %q (allowed: error, warn, info, debug)", cfg.Level)
		}
	}

	var toStderr bool
	switch strings.ToLower(cfg.Stderr) {
	case "", "auto":
		toStderr = !cfg.TUI
	case "on":
		toStderr = true
	case "off":
	default:
		return nil, nil, fmt.Errorf("invalid log stderr value %q (allowed: auto, on, off)", cfg.Stderr)
	}

	format := strings.ToLower(cfg.Format)
	if format != "" && format != "text" && format != "json" {
		return nil, nil, fmt.Errorf("invalid log format: %q (allowed: text, json)", cfg.Format)
	}

	var sinks []io.Writer
	if toStderr {
		sinks = append(sinks, os.Stderr)
	}

	cleanup := func() error { return nil }
	if cfg.File != "" {
		f, err := openLogFile(cfg.File)
		if err != nil {
			return nil, nil, err
		}
		sinks = append(sinks, f)
		cleanup = f.Close
	}

	var sink io.Writer = io.Discard
	if len(sinks) > 0 {
		sink = io.MultiWriter(sinks...)
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler = slog.NewTextHandler(sink, opts)
	if format == "json" {
		handler = slog.NewJSONHandler(sink, opts)
	}

	logger := slog.New(handler).With(
		slog.String("session.id", cfg.Session),
		slog.String("command.path", cfg.Command),
		slog.String("version", cfg.Version),
	)
	return logger, cleanup, nil
}

func openLogFile(path string) (*os.File, error) {
	path = filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create log file directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
