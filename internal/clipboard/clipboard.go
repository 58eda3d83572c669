// Package clipboard writes text to the system clipboard.
//
// A Copier chooses between two backends on every call. Modern talks to the
// platform clipboard directly and is preferred whenever its capability
// probe passes. Legacy stages the text in a temporary file and hands it to
// a selection-style sink (a copy command or an OSC 52 terminal sequence).
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"
)

var (
	// ErrUnavailable means no usable copy mechanism exists.
	ErrUnavailable = errors.New("clipboard unavailable")
	// ErrPermissionDenied means the clipboard rejected the write.
	ErrPermissionDenied = errors.New("clipboard permission denied")
)

// Backend is one way of writing to the clipboard.
type Backend interface {
	// Name identifies the backend in logs and errors.
	Name() string
	// Available probes whether the backend can be used right now.
	Available() bool
	// Write places text on the clipboard.
	Write(ctx context.Context, text string) error
}

// CopyError is returned by Copier.Copy when a backend fails.
type CopyError struct {
	Backend string
	Err     error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("copy via %s: %v", e.Backend, e.Err)
}

func (e *CopyError) Unwrap() error {
	return e.Err
}

// Mode selects how a Copier picks its backend.
type Mode string

const (
	// ModeAuto uses Modern when available, otherwise Legacy.
	ModeAuto Mode = "auto"
	// ModeModern always uses Modern.
	ModeModern Mode = "modern"
	// ModeLegacy always uses Legacy.
	ModeLegacy Mode = "legacy"
)

// ParseMode validates a mode string. The empty string means ModeAuto.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModeAuto:
		return ModeAuto, nil
	case ModeModern:
		return ModeModern, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("invalid clipboard mode: %q (allowed: auto, modern, legacy)", s)
	}
}

// Copier copies text using the best available backend.
type Copier struct {
	mode   Mode
	modern Backend
	legacy Backend
	logger *slog.Logger
}

// Option configures a Copier.
type Option func(*Copier)

// WithMode forces a backend selection mode.
func WithMode(mode Mode) Option {
	return func(c *Copier) {
		c.mode = mode
	}
}

// WithLogger sets the logger used for backend selection and outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Copier) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCopier creates a Copier. Either backend may be nil.
func NewCopier(modern, legacy Backend, opts ...Option) *Copier {
	c := &Copier{
		mode:   ModeAuto,
		modern: modern,
		legacy: legacy,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Select returns the backend the next Copy would use, or nil.
func (c *Copier) Select() Backend {
	switch c.mode {
	case ModeModern:
		return c.modern
	case ModeLegacy:
		return c.legacy
	}

	if c.modern != nil && c.modern.Available() {
		return c.modern
	}
	return c.legacy
}

// Copy writes content to the clipboard. Empty content is a no-op.
// Failures are reported as *CopyError wrapping ErrUnavailable or
// ErrPermissionDenied.
func (c *Copier) Copy(ctx context.Context, content string) error {
	if content == "" {
		return nil
	}

	backend := c.Select()
	if backend == nil {
		c.logger.Warn("no clipboard backend configured", "mode", string(c.mode))
		return &CopyError{Backend: "none", Err: ErrUnavailable}
	}

	if !backend.Available() {
		c.logger.Warn("clipboard backend unavailable", "backend", backend.Name(), "mode", string(c.mode))
		return &CopyError{Backend: backend.Name(), Err: ErrUnavailable}
	}

	if err := backend.Write(ctx, content); err != nil {
		c.logger.Warn("clipboard write failed", "backend", backend.Name(), "error", err)
		return &CopyError{Backend: backend.Name(), Err: err}
	}

	c.logger.Debug("clipboard write succeeded",
		"backend", backend.Name(),
		"chars", utf8.RuneCountInString(content),
	)
	return nil
}
