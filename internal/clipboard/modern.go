package clipboard

import (
	"context"
	"fmt"
	"os"
	"runtime"

	gopassclip "github.com/gopasspw/clipboard"
)

// Modern writes to the platform clipboard through gopasspw/clipboard.
type Modern struct {
	goos        string
	getenv      func(string) string
	unsupported func() bool
	write       func(ctx context.Context, data []byte) error
}

// NewModern returns the platform clipboard backend.
func NewModern() *Modern {
	return &Modern{
		goos:        runtime.GOOS,
		getenv:      os.Getenv,
		unsupported: gopassclip.IsUnsupported,
		write:       gopassclip.WriteAll,
	}
}

// Name implements Backend.
func (m *Modern) Name() string {
	return "modern"
}

// Available reports whether the platform clipboard is reachable. On
// desktop Unix this requires a graphical session; a plain SSH or console
// login fails the probe and callers fall back to Legacy.
func (m *Modern) Available() bool {
	if m.unsupported() {
		return false
	}

	switch m.goos {
	case "darwin", "windows":
		return true
	default:
		return m.getenv("WAYLAND_DISPLAY") != "" || m.getenv("DISPLAY") != ""
	}
}

// Write implements Backend.
func (m *Modern) Write(ctx context.Context, text string) error {
	if err := m.write(ctx, []byte(text)); err != nil {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return nil
}
