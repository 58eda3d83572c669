package cmd

import (
	"log/slog"
	"os"
	"os/exec"
	"runtime"

	"github.com/f3rmion/paramclip/internal/clipboard"
	"github.com/f3rmion/paramclip/internal/config"
)

// newCopier assembles the clipboard backends described by cfg.
func newCopier(cfg *config.Config, logger *slog.Logger) (*clipboard.Copier, error) {
	mode, err := clipboard.ParseMode(cfg.Clipboard.Mode)
	if err != nil {
		return nil, err
	}

	sinks, err := legacySinks(cfg.Clipboard)
	if err != nil {
		return nil, err
	}

	legacy := &clipboard.Legacy{
		Dir:   cfg.Clipboard.StagingDir,
		Sinks: sinks,
	}

	return clipboard.NewCopier(clipboard.NewModern(), legacy,
		clipboard.WithMode(mode),
		clipboard.WithLogger(logger),
	), nil
}

// legacySinks orders the selection sinks by the fallback setting. The
// OSC 52 sink writes to stderr so it never mixes with command output.
func legacySinks(cc config.ClipboardConfig) ([]clipboard.Sink, error) {
	fallback, err := config.ParseFallback(cc.Fallback)
	if err != nil {
		return nil, err
	}

	argv := cc.Command
	if len(argv) == 0 {
		argv = clipboard.DetectCommand(runtime.GOOS, os.Getenv, exec.LookPath)
	}
	command := clipboard.NewCommandSink(argv)
	osc := clipboard.NewOSC52Sink(os.Stderr)

	switch fallback {
	case config.FallbackCommand:
		return []clipboard.Sink{command}, nil
	case config.FallbackOSC52:
		return []clipboard.Sink{osc}, nil
	default:
		return []clipboard.Sink{command, osc}, nil
	}
}
