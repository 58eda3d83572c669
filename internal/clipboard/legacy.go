package clipboard

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

const stagingPattern = "paramclip-*.txt"

// Sink receives the staged clipboard content.
type Sink interface {
	Name() string
	Available() bool
	// Send consumes r, which is positioned at the start of the staged text.
	Send(ctx context.Context, r io.Reader) error
}

// Legacy stages text in a temporary file, selects the whole file and
// passes it to the first available sink. The staging file is removed on
// every return path.
type Legacy struct {
	// Dir is where the staging file is created. Empty means os.TempDir.
	Dir   string
	Sinks []Sink
}

// Name implements Backend.
func (l *Legacy) Name() string {
	return "legacy"
}

// Available reports whether any sink can be used.
func (l *Legacy) Available() bool {
	return l.sink() != nil
}

// Write implements Backend.
func (l *Legacy) Write(ctx context.Context, text string) (err error) {
	sink := l.sink()
	if sink == nil {
		return fmt.Errorf("%w: no legacy copy mechanism found", ErrUnavailable)
	}

	staging, err := os.CreateTemp(l.Dir, stagingPattern)
	if err != nil {
		return fmt.Errorf("%w: creating staging file: %w", ErrUnavailable, err)
	}
	defer func() {
		_ = staging.Close()
		if rmErr := os.Remove(staging.Name()); rmErr != nil && err == nil {
			err = fmt.Errorf("removing staging file: %w", rmErr)
		}
	}()

	if _, err := io.WriteString(staging, text); err != nil {
		return fmt.Errorf("%w: writing staging file: %w", ErrUnavailable, err)
	}

	if _, err := staging.Seek(0, io.SeekStart); err != nil {
		return fmt.Errorf("%w: selecting staged text: %w", ErrUnavailable, err)
	}

	if err := sink.Send(ctx, staging); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrUnavailable, sink.Name(), err)
	}

	return nil
}

func (l *Legacy) sink() Sink {
	for _, s := range l.Sinks {
		if s != nil && s.Available() {
			return s
		}
	}
	return nil
}

// CommandSink pipes the staged text into a copy command.
type CommandSink struct {
	Argv []string
	// Env is appended to the current environment.
	Env []string

	lookPath func(string) (string, error)
}

// NewCommandSink returns a sink for argv. A nil or empty argv yields a
// sink that is never available.
func NewCommandSink(argv []string) *CommandSink {
	return &CommandSink{Argv: argv, lookPath: exec.LookPath}
}

// Name implements Sink.
func (s *CommandSink) Name() string {
	if len(s.Argv) == 0 {
		return "command"
	}
	return "command:" + s.Argv[0]
}

// Available reports whether the command exists.
func (s *CommandSink) Available() bool {
	if len(s.Argv) == 0 {
		return false
	}

	lookPath := s.lookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}
	_, err := lookPath(s.Argv[0])
	return err == nil
}

// Send implements Sink.
func (s *CommandSink) Send(ctx context.Context, r io.Reader) error {
	cmd := exec.CommandContext(ctx, s.Argv[0], s.Argv[1:]...)
	cmd.Stdin = r
	if len(s.Env) > 0 {
		cmd.Env = append(os.Environ(), s.Env...)
	}

	out, err := cmd.CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}

// DetectCommand returns the copy command for goos, or nil when none of the
// known tools is installed.
func DetectCommand(goos string, getenv func(string) string, lookPath func(string) (string, error)) []string {
	has := func(name string) bool {
		_, err := lookPath(name)
		return err == nil
	}

	switch goos {
	case "darwin":
		if has("pbcopy") {
			return []string{"pbcopy"}
		}
		return nil
	case "windows":
		return []string{"cmd", "/c", "clip"}
	}

	// Try wl-copy under Wayland, then xclip, then xsel
	if getenv("WAYLAND_DISPLAY") != "" && has("wl-copy") {
		return []string{"wl-copy"}
	}
	if has("xclip") {
		return []string{"xclip", "-selection", "clipboard"}
	}
	if has("xsel") {
		return []string{"xsel", "--clipboard", "--input"}
	}
	return nil
}

// OSC52Sink asks the terminal emulator to set the clipboard with an OSC 52
// escape sequence.
type OSC52Sink struct {
	Out io.Writer
	// Terminal reports whether Out is attached to a terminal.
	Terminal bool

	getenv func(string) string
}

// NewOSC52Sink returns a sink writing to f.
func NewOSC52Sink(f *os.File) *OSC52Sink {
	return &OSC52Sink{
		Out:      f,
		Terminal: term.IsTerminal(int(f.Fd())),
		getenv:   os.Getenv,
	}
}

// Name implements Sink.
func (s *OSC52Sink) Name() string {
	return "osc52"
}

// Available implements Sink.
func (s *OSC52Sink) Available() bool {
	return s.Out != nil && s.Terminal
}

// Send implements Sink.
func (s *OSC52Sink) Send(_ context.Context, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("reading staged text: %w", err)
	}

	seq := osc52.New(string(data))

	getenv := s.getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	switch {
	case getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(getenv("TERM"), "screen"):
		seq = seq.Screen()
	}

	if _, err := seq.WriteTo(s.Out); err != nil {
		return fmt.Errorf("writing osc52 sequence: %w", err)
	}
	return nil
}
