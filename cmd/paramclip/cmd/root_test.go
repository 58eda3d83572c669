package cmd

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/f3rmion/paramclip/internal/clipboard"
	"github.com/f3rmion/paramclip/internal/config"
	clierrors "github.com/f3rmion/paramclip/internal/errors"
)

// isolate points HOME at an empty directory and clears PARAMCLIP_* so the
// user's own config never leaks into a test.
func isolate(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	for _, kv := range os.Environ() {
		if key, _, ok := strings.Cut(kv, "="); ok && strings.HasPrefix(key, "PARAMCLIP_") {
			t.Setenv(key, "")
			os.Unsetenv(key)
		}
	}
	t.Setenv("PARAMCLIP_LOG_STDERR", "off")
	return home
}

// resetCommands puts every flag of c and its subcommands back to its
// default, so one run's flags do not leak into the next.
func resetCommands(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetCommands(sub)
	}
}

func runCLI(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetCommands(rootCmd)
	appVersion = "test"
	appConfig = nil
	appLogger = slog.Default()
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	closeLog()
	return outBuf.String(), errBuf.String(), err
}

func TestResolve_Plain(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "resolve", "https://example.com/page?content=Hello%20World&text=ignored")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}

	if out != "Hello World" {
		t.Errorf("stdout = %q, want %q", out, "Hello World")
	}
}

func TestResolve_JSON(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "resolve", "--format", "json", "?message=a+b&data=x%26y")
	if err != nil {
		t.Fatalf("resolve error = %v", err)
	}

	var got map[string]any
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("stdout is not JSON: %v\n%s", err, out)
	}

	if got["content"] != "x&y" || got["param"] != "data" {
		t.Errorf("content = %v, param = %v, want x&y from data", got["content"], got["param"])
	}
	if got["characters"] != float64(3) {
		t.Errorf("characters = %v, want 3", got["characters"])
	}
}

func TestResolve_ExitCodes(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "no content", args: []string{"resolve", "https://example.com/?other=1"}, want: clierrors.ExitNoContent},
		{name: "whitespace only", args: []string{"resolve", "?content=%20%20"}, want: clierrors.ExitNoContent},
		{name: "decode error", args: []string{"resolve", "?content=%E0%A4%A"}, want: clierrors.ExitDecode},
		{name: "invalid utf-8", args: []string{"resolve", "?text=%FF%FE&msg=ok"}, want: clierrors.ExitDecode},
		{name: "bad format", args: []string{"resolve", "--format", "xml", "?text=x"}, want: clierrors.ExitUsage},
		{name: "too many args", args: []string{"resolve", "a", "b"}, want: clierrors.ExitUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)

			_, _, err := runCLI(t, tt.args...)
			if err == nil {
				t.Fatal("expected an error")
			}

			if got := handleError(io.Discard, err); got != tt.want {
				t.Errorf("exit code = %d, want %d (err: %v)", got, tt.want, err)
			}
		})
	}
}

func TestResolve_DecodeErrorJSON(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "resolve", "-f", "json", "?text=100%")
	if clierrors.ExitCode(err) != clierrors.ExitDecode {
		t.Fatalf("err = %v, want decode failure", err)
	}

	if !strings.Contains(out, `"error"`) {
		t.Errorf("JSON output lacks error field:\n%s", out)
	}
}

func TestResolve_URLSources(t *testing.T) {
	t.Run("flag", func(t *testing.T) {
		isolate(t)

		out, _, err := runCLI(t, "resolve", "--url", "?msg=from-flag")
		if err != nil || out != "from-flag" {
			t.Errorf("stdout = %q, err = %v", out, err)
		}
	})

	t.Run("env", func(t *testing.T) {
		isolate(t)
		t.Setenv("PARAMCLIP_URL", "https://example.com/?text=from-env")

		out, _, err := runCLI(t, "resolve")
		if err != nil || out != "from-env" {
			t.Errorf("stdout = %q, err = %v", out, err)
		}
	})

	t.Run("argument wins", func(t *testing.T) {
		isolate(t)
		t.Setenv("PARAMCLIP_URL", "?text=from-env")

		out, _, err := runCLI(t, "resolve", "--url", "?text=from-flag", "?text=from-arg")
		if err != nil || out != "from-arg" {
			t.Errorf("stdout = %q, err = %v", out, err)
		}
	})
}

func TestCommands_FlagsResetBetweenRuns(t *testing.T) {
	isolate(t)

	out, _, err := runCLI(t, "resolve", "--format", "json", "--url", "?text=first")
	if err != nil {
		t.Fatalf("first run error = %v", err)
	}
	if !strings.HasPrefix(out, "{") {
		t.Fatalf("first run stdout = %q, want JSON", out)
	}

	out, _, err = runCLI(t, "resolve", "?text=second")
	if err != nil {
		t.Fatalf("second run error = %v", err)
	}
	if out != "second" {
		t.Errorf("second run stdout = %q, want plain %q", out, "second")
	}

	if resolveFormat != "plain" {
		t.Errorf("resolveFormat = %q after plain run", resolveFormat)
	}
}

func TestCommands_Registered(t *testing.T) {
	want := map[string]bool{"resolve": false, "copy": false, "init": false}
	for _, c := range rootCmd.Commands() {
		if _, ok := want[c.Name()]; ok {
			want[c.Name()] = true
		}
	}

	for name, found := range want {
		if !found {
			t.Errorf("subcommand %q not registered on rootCmd", name)
		}
	}
}

func TestInit(t *testing.T) {
	home := isolate(t)
	path := filepath.Join(home, ".config", "paramclip", "config.yaml")

	out, _, err := runCLI(t, "init")
	if err != nil {
		t.Fatalf("init error = %v", err)
	}
	if !strings.Contains(out, path) {
		t.Errorf("stdout = %q, want path %q", out, path)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load(written config) error = %v", err)
	}
	if cfg.Clipboard.Mode != "auto" {
		t.Errorf("Clipboard.Mode = %q, want auto", cfg.Clipboard.Mode)
	}

	_, _, err = runCLI(t, "init")
	if clierrors.ExitCode(err) != clierrors.ExitConfig {
		t.Errorf("second init err = %v, want config error", err)
	}

	if _, _, err := runCLI(t, "init", "--force"); err != nil {
		t.Errorf("init --force error = %v", err)
	}
}

func TestInit_IgnoresBrokenConfig(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("clipboard: [broken\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, _, err := runCLI(t, "--config", path, "init", "--force"); err != nil {
		t.Errorf("init --force over broken config error = %v", err)
	}

	if _, _, err := runCLI(t, "--config", path, "resolve", "?text=x"); err != nil {
		t.Errorf("resolve after init error = %v", err)
	}
}

func TestBrokenConfigFailsCommands(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("clipboard:\n  mode: psychic\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := runCLI(t, "--config", path, "resolve", "?text=x")
	if clierrors.ExitCode(err) != clierrors.ExitConfig {
		t.Errorf("err = %v, want config error", err)
	}
}

func TestInvalidLogFlags(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, "--log-level", "loud", "resolve", "?text=x")
	if clierrors.ExitCode(err) != clierrors.ExitUsage {
		t.Errorf("err = %v, want usage error", err)
	}
}

func TestHandleError(t *testing.T) {
	var buf bytes.Buffer

	code := handleError(&buf, clierrors.NoContent())
	if code != clierrors.ExitNoContent {
		t.Errorf("code = %d, want %d", code, clierrors.ExitNoContent)
	}
	if !strings.Contains(buf.String(), "Hint: Add a parameter") {
		t.Errorf("output lacks hint:\n%s", buf.String())
	}

	buf.Reset()
	if code := handleError(&buf, errors.New(`unknown command "x" for "paramclip"`)); code != clierrors.ExitUsage {
		t.Errorf("unknown command code = %d, want %d", code, clierrors.ExitUsage)
	}

	if code := handleError(io.Discard, errors.New("boom")); code != clierrors.ExitGeneral {
		t.Errorf("plain error code = %d, want %d", code, clierrors.ExitGeneral)
	}
}

func TestLegacySinks(t *testing.T) {
	tests := []struct {
		fallback string
		want     []string
	}{
		{fallback: "auto", want: []string{"command:my-copy", "osc52"}},
		{fallback: "command", want: []string{"command:my-copy"}},
		{fallback: "osc52", want: []string{"osc52"}},
	}

	for _, tt := range tests {
		t.Run(tt.fallback, func(t *testing.T) {
			sinks, err := legacySinks(config.ClipboardConfig{Fallback: tt.fallback, Command: []string{"my-copy"}})
			if err != nil {
				t.Fatalf("legacySinks() error = %v", err)
			}

			var names []string
			for _, s := range sinks {
				names = append(names, s.Name())
			}
			if strings.Join(names, ",") != strings.Join(tt.want, ",") {
				t.Errorf("sinks = %v, want %v", names, tt.want)
			}
		})
	}

	if _, err := legacySinks(config.ClipboardConfig{Fallback: "smoke"}); err == nil {
		t.Error("legacySinks(invalid fallback) error = nil")
	}
}

func TestNewCopier_Mode(t *testing.T) {
	cfg := config.Default()
	cfg.Clipboard.Mode = "legacy"

	copier, err := newCopier(cfg, nil)
	if err != nil {
		t.Fatalf("newCopier() error = %v", err)
	}
	if got := copier.Select().Name(); got != "legacy" {
		t.Errorf("Select() = %q, want legacy", got)
	}

	cfg.Clipboard.Mode = "sideways"
	if _, err := newCopier(cfg, nil); err == nil {
		t.Error("newCopier(invalid mode) error = nil")
	}
}

// TestHelperProcess stands in for a copy command. It is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("PARAMCLIP_HELPER_PROCESS") != "1" {
		return
	}

	data, _ := io.ReadAll(os.Stdin)
	if err := os.WriteFile(os.Getenv("PARAMCLIP_HELPER_OUT"), data, 0o600); err != nil {
		os.Exit(2)
	}
	os.Exit(0)
}

func TestCopy_LegacyCommand(t *testing.T) {
	isolate(t)

	outFile := filepath.Join(t.TempDir(), "clipboard.txt")
	staging := t.TempDir()
	t.Setenv("PARAMCLIP_HELPER_PROCESS", "1")
	t.Setenv("PARAMCLIP_HELPER_OUT", outFile)
	t.Setenv("PARAMCLIP_CLIPBOARD_MODE", "legacy")
	t.Setenv("PARAMCLIP_CLIPBOARD_FALLBACK", "command")
	t.Setenv("PARAMCLIP_CLIPBOARD_COMMAND", os.Args[0]+",-test.run=TestHelperProcess")
	t.Setenv("PARAMCLIP_CLIPBOARD_STAGING_DIR", staging)

	_, stderr, err := runCLI(t, "copy", "https://example.com/?text=caf%C3%A9%20%E2%98%95")
	if err != nil {
		t.Fatalf("copy error = %v", err)
	}

	got, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(got) != "café ☕" {
		t.Errorf("clipboard = %q, want %q", got, "café ☕")
	}

	if !strings.Contains(stderr, "6 characters from ?text") {
		t.Errorf("stderr = %q, want summary", stderr)
	}

	entries, _ := os.ReadDir(staging)
	if len(entries) != 0 {
		t.Errorf("staging dir not cleaned: %v", entries)
	}
}

func TestCopy_Failures(t *testing.T) {
	t.Run("no content", func(t *testing.T) {
		isolate(t)
		_, _, err := runCLI(t, "copy", "?other=1")
		if clierrors.ExitCode(err) != clierrors.ExitNoContent {
			t.Errorf("err = %v, want no content", err)
		}
	})

	t.Run("decode", func(t *testing.T) {
		isolate(t)
		_, _, err := runCLI(t, "copy", "?content=%zz")
		if clierrors.ExitCode(err) != clierrors.ExitDecode {
			t.Errorf("err = %v, want decode failure", err)
		}
	})

	t.Run("no mechanism", func(t *testing.T) {
		isolate(t)
		t.Setenv("PARAMCLIP_CLIPBOARD_MODE", "legacy")
		t.Setenv("PARAMCLIP_CLIPBOARD_FALLBACK", "command")
		t.Setenv("PARAMCLIP_CLIPBOARD_COMMAND", "paramclip-no-such-copy-tool")

		_, _, err := runCLI(t, "copy", "?text=x")
		if clierrors.ExitCode(err) != clierrors.ExitClipboard {
			t.Errorf("err = %v, want clipboard failure", err)
		}
		if !errors.Is(err, clipboard.ErrUnavailable) {
			t.Errorf("err = %v, want ErrUnavailable in chain", err)
		}
	})
}
