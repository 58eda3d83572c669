// Package cmd contains all CLI commands for paramclip.
package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/f3rmion/paramclip/internal/config"
	clierrors "github.com/f3rmion/paramclip/internal/errors"
	"github.com/f3rmion/paramclip/internal/observability"
	"github.com/f3rmion/paramclip/internal/params"
	"github.com/f3rmion/paramclip/internal/state"
	"github.com/f3rmion/paramclip/internal/tui"
)

var (
	cfgFile   string
	noColor   bool
	logLevel  string
	logFormat string
	logFile   string
	logStderr string
)

// Resolved by setup before any command runs.
var (
	appVersion = "dev"
	appConfig  *config.Config
	appLogger  = slog.Default()
	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "paramclip [URL]",
	Short: "Show a URL parameter and copy it to the clipboard",
	Long: `paramclip reads the content, text, data, msg or message parameter of a
URL, decodes it and shows it with a one-key copy to the clipboard.

The first non-empty parameter in that order wins. The URL can be given as
an argument, with --url, or in PARAMCLIP_URL. A bare query string such as
'?text=hello' works too.

Running 'paramclip' without a subcommand launches the interactive TUI.`,
	Example: `  paramclip 'https://example.com/?content=Hello%20World'
  paramclip resolve --format json '?text=caf%C3%A9'
  paramclip copy "$URL"`,
	Args:              cobra.MaximumNArgs(1),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

// Execute runs the CLI and returns the process exit code.
func Execute(version string) int {
	appVersion = version

	err := rootCmd.ExecuteContext(context.Background())
	closeLog()
	if err != nil {
		return handleError(rootCmd.ErrOrStderr(), err)
	}
	return clierrors.ExitSuccess
}

func init() {
	cobra.OnInitialize(initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/paramclip/config.yaml)")
	flags.String("url", "", "URL or query string to read (env PARAMCLIP_URL)")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.StringVar(&logLevel, "log-level", "", "log level: error, warn, info, debug")
	flags.StringVar(&logFormat, "log-format", "", "log format: text, json")
	flags.StringVar(&logFile, "log-file", "", "append logs to this file")
	flags.StringVar(&logStderr, "log-stderr", "", "log to stderr: auto, on, off")

	_ = viper.BindPFlag("url", flags.Lookup("url"))
}

// initConfig binds the environment overrides.
func initConfig() {
	viper.SetEnvPrefix(config.EnvPrefix)
	_ = viper.BindEnv("url")
}

// handleError prints err and returns its exit code. CLIErrors show their
// hint; cobra usage errors map to ExitUsage.
func handleError(w io.Writer, err error) int {
	failure := color.New(color.FgRed, color.Bold)
	info := color.New(color.FgCyan)

	var cliErr *clierrors.CLIError
	if clierrors.As(err, &cliErr) {
		failure.Fprintf(w, "Error: %s\n", cliErr.Error())
		if cliErr.Hint != "" {
			info.Fprintf(w, "Hint: %s\n", cliErr.Hint)
		}
		return cliErr.Code
	}

	errStr := err.Error()
	failure.Fprintf(w, "Error: %s\n", errStr)

	if strings.HasPrefix(errStr, "unknown command") ||
		strings.HasPrefix(errStr, "unknown flag") ||
		strings.HasPrefix(errStr, "unknown shorthand flag") ||
		strings.Contains(errStr, "arg(s)") {
		info.Fprintln(w, "Run 'paramclip --help' for usage")
		return clierrors.ExitUsage
	}

	return clierrors.ExitGeneral
}

// setup loads configuration and builds the logger. init must work with a
// broken config file, so it only gets defaults.
func setup(cmd *cobra.Command, args []string) error {
	if noColor {
		color.NoColor = true
	}

	cfg := config.Default()
	if cmd.Name() != "init" {
		loaded, err := config.Load(cfgFile)
		if err != nil {
			return clierrors.ConfigFailed("load config", err)
		}
		cfg = loaded
	}
	appConfig = cfg

	logger, cleanup, err := observability.NewLogger(observability.Config{
		Level:   pick(logLevel, cfg.Log.Level),
		Format:  pick(logFormat, cfg.Log.Format),
		File:    pick(logFile, cfg.Log.File),
		Stderr:  pick(logStderr, cfg.Log.Stderr),
		TUI:     isTerminal(os.Stdout) && !cmd.HasParent(),
		Session: uuid.NewString(),
		Command: cmd.CommandPath(),
		Version: appVersion,
	})
	if err != nil {
		return &clierrors.CLIError{
			Message: fmt.Sprintf("Invalid logging configuration: %v", err),
			Hint:    "Use --log-level (error|warn|info|debug), --log-format (text|json), --log-stderr (auto|on|off), and/or --log-file",
			Code:    clierrors.ExitUsage,
		}
	}

	appLogger = logger
	logCleanup = cleanup
	slog.SetDefault(logger)

	return nil
}

func closeLog() {
	if logCleanup != nil {
		_ = logCleanup()
		logCleanup = nil
	}
}

// query returns the query string from the argument, --url or
// PARAMCLIP_URL, in that order.
func query(args []string) (string, error) {
	raw := viper.GetString("url")
	if len(args) > 0 {
		raw = args[0]
	}

	q, err := params.QueryFromURL(raw)
	if err != nil {
		return "", clierrors.InvalidURL(err)
	}
	return q, nil
}

// newController builds and mounts a controller. A decode error is
// returned alongside the controller, which still holds the empty state.
func newController(args []string, copier state.Copier) (*state.Controller, error) {
	q, err := query(args)
	if err != nil {
		return nil, err
	}

	ctrl := state.New(copier, state.WithLogger(appLogger))
	return ctrl, ctrl.Mount(q)
}

// runTUI launches the interactive viewer.
func runTUI(cmd *cobra.Command, args []string) error {
	copier, err := newCopier(appConfig, appLogger)
	if err != nil {
		return clierrors.ConfigFailed("configure clipboard", err)
	}

	ctrl, err := newController(args, copier)
	if ctrl == nil {
		return err
	}
	defer ctrl.Close()

	p := tea.NewProgram(
		tui.NewApp(cmd.Context(), ctrl),
		tea.WithAltScreen(),
		tea.WithContext(cmd.Context()),
	)
	ctrl.SetListener(tui.Forward(p.Send))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func pick(flag, fallback string) string {
	if flag != "" {
		return flag
	}
	return fallback
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
