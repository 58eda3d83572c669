package cmd

import (
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	clierrors "github.com/f3rmion/paramclip/internal/errors"
	"github.com/f3rmion/paramclip/internal/output"
	"github.com/f3rmion/paramclip/internal/state"
)

var copyQuiet bool

var copyCmd = &cobra.Command{
	Use:   "copy [URL]",
	Short: "Copy the decoded parameter content without the TUI",
	Long: `Resolve the URL parameter and copy it straight to the clipboard.

The clipboard backend follows clipboard.mode in the config file. A summary
is written to stderr unless --quiet is set.

Exit codes: 5 when the parameter cannot be decoded, 6 when the clipboard
write fails, 7 when no parameter carries content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCopy,
}

func init() {
	rootCmd.AddCommand(copyCmd)
	copyCmd.Flags().BoolVarP(&copyQuiet, "quiet", "q", false, "do not print a summary")
}

func runCopy(cmd *cobra.Command, args []string) error {
	copier, err := newCopier(appConfig, appLogger)
	if err != nil {
		return clierrors.ConfigFailed("configure clipboard", err)
	}

	ctrl, err := newController(args, copier)
	if ctrl == nil {
		return err
	}
	defer ctrl.Close()

	if err != nil {
		return clierrors.DecodeFailed(err)
	}

	if err := ctrl.Copy(cmd.Context()); err != nil {
		if errors.Is(err, state.ErrNoContent) {
			return clierrors.NoContent()
		}
		return clierrors.ClipboardFailed(err)
	}

	if !copyQuiet {
		color.New(color.FgGreen).Fprintf(cmd.ErrOrStderr(), "✓ %s (%s)\n", state.MessageCopied, output.Summary(ctrl.Display()))
	}
	return nil
}
