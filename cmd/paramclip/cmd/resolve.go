package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	clierrors "github.com/f3rmion/paramclip/internal/errors"
	"github.com/f3rmion/paramclip/internal/output"
)

var resolveFormat string

var resolveCmd = &cobra.Command{
	Use:   "resolve [URL]",
	Short: "Print the decoded parameter content",
	Long: `Resolve the URL parameter and print it without touching the clipboard.

Plain output prints the content exactly, followed by a newline only when
stdout is a terminal. JSON output includes the parameter name, the
character count and any decode error.

Exit codes: 5 when the parameter cannot be decoded, 7 when no parameter
carries content.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringVarP(&resolveFormat, "format", "f", string(output.FormatPlain), "output format: plain, json")
}

func runResolve(cmd *cobra.Command, args []string) error {
	formatter, err := output.GetFormatter(output.Format(resolveFormat))
	if err != nil {
		return &clierrors.CLIError{
			Message: err.Error(),
			Hint:    "Use --format plain or --format json",
			Code:    clierrors.ExitUsage,
		}
	}

	ctrl, mountErr := newController(args, nil)
	if ctrl == nil {
		return mountErr
	}
	defer ctrl.Close()

	display := ctrl.Display()

	// Plain output has nothing to print for the empty states.
	if display.Available || output.Format(resolveFormat) == output.FormatJSON {
		text, err := formatter.FormatDisplay(display)
		if err != nil {
			return fmt.Errorf("formatting output: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprint(out, text)
		if output.Format(resolveFormat) == output.FormatJSON || isTerminal(out) {
			fmt.Fprintln(out)
		}
	}

	switch {
	case mountErr != nil:
		return clierrors.DecodeFailed(mountErr)
	case !display.Available:
		return clierrors.NoContent()
	}
	return nil
}
