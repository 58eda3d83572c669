package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/f3rmion/paramclip/internal/config"
	clierrors "github.com/f3rmion/paramclip/internal/errors"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a default configuration file",
	Long: `Write the default paramclip configuration to your config directory
(or to the path given with --config).

Edit the file afterwards to pin the clipboard backend, set a copy command
or turn on logging.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite an existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")

	path := cfgFile
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return clierrors.ConfigFailed("locate config directory", err)
		}
		path = p
	}

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return (&clierrors.CLIError{
			Message: fmt.Sprintf("Config file already exists: %s", path),
			Code:    clierrors.ExitConfig,
		}).WithHint("Use --force to overwrite")
	}

	if err := config.Save(path, config.Default()); err != nil {
		return clierrors.ConfigFailed("save config", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the file to pin clipboard.mode or set clipboard.command")
	fmt.Fprintln(out, "  2. Run 'paramclip resolve <url>' to check a URL")
	fmt.Fprintln(out, "  3. Run 'paramclip <url>' to open the viewer")

	return nil
}
