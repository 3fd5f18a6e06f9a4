package cli

import (
	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/tui"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive [path]",
	Short: "Launch interactive TUI mode",
	Long:  "Start an interactive terminal UI for scanning projects and browsing the results.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInteractive,
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
}

func runInteractive(cmd *cobra.Command, args []string) error {
	opts, err := scanOptions(newLogger())
	if err != nil {
		return err
	}
	return tui.Run(opts, resolveRoot(args))
}
