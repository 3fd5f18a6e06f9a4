package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/output"
	"github.com/buemura/scout/internal/watch"
)

var debounceFlag time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [path]",
	Short: "Rescan the project whenever files change",
	Long:  "Watches the project directory and re-runs the analysis after each change, printing the updated report.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&debounceFlag, "debounce", watch.DefaultDebounce, "quiet period before rescanning after a change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	root := resolveRoot(args)
	logger := newLogger()

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}

	rescan := func() {
		report, err := runAnalysis(cmd.Context(), root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "scan failed: %v\n", err)
			return
		}
		if err := formatter.Format(os.Stdout, report); err != nil {
			fmt.Fprintf(os.Stderr, "formatting report failed: %v\n", err)
		}
	}

	// Initial scan before settling into watch mode.
	rescan()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s for changes (Ctrl+C to stop)\n", root)

	w := watch.New(root, ignoreFlag, debounceFlag, logger)
	err = w.Run(ctx, rescan)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
