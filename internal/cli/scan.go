package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/internal/output"
	"github.com/buemura/scout/pkg/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan [path]",
	Short: "Analyze a project directory",
	Long:  "Scans the given directory (default: current directory), extracts entities, collects metrics, and reports findings.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	report, err := runAnalysis(cmd.Context(), resolveRoot(args))
	if err != nil {
		return err
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, report)
}

// runAnalysis performs a full scan with the active flags and config.
func runAnalysis(ctx context.Context, root string) (*types.ProjectReport, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	opts, err := scanOptions(newLogger())
	if err != nil {
		return nil, err
	}

	s, err := analysis.NewScanner(opts)
	if err != nil {
		return nil, err
	}
	return s.Scan(ctx, root)
}
