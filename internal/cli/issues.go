package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/buemura/scout/internal/output"
	"github.com/buemura/scout/pkg/types"
)

var minSeverityFlag string

var issuesCmd = &cobra.Command{
	Use:   "issues [path]",
	Short: "Report heuristic quality findings",
	Long:  "Scans the project and reports only the findings, optionally filtered by minimum severity.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runIssues,
}

func init() {
	issuesCmd.Flags().StringVar(&minSeverityFlag, "min-severity", "LOW", "lowest severity to report: LOW, MEDIUM, HIGH")
	rootCmd.AddCommand(issuesCmd)
}

func runIssues(cmd *cobra.Command, args []string) error {
	min := types.Severity(strings.ToUpper(minSeverityFlag))
	if types.SeverityRank(min) == len(types.Severities()) {
		return fmt.Errorf("unknown severity %q (expected LOW, MEDIUM, or HIGH)", minSeverityFlag)
	}

	report, err := runAnalysis(cmd.Context(), resolveRoot(args))
	if err != nil {
		return err
	}

	// Drop findings below the requested severity; totals follow suit.
	var kept []types.Finding
	bySeverity := map[types.Severity]int{}
	for _, f := range report.Findings {
		if types.SeverityRank(f.Severity) <= types.SeverityRank(min) {
			kept = append(kept, f)
			bySeverity[f.Severity]++
		}
	}
	report.Findings = kept
	report.Totals.Findings = len(kept)
	for _, sev := range types.Severities() {
		report.Totals.BySeverity[sev] = bySeverity[sev]
	}

	if outputFlag == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report.Findings)
	}

	formatter, err := output.GetFormatter(outputFlag)
	if err != nil {
		return err
	}
	return formatter.Format(os.Stdout, report)
}
