package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/buemura/scout/pkg/types"
)

// TableFormatter renders the report as colored terminal tables.
type TableFormatter struct{}

func (f *TableFormatter) Format(w io.Writer, report *types.ProjectReport) error {
	fmt.Fprintf(w, "\n%s — %d files, %d lines, %d entities\n",
		report.Root, report.Totals.Files, report.Totals.Lines, report.Totals.Entities)

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "  No findings.")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Severity", "Rule", "Location", "Message"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	// Findings arrive already ordered by severity, path, line.
	for _, finding := range report.Findings {
		table.Append([]string{
			colorSeverity(finding.Severity),
			finding.Rule,
			location(finding),
			finding.Message,
		})
	}

	table.Render()

	fmt.Fprintf(w, "  Summary: %s\n", formatSummary(report.Totals))
	return nil
}

// location renders "path:line", or just the path for file-level findings.
func location(f types.Finding) string {
	if f.Line == 0 {
		return f.File
	}
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

func colorSeverity(s types.Severity) string {
	switch s {
	case types.SeverityHigh:
		return color.RedString("HIGH")
	case types.SeverityMedium:
		return color.YellowString("MEDIUM")
	case types.SeverityLow:
		return color.CyanString("LOW")
	default:
		return string(s)
	}
}

func formatSummary(t types.Totals) string {
	return fmt.Sprintf("%d findings (%d high, %d medium, %d low)",
		t.Findings,
		t.BySeverity[types.SeverityHigh],
		t.BySeverity[types.SeverityMedium],
		t.BySeverity[types.SeverityLow],
	)
}
