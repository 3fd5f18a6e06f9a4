package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities [path]",
	Short: "List extracted classes, functions, and methods",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runEntities,
}

func init() {
	rootCmd.AddCommand(entitiesCmd)
}

func runEntities(cmd *cobra.Command, args []string) error {
	report, err := runAnalysis(cmd.Context(), resolveRoot(args))
	if err != nil {
		return err
	}

	if outputFlag == "json" {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		return encoder.Encode(report.Entities)
	}

	if len(report.Entities) == 0 {
		fmt.Println("No entities found.")
		return nil
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Kind", "Name", "File", "Lines"})
	table.SetAutoWrapText(false)
	table.SetBorder(false)
	table.SetColumnSeparator("│")

	for _, e := range report.Entities {
		table.Append([]string{
			string(e.Kind),
			e.Name,
			e.File,
			fmt.Sprintf("%d-%d", e.StartLine, e.EndLine),
		})
	}
	table.Render()

	fmt.Printf("  %d entities across %d files\n", len(report.Entities), report.Totals.Files)
	return nil
}
