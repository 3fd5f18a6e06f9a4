package analysis

import (
	"fmt"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/buemura/scout/pkg/types"
)

// Assemble merges per-file results into the final ProjectReport: it
// orders findings, computes totals, and stamps the fingerprint. Pure
// aggregation, no I/O, no failure path.
func Assemble(root string, startedAt time.Time, files []types.FileRecord, entities []types.Entity, findings []types.Finding) *types.ProjectReport {
	types.SortFindings(findings)

	totals := types.Totals{
		Files:      len(files),
		Entities:   len(entities),
		Findings:   len(findings),
		BySeverity: map[types.Severity]int{types.SeverityHigh: 0, types.SeverityMedium: 0, types.SeverityLow: 0},
		ByLanguage: map[types.Language]int{},
	}
	for _, f := range files {
		totals.Lines += f.Lines
		totals.ByLanguage[f.Language]++
	}
	for _, f := range findings {
		totals.BySeverity[f.Severity]++
	}

	return &types.ProjectReport{
		Root:        root,
		StartedAt:   startedAt,
		CompletedAt: time.Now(),
		Files:       files,
		Entities:    entities,
		Findings:    findings,
		Totals:      totals,
		Fingerprint: fingerprint(files, entities, findings),
	}
}

// fingerprint is a content hash over the report's files, entities, and
// findings, independent of scan timing. Two scans of an unchanged tree
// produce the same fingerprint.
func fingerprint(files []types.FileRecord, entities []types.Entity, findings []types.Finding) string {
	h := xxhash.New()
	for _, f := range files {
		fmt.Fprintf(h, "f|%s|%s|%s|%d\n", f.Path, f.Language, f.Digest, f.Lines)
	}
	for _, e := range entities {
		fmt.Fprintf(h, "e|%s|%s|%s|%d|%d\n", e.File, e.Kind, e.Name, e.StartLine, e.EndLine)
	}
	for _, f := range findings {
		fmt.Fprintf(h, "i|%s|%s|%s|%d\n", f.File, f.Rule, f.Severity, f.Line)
	}
	return fmt.Sprintf("%016x", h.Sum64())
}
