package output

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/buemura/scout/pkg/types"
)

// SARIFFormatter renders the report as a SARIF 2.1.0 log so findings
// can be ingested by code-scanning backends.
type SARIFFormatter struct{}

func (f *SARIFFormatter) Format(w io.Writer, report *types.ProjectReport) error {
	log, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI("scout", "https://github.com/buemura/scout")

	seen := map[string]bool{}
	for _, finding := range report.Findings {
		if !seen[finding.Rule] {
			seen[finding.Rule] = true
			run.AddRule(finding.Rule).
				WithDefaultConfiguration(&sarif.ReportingConfiguration{
					Level: sarifLevel(finding.Severity),
				})
		}

		region := sarif.NewRegion().WithStartLine(finding.Line)
		if finding.Line == 0 {
			// SARIF regions are 1-based; file-level findings point at line 1.
			region = sarif.NewRegion().WithStartLine(1)
		}

		location := sarif.NewLocation().WithPhysicalLocation(
			sarif.NewPhysicalLocation().
				WithArtifactLocation(sarif.NewArtifactLocation().WithUri(finding.File)).
				WithRegion(region),
		)

		result := sarif.NewRuleResult(finding.Rule).
			WithMessage(sarif.NewTextMessage(finding.Message)).
			WithLevel(sarifLevel(finding.Severity)).
			WithLocations([]*sarif.Location{location})
		run.AddResult(result)
	}

	log.AddRun(run)
	return log.PrettyWrite(w)
}

func sarifLevel(s types.Severity) string {
	switch s {
	case types.SeverityHigh:
		return "error"
	case types.SeverityMedium:
		return "warning"
	default:
		return "note"
	}
}
