package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/scout/pkg/types"
)

func TestAssemble_Totals(t *testing.T) {
	files := []types.FileRecord{
		{Path: "a.py", Language: types.LangPython, Lines: 10},
		{Path: "b.py", Language: types.LangPython, Lines: 5},
		{Path: "big.go", Language: types.LangGo, Lines: 700, Skipped: true},
	}
	entities := []types.Entity{
		{Name: "main", Kind: types.KindFunction, File: "a.py", StartLine: 1, EndLine: 3},
	}
	findings := []types.Finding{
		{File: "b.py", Rule: "todo-comment", Severity: types.SeverityLow, Line: 2},
		{File: "a.py", Rule: "hardcoded-secret", Severity: types.SeverityHigh, Line: 4},
	}

	started := time.Now()
	report := Assemble("/proj", started, files, entities, findings)
	require.NotNil(t, report)

	assert.Equal(t, "/proj", report.Root)
	assert.Equal(t, started, report.StartedAt)
	assert.False(t, report.CompletedAt.Before(started))

	assert.Equal(t, 3, report.Totals.Files)
	assert.Equal(t, 715, report.Totals.Lines, "skipped files still count toward line totals")
	assert.Equal(t, 1, report.Totals.Entities)
	assert.Equal(t, 2, report.Totals.Findings)
	assert.Equal(t, 1, report.Totals.BySeverity[types.SeverityHigh])
	assert.Equal(t, 0, report.Totals.BySeverity[types.SeverityMedium], "all severities are present even when zero")
	assert.Equal(t, 1, report.Totals.BySeverity[types.SeverityLow])
	assert.Equal(t, 2, report.Totals.ByLanguage[types.LangPython])
	assert.Equal(t, 1, report.Totals.ByLanguage[types.LangGo])
}

func TestAssemble_OrdersFindings(t *testing.T) {
	findings := []types.Finding{
		{File: "b.py", Rule: "todo-comment", Severity: types.SeverityLow, Line: 9},
		{File: "a.py", Rule: "large-file", Severity: types.SeverityLow, Line: 0},
		{File: "a.py", Rule: "hardcoded-secret", Severity: types.SeverityHigh, Line: 4},
		{File: "a.py", Rule: "broad-exception", Severity: types.SeverityMedium, Line: 2},
	}

	report := Assemble("/proj", time.Now(), nil, nil, findings)

	got := make([]types.Severity, 0, len(report.Findings))
	for _, f := range report.Findings {
		got = append(got, f.Severity)
	}
	assert.Equal(t, []types.Severity{
		types.SeverityHigh, types.SeverityMedium, types.SeverityLow, types.SeverityLow,
	}, got)
	assert.Equal(t, "a.py", report.Findings[2].File, "ties broken by path")
	assert.Equal(t, "b.py", report.Findings[3].File)
}

func TestFingerprint_StableAndContentSensitive(t *testing.T) {
	files := []types.FileRecord{{Path: "a.py", Language: types.LangPython, Digest: "00ff", Lines: 3}}
	entities := []types.Entity{{Name: "f", Kind: types.KindFunction, File: "a.py", StartLine: 1, EndLine: 2}}

	r1 := Assemble("/proj", time.Now(), files, entities, nil)
	r2 := Assemble("/proj", time.Now().Add(time.Hour), files, entities, nil)
	assert.Equal(t, r1.Fingerprint, r2.Fingerprint, "fingerprint ignores timing")
	assert.Len(t, r1.Fingerprint, 16)

	changed := []types.FileRecord{{Path: "a.py", Language: types.LangPython, Digest: "ff00", Lines: 3}}
	r3 := Assemble("/proj", time.Now(), changed, entities, nil)
	assert.NotEqual(t, r1.Fingerprint, r3.Fingerprint)
}
