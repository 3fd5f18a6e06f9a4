package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSeverityRank(t *testing.T) {
	assert.Less(t, SeverityRank(SeverityHigh), SeverityRank(SeverityMedium))
	assert.Less(t, SeverityRank(SeverityMedium), SeverityRank(SeverityLow))
	assert.Greater(t, SeverityRank(Severity("bogus")), SeverityRank(SeverityLow))
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path string
		want Language
	}{
		{"main.py", LangPython},
		{"src/app/handler.go", LangGo},
		{"index.JS", LangJavaScript},
		{"component.tsx", LangTypeScript},
		{"App.java", LangJava},
		{"util.c", LangC},
		{"util.h", LangC},
		{"engine.cpp", LangCPP},
		{"config.yaml", LangYAML},
		{"notes.md", LangMarkdown},
		{"binary.bin", LangUnknown},
		{"Makefile", LangUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectLanguage(tt.path), tt.path)
	}
}

func TestLanguageAnalyzable(t *testing.T) {
	assert.True(t, LangPython.Analyzable())
	assert.True(t, LangGo.Analyzable())
	assert.False(t, LangJSON.Analyzable())
	assert.False(t, LangUnknown.Analyzable())
}

func TestSortFindings(t *testing.T) {
	findings := []Finding{
		{File: "b.py", Rule: "todo-comment", Severity: SeverityLow, Line: 3},
		{File: "a.py", Rule: "hardcoded-secret", Severity: SeverityHigh, Line: 10},
		{File: "a.py", Rule: "todo-comment", Severity: SeverityLow, Line: 7},
		{File: "a.py", Rule: "broad-exception", Severity: SeverityMedium, Line: 2},
		{File: "a.py", Rule: "unused-import", Severity: SeverityLow, Line: 1},
	}

	SortFindings(findings)

	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.Equal(t, SeverityMedium, findings[1].Severity)
	// Low severity ties break by file path, then line.
	assert.Equal(t, Finding{File: "a.py", Rule: "unused-import", Severity: SeverityLow, Line: 1}, findings[2])
	assert.Equal(t, Finding{File: "a.py", Rule: "todo-comment", Severity: SeverityLow, Line: 7}, findings[3])
	assert.Equal(t, "b.py", findings[4].File)
}

func TestReportAccessors(t *testing.T) {
	report := &ProjectReport{
		Files: []FileRecord{{Path: "a.py"}, {Path: "b.py"}},
		Entities: []Entity{
			{Name: "Foo", Kind: KindClass, File: "a.py", StartLine: 1, EndLine: 10},
			{Name: "bar", Kind: KindMethod, File: "a.py", StartLine: 3, EndLine: 5},
			{Name: "baz", Kind: KindFunction, File: "b.py", StartLine: 1, EndLine: 2},
		},
		Findings: []Finding{
			{File: "b.py", Rule: "todo-comment", Severity: SeverityLow},
		},
	}

	assert.Len(t, report.EntitiesFor("a.py"), 2)
	assert.Len(t, report.EntitiesFor("b.py"), 1)
	assert.Empty(t, report.EntitiesFor("c.py"))
	assert.Len(t, report.FindingsFor("b.py"), 1)
	assert.Empty(t, report.FindingsFor("a.py"))
}
