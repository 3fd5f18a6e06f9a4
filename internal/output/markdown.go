package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

// MarkdownFormatter renders the report as Markdown tables suitable for
// pasting into docs, issues, or pull-request descriptions.
type MarkdownFormatter struct{}

func (f *MarkdownFormatter) Format(w io.Writer, report *types.ProjectReport) error {
	fmt.Fprintf(w, "## Project Report — %s\n\n", report.Root)
	fmt.Fprintf(w, "%d files, %d lines, %d entities, %d findings.\n\n",
		report.Totals.Files, report.Totals.Lines, report.Totals.Entities, report.Totals.Findings)

	if len(report.Totals.ByLanguage) > 0 {
		fmt.Fprintln(w, "### Languages")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "| Language | Files |")
		fmt.Fprintln(w, "|----------|-------|")
		for _, lang := range sortedLanguages(report.Totals.ByLanguage) {
			fmt.Fprintf(w, "| %s | %d |\n", lang, report.Totals.ByLanguage[lang])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, "### Findings")
	fmt.Fprintln(w)

	if len(report.Findings) == 0 {
		fmt.Fprintln(w, "_No findings._")
		return nil
	}

	fmt.Fprintln(w, "| Severity | Rule | Location | Message |")
	fmt.Fprintln(w, "|----------|------|----------|---------|")

	for _, finding := range report.Findings {
		fmt.Fprintf(w, "| %s | %s | %s | %s |\n",
			severityBadge(finding.Severity),
			finding.Rule,
			escapeMarkdown(location(finding)),
			escapeMarkdown(finding.Message),
		)
	}

	fmt.Fprintf(w, "\n**Summary:** %s\n", formatSummary(report.Totals))
	return nil
}

// sortedLanguages returns the languages with at least one file, in
// descending file-count order, ties broken alphabetically.
func sortedLanguages(byLang map[types.Language]int) []types.Language {
	langs := make([]types.Language, 0, len(byLang))
	for lang := range byLang {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if byLang[langs[i]] != byLang[langs[j]] {
			return byLang[langs[i]] > byLang[langs[j]]
		}
		return langs[i] < langs[j]
	})
	return langs
}

// severityBadge returns a bold, uppercased severity label for Markdown.
func severityBadge(s types.Severity) string {
	return fmt.Sprintf("**%s**", string(s))
}

// escapeMarkdown escapes pipe characters that would break Markdown tables.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
