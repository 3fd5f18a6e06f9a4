// Package prompt turns a project report into a chat-ready context
// document and manages its on-disk cache.
package prompt

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/buemura/scout/pkg/types"
)

// Context is the persisted analysis context for a project.
type Context struct {
	Timestamp   time.Time `json:"timestamp"`
	Root        string    `json:"root"`
	ProjectName string    `json:"project_name"`
	Fingerprint string    `json:"fingerprint"`
	Summary     string    `json:"summary"`
	Prompt      string    `json:"prompt"`
}

// Architecture groups files by their likely role in the project,
// inferred from path naming conventions.
type Architecture struct {
	MainModules    []string
	UtilityModules []string
	TestFiles      []string
	ConfigFiles    []string
}

// Categorize buckets the report's files into architecture roles.
func Categorize(report *types.ProjectReport) Architecture {
	var arch Architecture
	for _, f := range report.Files {
		lower := strings.ToLower(f.Path)
		switch {
		case strings.Contains(lower, "main") || strings.Contains(lower, "app"):
			arch.MainModules = append(arch.MainModules, f.Path)
		case strings.Contains(lower, "util") || strings.Contains(lower, "helper"):
			arch.UtilityModules = append(arch.UtilityModules, f.Path)
		case strings.Contains(lower, "test") || strings.Contains(lower, "spec"):
			arch.TestFiles = append(arch.TestFiles, f.Path)
		case strings.Contains(lower, "config") || strings.Contains(lower, "settings"):
			arch.ConfigFiles = append(arch.ConfigFiles, f.Path)
		}
	}
	return arch
}

// Build derives a Context from a completed report.
func Build(report *types.ProjectReport) Context {
	name := filepath.Base(report.Root)
	return Context{
		Timestamp:   report.CompletedAt,
		Root:        report.Root,
		ProjectName: name,
		Fingerprint: report.Fingerprint,
		Summary: fmt.Sprintf("Analyzed project %q with %d files, %d findings. Ready to discuss codebase architecture and improvements.",
			name, report.Totals.Files, report.Totals.Findings),
		Prompt: buildPrompt(report, name),
	}
}

const (
	maxIssuesPerSeverity = 3
	maxListedFiles       = 10
)

func buildPrompt(report *types.ProjectReport, name string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Project Analysis Context\n\n")
	fmt.Fprintf(&b, "## Project: %s\n", name)
	fmt.Fprintf(&b, "- **Location**: %s\n", report.Root)
	fmt.Fprintf(&b, "- **Total Files**: %d\n", report.Totals.Files)
	fmt.Fprintf(&b, "- **Lines of Code**: %d\n", report.Totals.Lines)
	fmt.Fprintf(&b, "- **Languages**: %s\n", languageList(report))
	fmt.Fprintf(&b, "- **Issues Found**: %d\n", report.Totals.Findings)

	b.WriteString("\n## Architecture Overview\n")
	arch := Categorize(report)
	if len(arch.MainModules) > 0 {
		fmt.Fprintf(&b, "- **Main Modules**: %s\n", joinLimited(arch.MainModules, 3))
	}
	if len(arch.UtilityModules) > 0 {
		fmt.Fprintf(&b, "- **Utility Modules**: %s\n", joinLimited(arch.UtilityModules, 3))
	}
	if len(arch.TestFiles) > 0 {
		fmt.Fprintf(&b, "- **Test Files**: %d\n", len(arch.TestFiles))
	}

	b.WriteString("\n## Key Issues\n")
	writeIssues(&b, report)

	b.WriteString("\n## Available Files\n")
	listed := 0
	for _, f := range report.Files {
		if !f.Language.Analyzable() || f.Skipped {
			continue
		}
		entities := report.EntitiesFor(f.Path)
		classes, functions := 0, 0
		for _, e := range entities {
			switch e.Kind {
			case types.KindClass:
				classes++
			default:
				functions++
			}
		}
		fmt.Fprintf(&b, "- **%s**: %d lines, %d classes, %d functions\n", f.Path, f.Lines, classes, functions)
		listed++
		if listed == maxListedFiles {
			break
		}
	}

	b.WriteString("\n## Usage Notes\n")
	b.WriteString("- I have analyzed this codebase and can provide insights about its structure, issues, and improvements\n")
	b.WriteString("- Ask me about specific files, functions, or architectural decisions\n")
	b.WriteString("- I can suggest refactoring approaches or explain complex code sections\n")

	return b.String()
}

// writeIssues emits up to a few findings per severity, most severe first.
func writeIssues(b *strings.Builder, report *types.ProjectReport) {
	for _, sev := range []types.Severity{types.SeverityHigh, types.SeverityMedium, types.SeverityLow} {
		count := 0
		for _, f := range report.Findings {
			if f.Severity != sev {
				continue
			}
			if count == 0 {
				fmt.Fprintf(b, "### %s\n", severityHeading(sev))
			}
			fmt.Fprintf(b, "- %s: %s\n", f.File, f.Message)
			count++
			if count == maxIssuesPerSeverity {
				break
			}
		}
	}
}

func severityHeading(s types.Severity) string {
	str := strings.ToLower(string(s))
	if str == "" {
		return ""
	}
	return strings.ToUpper(str[:1]) + str[1:]
}

// sortedLanguages orders languages by descending file count, ties
// broken alphabetically, for stable prompt output.
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

func languageList(report *types.ProjectReport) string {
	var parts []string
	for _, lang := range sortedLanguages(report.Totals.ByLanguage) {
		parts = append(parts, fmt.Sprintf("%s: %d", lang, report.Totals.ByLanguage[lang]))
	}
	return strings.Join(parts, ", ")
}

func joinLimited(items []string, max int) string {
	if len(items) > max {
		items = items[:max]
	}
	return strings.Join(items, ", ")
}

// ForChat returns the prompt truncated to maxLength runes, keeping a
// trailing marker when truncation happens.
func (c Context) ForChat(maxLength int) string {
	const marker = "\n\n[Context truncated for length...]"
	runes := []rune(c.Prompt)
	if maxLength <= 0 || len(runes) <= maxLength {
		return c.Prompt
	}
	cut := maxLength - len([]rune(marker))
	if cut < 0 {
		cut = 0
	}
	return string(runes[:cut]) + marker
}
