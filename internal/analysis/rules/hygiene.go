package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

var (
	pyBroadExceptRe = regexp.MustCompile(`^\s*except\s*(?:\(?\s*(?:BaseException|Exception)\b[^:]*)?:\s*(?:#.*)?$`)
	jsEmptyCatchRe  = regexp.MustCompile(`catch\s*(?:\([^)]*\))?\s*\{\s*\}`)
	javaBroadRe     = regexp.MustCompile(`catch\s*\(\s*(?:Exception|Throwable)\b`)
	todoRe          = regexp.MustCompile(`\b(?:TODO|FIXME|XXX)\b`)

	pyBranchRe    = regexp.MustCompile(`\b(?:if|elif|for|while|except|and|or)\b`)
	braceBranchRe = regexp.MustCompile(`\b(?:if|for|while|case|catch)\b|&&|\|\|`)

	pyDocstringRe = regexp.MustCompile(`^\s*(?:[rbuf]*)("""|''')`)
)

// broadExceptionRule flags blanket exception suppression.
func broadExceptionRule() Rule {
	return Rule{
		ID:       "broad-exception",
		Severity: types.SeverityMedium,
		Check: func(in Input) []types.Finding {
			var re *regexp.Regexp
			switch in.Language {
			case types.LangPython:
				re = pyBroadExceptRe
			case types.LangJavaScript, types.LangTypeScript:
				re = jsEmptyCatchRe
			case types.LangJava:
				re = javaBroadRe
			default:
				return nil
			}

			var findings []types.Finding
			for i, line := range in.Lines {
				if re.MatchString(line) {
					findings = append(findings, types.Finding{
						Message: "overly broad exception suppression",
						Line:    i + 1,
					})
				}
			}
			return findings
		},
	}
}

// todoCommentRule flags TODO/FIXME/XXX markers.
func todoCommentRule() Rule {
	return Rule{
		ID:       "todo-comment",
		Severity: types.SeverityLow,
		Check: func(in Input) []types.Finding {
			var findings []types.Finding
			for i, line := range in.Lines {
				if todoRe.MatchString(line) {
					findings = append(findings, types.Finding{
						Message: "contains a TODO/FIXME marker",
						Line:    i + 1,
					})
				}
			}
			return findings
		},
	}
}

// largeFileRule flags files over the configured line threshold.
func largeFileRule(maxLines int) Rule {
	return Rule{
		ID:       "large-file",
		Severity: types.SeverityLow,
		Check: func(in Input) []types.Finding {
			if len(in.Lines) <= maxLines {
				return nil
			}
			return []types.Finding{{
				Message: fmt.Sprintf("file has %d lines (threshold %d); consider splitting it", len(in.Lines), maxLines),
			}}
		},
	}
}

// highComplexityRule approximates cyclomatic complexity by counting
// decision points across the whole file.
func highComplexityRule(threshold int) Rule {
	return Rule{
		ID:       "high-complexity",
		Severity: types.SeverityMedium,
		Check: func(in Input) []types.Finding {
			var branchRe *regexp.Regexp
			switch {
			case in.Language == types.LangPython:
				branchRe = pyBranchRe
			case in.Language.Braced():
				branchRe = braceBranchRe
			default:
				return nil
			}

			complexity := 1
			for _, line := range in.Lines {
				complexity += len(branchRe.FindAllString(line, -1))
			}
			if complexity <= threshold {
				return nil
			}
			return []types.Finding{{
				Message: fmt.Sprintf("estimated complexity %d exceeds threshold %d", complexity, threshold),
			}}
		},
	}
}

// lowDocCoverageRule flags Python files where too few functions carry
// a docstring. It leans on the extracted entities rather than
// re-recognizing declarations.
func lowDocCoverageRule(minRatio float64) Rule {
	return Rule{
		ID:       "low-doc-coverage",
		Severity: types.SeverityLow,
		Check: func(in Input) []types.Finding {
			if in.Language != types.LangPython {
				return nil
			}

			total, documented := 0, 0
			for _, e := range in.Entities {
				if e.Kind != types.KindFunction && e.Kind != types.KindMethod {
					continue
				}
				total++
				if pythonEntityHasDocstring(in.Lines, e) {
					documented++
				}
			}
			if total == 0 {
				return nil
			}

			ratio := float64(documented) / float64(total)
			if ratio >= minRatio {
				return nil
			}
			return []types.Finding{{
				Message: fmt.Sprintf("only %.0f%% of functions have docstrings", ratio*100),
			}}
		},
	}
}

func pythonEntityHasDocstring(lines []string, e types.Entity) bool {
	// First non-blank line after the declaration header.
	for i := e.StartLine; i < len(lines) && i <= e.EndLine; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		return pyDocstringRe.MatchString(lines[i])
	}
	return false
}
