package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

var (
	pyRiskyRe = regexp.MustCompile(`\b(?:open\s*\(|json\.loads?\s*\(|requests\.|urllib\.|subprocess\.|socket\.|shutil\.|os\.remove|os\.rmdir)`)
	jsRiskyRe = regexp.MustCompile(`\b(?:JSON\.parse\s*\(|fetch\s*\(|fs\.)`)
	javaRisky = regexp.MustCompile(`\b(?:Integer\.parseInt|Files\.|new\s+File(?:Input|Output)?(?:Stream|Reader|Writer))`)

	pyTryRe    = regexp.MustCompile(`^(\s*)try\s*:`)
	braceTryRe = regexp.MustCompile(`\btry\b\s*\{?`)
	goDiscard  = regexp.MustCompile(`^\s*_\s*=\s*[\w.]+\(`)
)

// missingErrorHandlingRule flags risky operations with no protective
// construct around them. "Risky" and "protected" are per-language
// pattern approximations, never a parse.
func missingErrorHandlingRule() Rule {
	return Rule{
		ID:       "missing-error-handling",
		Severity: types.SeverityMedium,
		Check: func(in Input) []types.Finding {
			switch in.Language {
			case types.LangPython:
				return riskyOutsideSpans(in.Lines, pyRiskyRe, pythonTrySpans(in.Lines))
			case types.LangJavaScript, types.LangTypeScript:
				return riskyOutsideSpans(in.Lines, jsRiskyRe, braceTrySpans(in.Lines))
			case types.LangJava:
				return riskyOutsideSpans(in.Lines, javaRisky, braceTrySpans(in.Lines))
			case types.LangGo:
				return goDiscardedErrors(in.Lines)
			}
			return nil
		},
	}
}

type span struct{ start, end int }

func (s span) contains(line int) bool { return line >= s.start && line <= s.end }

// riskyOutsideSpans emits one finding per risky line not covered by a
// protective span.
func riskyOutsideSpans(lines []string, risky *regexp.Regexp, protected []span) []types.Finding {
	var findings []types.Finding
	for i, line := range lines {
		if !risky.MatchString(line) {
			continue
		}
		covered := false
		for _, s := range protected {
			if s.contains(i) {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		findings = append(findings, types.Finding{
			Message: "risky operation without surrounding error handling",
			Line:    i + 1,
		})
	}
	return findings
}

// pythonTrySpans returns the line spans of try constructs, including
// their except/else/finally clauses, determined by indentation.
func pythonTrySpans(lines []string) []span {
	var spans []span
	for i, line := range lines {
		m := pyTryRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		indent := len(m[1])
		end := i
		for j := i + 1; j < len(lines); j++ {
			trimmed := strings.TrimSpace(lines[j])
			if trimmed == "" || strings.HasPrefix(trimmed, "#") {
				continue
			}
			lineIndent := len(lines[j]) - len(strings.TrimLeft(lines[j], " \t"))
			if lineIndent <= indent &&
				!strings.HasPrefix(trimmed, "except") &&
				!strings.HasPrefix(trimmed, "finally") &&
				!strings.HasPrefix(trimmed, "else") {
				break
			}
			end = j
		}
		spans = append(spans, span{start: i, end: end})
	}
	return spans
}

// braceTrySpans returns the spans of try blocks in brace languages,
// found by brace balance from the try line.
func braceTrySpans(lines []string) []span {
	var spans []span
	for i, line := range lines {
		if !braceTryRe.MatchString(line) {
			continue
		}
		depth := 0
		opened := false
		end := i
	scan:
		for j := i; j < len(lines); j++ {
			for _, ch := range lines[j] {
				switch ch {
				case '{':
					depth++
					opened = true
				case '}':
					if opened {
						depth--
						if depth <= 0 {
							end = j
							break scan
						}
					}
				}
			}
		}
		spans = append(spans, span{start: i, end: end})
	}
	return spans
}

// goDiscardedErrors flags explicit discards of a call result, the Go
// analogue of swallowing an exception.
func goDiscardedErrors(lines []string) []types.Finding {
	var findings []types.Finding
	for i, line := range lines {
		if goDiscard.MatchString(line) {
			findings = append(findings, types.Finding{
				Message: fmt.Sprintf("call result discarded on line %d; error is silently ignored", i+1),
				Line:    i + 1,
			})
		}
	}
	return findings
}
