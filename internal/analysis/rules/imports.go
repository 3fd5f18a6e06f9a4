package rules

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

var (
	pyImportRe     = regexp.MustCompile(`^import\s+(.+)$`)
	pyFromImportRe = regexp.MustCompile(`^from\s+[\w.]+\s+import\s+(.+)$`)
	jsImportRe     = regexp.MustCompile(`^import\s+(?:(\w+)\s*,?\s*)?(?:\{([^}]*)\})?\s*from\s`)
	jsRequireRe    = regexp.MustCompile(`^(?:const|let|var)\s+(\w+)\s*=\s*require\s*\(`)
	goImportLineRe = regexp.MustCompile(`^\s*(?:(\w+|\.|_)\s+)?"([^"]+)"`)
)

// importBinding is one name an import statement introduces, with the
// 0-based line it was declared on.
type importBinding struct {
	name string
	line int
}

// unusedImportRule flags imported names never referenced elsewhere in
// the file. The reference check is a word match outside the import
// lines, matching the original heuristic's simplicity.
func unusedImportRule() Rule {
	return Rule{
		ID:       "unused-import",
		Severity: types.SeverityLow,
		Check: func(in Input) []types.Finding {
			var bindings []importBinding
			importLines := map[int]bool{}

			switch in.Language {
			case types.LangPython:
				bindings = pythonImports(in.Lines, importLines)
			case types.LangGo:
				bindings = goImports(in.Lines, importLines)
			case types.LangJavaScript, types.LangTypeScript:
				bindings = scriptImports(in.Lines, importLines)
			default:
				return nil
			}

			var findings []types.Finding
			for _, b := range bindings {
				if b.name == "" || b.name == "_" || b.name == "." {
					continue
				}
				if referenced(in.Lines, importLines, b.name) {
					continue
				}
				findings = append(findings, types.Finding{
					Message: fmt.Sprintf("imported name %q is never used", b.name),
					Line:    b.line + 1,
				})
			}
			return findings
		},
	}
}

// referenced reports whether name appears as a word on any line that
// is not itself part of an import statement.
func referenced(lines []string, importLines map[int]bool, name string) bool {
	re := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\b`)
	for i, line := range lines {
		if importLines[i] {
			continue
		}
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func pythonImports(lines []string, importLines map[int]bool) []importBinding {
	var bindings []importBinding
	for i, line := range lines {
		var names string
		if m := pyFromImportRe.FindStringSubmatch(line); m != nil {
			names = m[1]
		} else if m := pyImportRe.FindStringSubmatch(line); m != nil {
			names = m[1]
		} else {
			continue
		}
		importLines[i] = true
		if strings.Contains(names, "*") || strings.HasSuffix(strings.TrimSpace(names), "(") {
			continue
		}
		for _, part := range strings.Split(names, ",") {
			bindings = append(bindings, importBinding{name: bindingName(part), line: i})
		}
	}
	return bindings
}

// bindingName resolves "pkg.mod as alias" to the name the import binds.
func bindingName(part string) string {
	part = strings.TrimSpace(part)
	if idx := strings.Index(part, " as "); idx >= 0 {
		return strings.TrimSpace(part[idx+4:])
	}
	if idx := strings.LastIndex(part, "."); idx >= 0 {
		return part[idx+1:]
	}
	return part
}

func goImports(lines []string, importLines map[int]bool) []importBinding {
	var bindings []importBinding
	inBlock := false
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "import ("):
			inBlock = true
			importLines[i] = true
			continue
		case inBlock && trimmed == ")":
			inBlock = false
			importLines[i] = true
			continue
		case strings.HasPrefix(trimmed, "import "):
			importLines[i] = true
			if m := goImportLineRe.FindStringSubmatch(strings.TrimPrefix(trimmed, "import ")); m != nil {
				bindings = append(bindings, importBinding{name: goBindingName(m[1], m[2]), line: i})
			}
			continue
		}
		if inBlock {
			importLines[i] = true
			if m := goImportLineRe.FindStringSubmatch(line); m != nil {
				bindings = append(bindings, importBinding{name: goBindingName(m[1], m[2]), line: i})
			}
		}
	}
	return bindings
}

// goBindingName derives the package identifier an import path binds,
// skipping versioned path tails like /v2.
func goBindingName(alias, path string) string {
	if alias != "" {
		return alias
	}
	segs := strings.Split(path, "/")
	name := segs[len(segs)-1]
	if len(segs) > 1 && regexp.MustCompile(`^v\d+$`).MatchString(name) {
		name = segs[len(segs)-2]
	}
	return name
}

func scriptImports(lines []string, importLines map[int]bool) []importBinding {
	var bindings []importBinding
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if m := jsImportRe.FindStringSubmatch(trimmed); m != nil {
			importLines[i] = true
			if m[1] != "" {
				bindings = append(bindings, importBinding{name: m[1], line: i})
			}
			for _, part := range strings.Split(m[2], ",") {
				if name := bindingName(part); name != "" {
					bindings = append(bindings, importBinding{name: name, line: i})
				}
			}
			continue
		}
		if m := jsRequireRe.FindStringSubmatch(trimmed); m != nil {
			importLines[i] = true
			bindings = append(bindings, importBinding{name: m[1], line: i})
		}
	}
	return bindings
}
