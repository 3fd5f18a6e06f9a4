package extract

import (
	"regexp"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

// Go declarations.
var (
	goTypeRe   = regexp.MustCompile(`^type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`)
	goMethodRe = regexp.MustCompile(`^func\s+\([^)]+\)\s*([A-Za-z_]\w*)\s*\(`)
	goFuncRe   = regexp.MustCompile(`^func\s+([A-Za-z_]\w*)\s*[(\[]`)
)

type goRecognizer struct{}

func (goRecognizer) recognize(lines []string) []types.Entity {
	var entities []types.Entity
	for i, line := range lines {
		if m := goTypeRe.FindStringSubmatch(line); m != nil {
			entities = append(entities, spanEntity(lines, i, m[1], types.KindClass))
			continue
		}
		if m := goMethodRe.FindStringSubmatch(line); m != nil {
			entities = append(entities, spanEntity(lines, i, m[1], types.KindMethod))
			continue
		}
		if m := goFuncRe.FindStringSubmatch(line); m != nil {
			entities = append(entities, spanEntity(lines, i, m[1], types.KindFunction))
		}
	}
	return entities
}

// JavaScript / TypeScript declarations.
var (
	jsClassRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:abstract\s+)?class\s+([A-Za-z_$][\w$]*)`)
	jsFuncRe  = regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*([A-Za-z_$][\w$]*)\s*\(`)
	jsArrowRe = regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+([A-Za-z_$][\w$]*)\s*=\s*(?:async\s+)?(?:\([^)]*\)|[A-Za-z_$][\w$]*)\s*=>`)
	jsMethRe  = regexp.MustCompile(`^\s*(?:static\s+)?(?:async\s+)?(?:get\s+|set\s+)?([A-Za-z_$][\w$]*)\s*\([^;{]*\)\s*\{`)
)

type scriptRecognizer struct{}

func (scriptRecognizer) recognize(lines []string) []types.Entity {
	var entities []types.Entity
	var classes []classSpan

	for i, line := range lines {
		if isBraceComment(line) {
			continue
		}
		if m := jsClassRe.FindStringSubmatch(line); m != nil {
			end := braceBlockEnd(lines, i)
			entities = append(entities, types.Entity{
				Name: m[1], Kind: types.KindClass, StartLine: i + 1, EndLine: end + 1,
			})
			classes = append(classes, classSpan{start: i, end: end})
			continue
		}
		if m := jsFuncRe.FindStringSubmatch(line); m != nil {
			entities = append(entities, spanEntity(lines, i, m[1], types.KindFunction))
			continue
		}
		if m := jsArrowRe.FindStringSubmatch(line); m != nil {
			entities = append(entities, spanEntity(lines, i, m[1], types.KindFunction))
			continue
		}
		if insideClass(classes, i) {
			if m := jsMethRe.FindStringSubmatch(line); m != nil && !isControlKeyword(m[1]) {
				entities = append(entities, spanEntity(lines, i, m[1], types.KindMethod))
			}
		}
	}
	return entities
}

// Java declarations. Java has no top-level functions; everything
// callable inside a class span is a method.
var (
	javaClassRe = regexp.MustCompile(`^\s*(?:public\s+|protected\s+|private\s+|abstract\s+|final\s+|static\s+)*(?:class|interface|enum)\s+([A-Za-z_]\w*)`)
	javaMethRe  = regexp.MustCompile(`^\s*(?:(?:public|protected|private|static|final|synchronized|abstract|native)\s+)+[\w<>\[\],.\s]*?([A-Za-z_]\w*)\s*\([^;]*\)\s*(?:throws\s+[\w.,\s]+)?\{`)
)

type javaRecognizer struct{}

func (javaRecognizer) recognize(lines []string) []types.Entity {
	var entities []types.Entity
	var classes []classSpan

	for i, line := range lines {
		if isBraceComment(line) {
			continue
		}
		if m := javaClassRe.FindStringSubmatch(line); m != nil {
			end := braceBlockEnd(lines, i)
			entities = append(entities, types.Entity{
				Name: m[1], Kind: types.KindClass, StartLine: i + 1, EndLine: end + 1,
			})
			classes = append(classes, classSpan{start: i, end: end})
			continue
		}
		if insideClass(classes, i) {
			if m := javaMethRe.FindStringSubmatch(line); m != nil && !isControlKeyword(m[1]) {
				entities = append(entities, spanEntity(lines, i, m[1], types.KindMethod))
			}
		}
	}
	return entities
}

// C / C++ declarations.
var (
	cClassRe = regexp.MustCompile(`^(?:class|struct)\s+([A-Za-z_]\w*)\s*(?::[^;{]*)?\{`)
	cFuncRe  = regexp.MustCompile(`^[A-Za-z_][\w\s*&:<>,]*[\s*&]([A-Za-z_]\w*)\s*\([^;]*\)\s*\{?\s*$`)
)

type cRecognizer struct{}

func (cRecognizer) recognize(lines []string) []types.Entity {
	var entities []types.Entity
	var classes []classSpan

	for i, line := range lines {
		if isBraceComment(line) || strings.HasPrefix(strings.TrimSpace(line), "#") {
			continue
		}
		if m := cClassRe.FindStringSubmatch(line); m != nil {
			end := braceBlockEnd(lines, i)
			entities = append(entities, types.Entity{
				Name: m[1], Kind: types.KindClass, StartLine: i + 1, EndLine: end + 1,
			})
			classes = append(classes, classSpan{start: i, end: end})
			continue
		}
		m := cFuncRe.FindStringSubmatch(line)
		if m == nil || isControlKeyword(m[1]) || strings.Contains(line, "=") {
			continue
		}
		// A declaration header must open a body, either on this line
		// or on the next non-blank one.
		if !strings.Contains(line, "{") && !nextLineOpensBrace(lines, i) {
			continue
		}
		kind := types.KindFunction
		if insideClass(classes, i) {
			kind = types.KindMethod
		}
		entities = append(entities, spanEntity(lines, i, m[1], kind))
	}
	return entities
}

// spanEntity builds an entity whose end line is found by brace balance.
func spanEntity(lines []string, start int, name string, kind types.EntityKind) types.Entity {
	return types.Entity{
		Name:      name,
		Kind:      kind,
		StartLine: start + 1,
		EndLine:   braceBlockEnd(lines, start) + 1,
	}
}

// braceBlockEnd returns the 0-based index of the line that closes the
// brace block opened at or just after start. When no opening brace is
// seen within a few lines, or the block never balances, the start index
// is returned (zero-length span).
func braceBlockEnd(lines []string, start int) int {
	depth := 0
	opened := false
	for i := start; i < len(lines); i++ {
		for _, ch := range lines[i] {
			switch ch {
			case '{':
				depth++
				opened = true
			case '}':
				if opened {
					depth--
					if depth <= 0 {
						return i
					}
				}
			}
		}
		if !opened && i >= start+2 {
			return start
		}
	}
	return start
}

func nextLineOpensBrace(lines []string, i int) bool {
	for j := i + 1; j < len(lines); j++ {
		trimmed := strings.TrimSpace(lines[j])
		if trimmed == "" {
			continue
		}
		return strings.HasPrefix(trimmed, "{")
	}
	return false
}

func isBraceComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return strings.HasPrefix(trimmed, "//") ||
		strings.HasPrefix(trimmed, "/*") ||
		strings.HasPrefix(trimmed, "*")
}

func isControlKeyword(name string) bool {
	switch name {
	case "if", "else", "for", "while", "switch", "catch", "return", "do", "sizeof", "new":
		return true
	}
	return false
}
