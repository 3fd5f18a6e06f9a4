package extract

import (
	"regexp"
	"strings"

	"github.com/buemura/scout/pkg/types"
)

var (
	pyClassRe = regexp.MustCompile(`^(\s*)class\s+([A-Za-z_]\w*)\s*[(:]`)
	pyDefRe   = regexp.MustCompile(`^(\s*)(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)
)

// pythonRecognizer matches def/class headers and closes blocks by
// indentation.
type pythonRecognizer struct{}

func (pythonRecognizer) recognize(lines []string) []types.Entity {
	var entities []types.Entity
	var classes []classSpan

	for i, line := range lines {
		if m := pyClassRe.FindStringSubmatch(line); m != nil {
			indent := indentWidth(m[1])
			end := pyBlockEnd(lines, i, indent)
			entities = append(entities, types.Entity{
				Name:      m[2],
				Kind:      types.KindClass,
				StartLine: i + 1,
				EndLine:   end + 1,
			})
			classes = append(classes, classSpan{indent: indent, start: i, end: end})
			continue
		}

		if m := pyDefRe.FindStringSubmatch(line); m != nil {
			indent := indentWidth(m[1])
			end := pyBlockEnd(lines, i, indent)
			kind := types.KindFunction
			for _, c := range classes {
				if i > c.start && i <= c.end && indent > c.indent {
					kind = types.KindMethod
					break
				}
			}
			entities = append(entities, types.Entity{
				Name:      m[2],
				Kind:      kind,
				StartLine: i + 1,
				EndLine:   end + 1,
			})
		}
	}

	return entities
}

// pyBlockEnd returns the 0-based index of the last line belonging to
// the block declared at start with the given indent. Blank and comment
// lines never terminate a block. When the block has no body the end
// equals the start (zero-length span).
func pyBlockEnd(lines []string, start, indent int) int {
	end := start
	for i := start + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if indentWidth(lines[i]) <= indent {
			break
		}
		end = i
	}
	return end
}

// indentWidth measures leading whitespace; tabs count as four spaces.
func indentWidth(s string) int {
	n := 0
	for _, r := range s {
		switch r {
		case ' ':
			n++
		case '\t':
			n += 4
		default:
			return n
		}
	}
	return n
}
