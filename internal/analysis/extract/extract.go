// Package extract recognizes declared source entities (classes,
// functions, methods) using per-language line patterns. It is a
// deliberate pattern-match, not a parse: one engine covers many
// languages at the cost of precision on exotic syntax.
package extract

import (
	"github.com/buemura/scout/internal/analysis/metrics"
	"github.com/buemura/scout/pkg/types"
)

// recognizer is a stateless per-language pattern matcher.
type recognizer interface {
	recognize(lines []string) []types.Entity
}

// Extract returns the declared entities of the file in declaration
// order, with Entity.File set to path. Unsupported languages yield an
// empty result, never an error.
func Extract(path, text string, lang types.Language) []types.Entity {
	var r recognizer
	switch lang {
	case types.LangPython:
		r = pythonRecognizer{}
	case types.LangGo:
		r = goRecognizer{}
	case types.LangJavaScript, types.LangTypeScript:
		r = scriptRecognizer{}
	case types.LangJava:
		r = javaRecognizer{}
	case types.LangC, types.LangCPP:
		r = cRecognizer{}
	default:
		return nil
	}

	entities := r.recognize(metrics.SplitLines(text))
	for i := range entities {
		entities[i].File = path
	}
	return entities
}

// classSpan records where a class body lives so later declarations can
// be classified as methods by position.
type classSpan struct {
	indent int
	start  int // 0-based line index of the declaration
	end    int // 0-based line index of the last body line
}

func insideClass(classes []classSpan, line int) bool {
	for _, c := range classes {
		if line > c.start && line <= c.end {
			return true
		}
	}
	return false
}
