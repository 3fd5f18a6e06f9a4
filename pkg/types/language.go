package types

import (
	"path/filepath"
	"strings"
)

// Language is the detected language of a scanned file.
type Language string

const (
	LangPython     Language = "Python"
	LangGo         Language = "Go"
	LangJavaScript Language = "JavaScript"
	LangTypeScript Language = "TypeScript"
	LangJava       Language = "Java"
	LangC          Language = "C"
	LangCPP        Language = "C++"
	LangJSON       Language = "JSON"
	LangYAML       Language = "YAML"
	LangMarkdown   Language = "Markdown"
	LangHTML       Language = "HTML"
	LangCSS        Language = "CSS"
	LangText       Language = "Text"
	LangUnknown    Language = "unknown"
)

var extLanguages = map[string]Language{
	".py":   LangPython,
	".go":   LangGo,
	".js":   LangJavaScript,
	".jsx":  LangJavaScript,
	".ts":   LangTypeScript,
	".tsx":  LangTypeScript,
	".java": LangJava,
	".c":    LangC,
	".h":    LangC,
	".cpp":  LangCPP,
	".cc":   LangCPP,
	".hpp":  LangCPP,
	".json": LangJSON,
	".yaml": LangYAML,
	".yml":  LangYAML,
	".md":   LangMarkdown,
	".html": LangHTML,
	".css":  LangCSS,
	".txt":  LangText,
}

// DetectLanguage maps a file path to a Language by extension.
func DetectLanguage(path string) Language {
	ext := strings.ToLower(filepath.Ext(path))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return LangUnknown
}

// Analyzable reports whether entity extraction and heuristic rules
// run for this language.
func (l Language) Analyzable() bool {
	switch l {
	case LangPython, LangGo, LangJavaScript, LangTypeScript, LangJava, LangC, LangCPP:
		return true
	}
	return false
}

// Braced reports whether the language delimits bodies with braces.
// Python is the only indentation-delimited language recognized.
func (l Language) Braced() bool {
	switch l {
	case LangGo, LangJavaScript, LangTypeScript, LangJava, LangC, LangCPP, LangCSS:
		return true
	}
	return false
}

// CommentStyle describes a language's comment markers.
type CommentStyle struct {
	Line       []string
	BlockOpen  string
	BlockClose string
}

// Comments returns the comment markers for the language. Languages
// without comment syntax return an empty style.
func (l Language) Comments() CommentStyle {
	switch l {
	case LangPython, LangYAML:
		return CommentStyle{Line: []string{"#"}}
	case LangGo, LangJavaScript, LangTypeScript, LangJava, LangC, LangCPP:
		return CommentStyle{Line: []string{"//"}, BlockOpen: "/*", BlockClose: "*/"}
	case LangCSS:
		return CommentStyle{BlockOpen: "/*", BlockClose: "*/"}
	case LangHTML, LangMarkdown:
		return CommentStyle{BlockOpen: "<!--", BlockClose: "-->"}
	}
	return CommentStyle{}
}
