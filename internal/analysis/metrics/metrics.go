// Package metrics computes simple per-file line counts.
package metrics

import (
	"strings"

	"github.com/buemura/scout/pkg/types"
)

// Counts holds the line metrics for one file.
type Counts struct {
	Lines        int
	BlankLines   int
	CommentLines int
}

// Measure counts total, blank, and comment lines in the given text
// using the language's comment markers. A line inside a block comment
// that also contains code still counts as a comment line. Measure
// always succeeds; undecodable input is the caller's concern.
func Measure(text string, lang types.Language) Counts {
	var c Counts
	if text == "" {
		return c
	}

	style := lang.Comments()
	lines := splitLines(text)
	c.Lines = len(lines)

	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			c.BlankLines++
			if inBlock {
				c.CommentLines++
			}
			continue
		}

		isComment := inBlock
		if inBlock {
			if style.BlockClose != "" && strings.Contains(trimmed, style.BlockClose) {
				inBlock = false
			}
		} else {
			for _, marker := range style.Line {
				if strings.HasPrefix(trimmed, marker) {
					isComment = true
					break
				}
			}
			if style.BlockOpen != "" {
				if idx := strings.Index(trimmed, style.BlockOpen); idx >= 0 {
					isComment = true
					rest := trimmed[idx+len(style.BlockOpen):]
					if !strings.Contains(rest, style.BlockClose) {
						inBlock = true
					}
				}
			}
		}

		if isComment {
			c.CommentLines++
		}
	}

	return c
}

// splitLines splits text into lines without producing a phantom empty
// line after a trailing newline.
func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// SplitLines is the exported line splitter shared by the extractor and
// rule battery so all components agree on line numbering.
func SplitLines(text string) []string {
	return splitLines(text)
}
