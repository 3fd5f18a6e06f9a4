package types

import (
	"sort"
	"time"
)

// Severity represents the severity level of a finding.
type Severity string

const (
	SeverityHigh   Severity = "HIGH"
	SeverityMedium Severity = "MEDIUM"
	SeverityLow    Severity = "LOW"
)

// Severities lists all severity levels, most severe first.
func Severities() []Severity {
	return []Severity{SeverityHigh, SeverityMedium, SeverityLow}
}

// SeverityRank returns a numeric rank for sorting (lower = more severe).
func SeverityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 0
	case SeverityMedium:
		return 1
	case SeverityLow:
		return 2
	default:
		return 3
	}
}

// EntityKind classifies a declared source entity.
type EntityKind string

const (
	KindClass    EntityKind = "class"
	KindFunction EntityKind = "function"
	KindMethod   EntityKind = "method"
)

// FileRecord describes one scanned file. Immutable once produced.
type FileRecord struct {
	Path         string   `json:"path"`
	Language     Language `json:"language"`
	Size         int64    `json:"size"`
	Lines        int      `json:"lines"`
	BlankLines   int      `json:"blank_lines"`
	CommentLines int      `json:"comment_lines"`
	Digest       string   `json:"digest,omitempty"`
	Skipped      bool     `json:"skipped,omitempty"`
}

// Entity is a named, kind-tagged declaration with a 1-based inclusive
// line span. A method's span is positionally contained within its class
// span; there is no explicit parent reference.
type Entity struct {
	Name      string     `json:"name"`
	Kind      EntityKind `json:"kind"`
	File      string     `json:"file"`
	StartLine int        `json:"start_line"`
	EndLine   int        `json:"end_line"`
}

// Finding is a single heuristic-detected issue. Line is 0 when the
// finding applies to the file as a whole.
type Finding struct {
	File     string   `json:"file"`
	Rule     string   `json:"rule"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"`
}

// Totals holds project-level aggregates.
type Totals struct {
	Files      int              `json:"files"`
	Lines      int              `json:"lines"`
	Entities   int              `json:"entities"`
	Findings   int              `json:"findings"`
	BySeverity map[Severity]int `json:"by_severity"`
	ByLanguage map[Language]int `json:"by_language"`
}

// ProjectReport is the complete, immutable output of one scan.
// Files and Entities are in discovery order; Findings are sorted by
// severity descending, then file path, then line.
type ProjectReport struct {
	Root        string        `json:"root"`
	StartedAt   time.Time     `json:"started_at"`
	CompletedAt time.Time     `json:"completed_at"`
	Files       []FileRecord  `json:"files"`
	Entities    []Entity      `json:"entities"`
	Findings    []Finding     `json:"findings"`
	Totals      Totals        `json:"totals"`
	Fingerprint string        `json:"fingerprint"`
}

// SortFindings orders findings in place per the report contract.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		ri, rj := SeverityRank(findings[i].Severity), SeverityRank(findings[j].Severity)
		if ri != rj {
			return ri < rj
		}
		if findings[i].File != findings[j].File {
			return findings[i].File < findings[j].File
		}
		return findings[i].Line < findings[j].Line
	})
}

// EntitiesFor returns the entities declared in the given file, in
// declaration order.
func (r *ProjectReport) EntitiesFor(path string) []Entity {
	var out []Entity
	for _, e := range r.Entities {
		if e.File == path {
			out = append(out, e)
		}
	}
	return out
}

// FindingsFor returns the findings attached to the given file.
func (r *ProjectReport) FindingsFor(path string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.File == path {
			out = append(out, f)
		}
	}
	return out
}
