// Package analysis implements the project scanner: it walks a source
// tree, runs entity extraction, metrics, and heuristic rules per file,
// and assembles the immutable ProjectReport.
package analysis

import (
	"errors"

	"github.com/buemura/scout/internal/analysis/rules"
	"github.com/hashicorp/go-hclog"
)

// Scan-fatal errors. Per-file conditions never surface here; they
// degrade to low-severity findings on the affected file.
var (
	ErrRootNotFound     = errors.New("root path not found")
	ErrNotADirectory    = errors.New("root path is not a directory")
	ErrPermissionDenied = errors.New("permission denied")
	ErrCancelled        = errors.New("scan cancelled")
)

// Options holds scanner-wide execution parameters.
type Options struct {
	// IgnoreRules are doublestar glob patterns matched against both the
	// base name and the root-relative path of each directory.
	IgnoreRules []string
	// MaxFileSize in bytes; larger files are counted but not analyzed.
	// Zero disables the limit.
	MaxFileSize int64
	Concurrency int
	RuleConfig  *rules.Config
	Logger      hclog.Logger
	// Progress, when set, is called after each file completes. It may
	// be called from multiple goroutines, serialized by the scanner.
	Progress func(done, total int, path string)
}

// DefaultIgnoreRules covers version-control metadata and dependency
// caches.
func DefaultIgnoreRules() []string {
	return []string{".git", "__pycache__", ".venv", "node_modules", ".idea", "build", "dist"}
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		IgnoreRules: DefaultIgnoreRules(),
		MaxFileSize: 1 << 20, // 1 MiB
		Concurrency: 8,
	}
}
