package analysis

import (
	"bufio"
	"bytes"
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/cespare/xxhash/v2"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/sync/errgroup"

	"github.com/buemura/scout/internal/analysis/extract"
	"github.com/buemura/scout/internal/analysis/metrics"
	"github.com/buemura/scout/internal/analysis/rules"
	"github.com/buemura/scout/pkg/types"
)

// Scanner orchestrates concurrent per-file analysis of a source tree.
type Scanner struct {
	opts    Options
	battery *rules.Battery
	logger  hclog.Logger
}

// NewScanner builds a scanner from the given options.
func NewScanner(opts Options) (*Scanner, error) {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	battery, err := rules.NewBattery(opts.RuleConfig, opts.Logger.Named("rules"))
	if err != nil {
		return nil, fmt.Errorf("building rule battery: %w", err)
	}

	return &Scanner{opts: opts, battery: battery, logger: opts.Logger}, nil
}

// fileResult is the isolated output buffer of one file's analysis.
type fileResult struct {
	record   types.FileRecord
	entities []types.Entity
	findings []types.Finding
}

// Scan analyzes the tree rooted at root and returns a complete
// ProjectReport, or a scan-fatal error. No partial report is ever
// returned: on error the report is nil.
func (s *Scanner) Scan(ctx context.Context, root string) (*types.ProjectReport, error) {
	startedAt := time.Now()

	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	case os.IsPermission(err):
		return nil, fmt.Errorf("%w: %s", ErrPermissionDenied, root)
	case err != nil:
		return nil, fmt.Errorf("stat %s: %w", root, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: %s", ErrNotADirectory, root)
	}

	paths, err := s.enumerate(ctx, root)
	if err != nil {
		return nil, err
	}

	results := make([]fileResult, len(paths))

	var progressMu sync.Mutex
	done := 0

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Concurrency)

	for i, rel := range paths {
		g.Go(func() error {
			// Cancellation is checked between files, never mid-file.
			if err := gctx.Err(); err != nil {
				return err
			}

			results[i] = s.analyzeFile(root, rel)

			if s.opts.Progress != nil {
				progressMu.Lock()
				done++
				s.opts.Progress(done, len(paths), rel)
				progressMu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCancelled, err)
	}

	files := make([]types.FileRecord, 0, len(results))
	var entities []types.Entity
	var findings []types.Finding
	for _, r := range results {
		files = append(files, r.record)
		entities = append(entities, r.entities...)
		findings = append(findings, r.findings...)
	}

	return Assemble(root, startedAt, files, entities, findings), nil
}

// enumerate walks the tree and returns root-relative paths of regular
// files in lexical (deterministic) order, honoring ignore rules.
func (s *Scanner) enumerate(ctx context.Context, root string) ([]string, error) {
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if path == root {
				return fmt.Errorf("%w: %s", ErrPermissionDenied, root)
			}
			// Unreadable subtree: skip, the scan must survive it.
			s.logger.Debug("skipping unreadable path", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			return nil
		}

		if d.IsDir() {
			if rel != "." && s.ignored(d.Name(), rel) {
				return fs.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: %v", ErrCancelled, ctx.Err())
		}
		return nil, err
	}
	return paths, nil
}

func (s *Scanner) ignored(name, rel string) bool {
	for _, pattern := range s.opts.IgnoreRules {
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, filepath.ToSlash(rel)); ok {
			return true
		}
	}
	return false
}

// analyzeFile produces one file's record, entities, and findings.
// It never fails: unreadable, binary, or oversized files degrade to a
// low-severity finding attached to the record.
func (s *Scanner) analyzeFile(root, rel string) fileResult {
	full := filepath.Join(root, filepath.FromSlash(rel))
	lang := types.DetectLanguage(rel)

	record := types.FileRecord{Path: rel, Language: lang}

	info, err := os.Stat(full)
	if err != nil {
		record.Skipped = true
		return fileResult{record: record, findings: []types.Finding{unreadableFinding(rel, err)}}
	}
	record.Size = info.Size()

	if s.opts.MaxFileSize > 0 && info.Size() > s.opts.MaxFileSize {
		// Oversized files still count toward line totals, so the line
		// count is taken by streaming rather than loading the file.
		lines, countErr := countLines(full)
		if countErr != nil {
			record.Skipped = true
			return fileResult{record: record, findings: []types.Finding{unreadableFinding(rel, countErr)}}
		}
		record.Lines = lines
		record.Skipped = true
		return fileResult{record: record, findings: []types.Finding{{
			File:     rel,
			Rule:     "file-skipped",
			Severity: types.SeverityLow,
			Message:  fmt.Sprintf("skipped: too large (%d bytes, limit %d)", info.Size(), s.opts.MaxFileSize),
		}}}
	}

	data, err := os.ReadFile(full)
	if err != nil {
		record.Skipped = true
		return fileResult{record: record, findings: []types.Finding{unreadableFinding(rel, err)}}
	}

	if isBinary(data) {
		record.Skipped = true
		return fileResult{record: record, findings: []types.Finding{{
			File:     rel,
			Rule:     "unreadable-file",
			Severity: types.SeverityLow,
			Message:  "binary or undecodable file",
		}}}
	}

	sum := xxhash.Sum64(data)
	var digest [8]byte
	for i := 0; i < 8; i++ {
		digest[i] = byte(sum >> (56 - 8*i))
	}
	record.Digest = hex.EncodeToString(digest[:])

	text := string(data)
	counts := metrics.Measure(text, lang)
	record.Lines = counts.Lines
	record.BlankLines = counts.BlankLines
	record.CommentLines = counts.CommentLines

	if !lang.Analyzable() {
		return fileResult{record: record}
	}

	entities := extract.Extract(rel, text, lang)
	findings := s.battery.Check(rules.Input{
		Path:     rel,
		Text:     text,
		Lines:    metrics.SplitLines(text),
		Language: lang,
		Entities: entities,
	})

	return fileResult{record: record, entities: entities, findings: findings}
}

func unreadableFinding(rel string, err error) types.Finding {
	return types.Finding{
		File:     rel,
		Rule:     "unreadable-file",
		Severity: types.SeverityLow,
		Message:  fmt.Sprintf("unreadable file: %v", err),
	}
}

// isBinary applies the usual null-byte sniff plus a UTF-8 validity
// check on the full contents.
func isBinary(data []byte) bool {
	probe := data
	if len(probe) > 512 {
		probe = probe[:512]
	}
	if bytes.IndexByte(probe, 0) >= 0 {
		return true
	}
	return !utf8.Valid(data)
}

// countLines counts lines without holding the file in memory.
func countLines(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := bufio.NewReader(f)
	lines := 0
	lastByte := byte('\n')
	for {
		chunk, err := r.ReadBytes('\n')
		if len(chunk) > 0 {
			lastByte = chunk[len(chunk)-1]
			if lastByte == '\n' {
				lines++
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, err
		}
	}
	if lastByte != '\n' {
		lines++ // final line without trailing newline
	}
	return lines, nil
}
