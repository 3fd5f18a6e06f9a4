package analysis

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buemura/scout/pkg/types"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func newTestScanner(t *testing.T, opts Options) *Scanner {
	t.Helper()
	s, err := NewScanner(opts)
	require.NoError(t, err)
	return s
}

func TestScan_SingleFileProject(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "import os\n\ndef greet(name):\n    return name\n",
	})

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	require.NotNil(t, report)

	require.Len(t, report.Files, 1)
	assert.Equal(t, "a.py", report.Files[0].Path)
	assert.Equal(t, types.LangPython, report.Files[0].Language)
	assert.Equal(t, 4, report.Files[0].Lines)
	assert.NotEmpty(t, report.Files[0].Digest)

	require.Len(t, report.Entities, 1)
	assert.Equal(t, "greet", report.Entities[0].Name)
	assert.Equal(t, types.KindFunction, report.Entities[0].Kind)

	unused := report.FindingsFor("a.py")
	require.NotEmpty(t, unused)
	assert.Equal(t, "unused-import", unused[len(unused)-1].Rule)
	assert.Equal(t, types.SeverityLow, unused[len(unused)-1].Severity)
}

func TestScan_RootNotFound(t *testing.T) {
	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), filepath.Join(t.TempDir(), "missing"))

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrRootNotFound)
}

func TestScan_NotADirectory(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x = 1\n"})

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), filepath.Join(root, "a.py"))

	assert.Nil(t, report)
	assert.ErrorIs(t, err, ErrNotADirectory)
}

func TestScan_Cancelled(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x = 1\n", "b.py": "y = 2\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(ctx, root)

	assert.Nil(t, report, "no partial report on cancellation")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestScan_CancelledAfterFirstFile(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "x = 1\n",
		"b.py": "y = 2\n",
		"c.py": "z = 3\n",
		"d.py": "w = 4\n",
		"e.py": "v = 5\n",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	opts := DefaultOptions()
	opts.Concurrency = 1
	opts.Progress = func(done, total int, path string) {
		if done == 1 {
			cancel()
		}
	}

	s := newTestScanner(t, opts)
	report, err := s.Scan(ctx, root)

	assert.Nil(t, report, "no partial report when cancelled mid-scan")
	assert.ErrorIs(t, err, ErrCancelled)
}

func TestScan_IgnoreRules(t *testing.T) {
	root := writeTree(t, map[string]string{
		"src/a.py":              "x = 1\n",
		"node_modules/dep.js":   "module.exports = 1;\n",
		".git/config":           "[core]\n",
		"__pycache__/a.pyc.txt": "cache\n",
	})

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.Equal(t, "src/a.py", report.Files[0].Path)
}

func TestScan_OversizedFileCountedNotAnalyzed(t *testing.T) {
	big := "import os\nimport sys\nimport json\n"
	root := writeTree(t, map[string]string{"big.py": big, "small.py": "x = 1\n"})

	opts := DefaultOptions()
	opts.MaxFileSize = 10
	s := newTestScanner(t, opts)

	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	var bigRec types.FileRecord
	for _, f := range report.Files {
		if f.Path == "big.py" {
			bigRec = f
		}
	}
	assert.True(t, bigRec.Skipped)
	assert.Equal(t, 3, bigRec.Lines, "oversized files still contribute line counts")
	assert.Equal(t, 4, report.Totals.Lines)

	assert.Empty(t, report.EntitiesFor("big.py"))
	skipped := report.FindingsFor("big.py")
	require.Len(t, skipped, 1)
	assert.Equal(t, "file-skipped", skipped[0].Rule)
	assert.Equal(t, types.SeverityLow, skipped[0].Severity)
}

func TestScan_BinaryFileDegrades(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "blob.py"), []byte{0x00, 0x01, 0x02, 0xff}, 0o644))

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	require.Len(t, report.Files, 1)
	assert.True(t, report.Files[0].Skipped)

	findings := report.FindingsFor("blob.py")
	require.Len(t, findings, 1)
	assert.Equal(t, "unreadable-file", findings[0].Rule)
}

func TestScan_Deterministic(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py":     "import os\n\ndef f():\n    pass\n",
		"b/c.py":   "# TODO later\n",
		"d.go":     "package d\n\nfunc D() {}\n",
		"notes.md": "# notes\n",
	})

	opts := DefaultOptions()
	opts.Concurrency = 4
	s := newTestScanner(t, opts)

	r1, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	r2, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	assert.Equal(t, r1.Files, r2.Files)
	assert.Equal(t, r1.Entities, r2.Entities)
	assert.Equal(t, r1.Findings, r2.Findings)
	assert.Equal(t, r1.Fingerprint, r2.Fingerprint)
}

func TestScan_NoDanglingReferences(t *testing.T) {
	root := writeTree(t, map[string]string{
		"a.py": "import os\n\nclass A:\n    def m(self):\n        pass\n",
		"b.js": "const x = JSON.parse(raw);\n",
	})

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	known := map[string]bool{}
	for _, f := range report.Files {
		known[f.Path] = true
	}
	for _, e := range report.Entities {
		assert.True(t, known[e.File], "entity %q references unknown file %q", e.Name, e.File)
	}
	for _, f := range report.Findings {
		assert.True(t, known[f.File], "finding %q references unknown file %q", f.Rule, f.File)
	}
}

func TestScan_FindingsSorted(t *testing.T) {
	root := writeTree(t, map[string]string{
		"z.py": "# TODO one\n",
		"a.py": "password = \"supersecret9\"\ndata = json.loads(raw)\n# TODO two\n",
	})

	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), root)
	require.NoError(t, err)

	for i := 1; i < len(report.Findings); i++ {
		prev, cur := report.Findings[i-1], report.Findings[i]
		pr, cr := types.SeverityRank(prev.Severity), types.SeverityRank(cur.Severity)
		require.LessOrEqual(t, pr, cr, "findings ordered by severity")
		if pr == cr {
			require.LessOrEqual(t, prev.File, cur.File)
			if prev.File == cur.File {
				require.LessOrEqual(t, prev.Line, cur.Line)
			}
		}
	}
}

func TestScan_Progress(t *testing.T) {
	root := writeTree(t, map[string]string{"a.py": "x = 1\n", "b.py": "y = 2\n"})

	var calls int
	opts := DefaultOptions()
	opts.Progress = func(done, total int, path string) {
		calls++
		assert.Equal(t, 2, total)
		assert.LessOrEqual(t, done, total)
	}

	s := newTestScanner(t, opts)
	_, err := s.Scan(context.Background(), root)
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
}

func TestScan_EmptyDirectory(t *testing.T) {
	s := newTestScanner(t, DefaultOptions())
	report, err := s.Scan(context.Background(), t.TempDir())
	require.NoError(t, err)

	assert.Empty(t, report.Files)
	assert.Equal(t, 0, report.Totals.Files)
	assert.NotEmpty(t, report.Fingerprint)
}

func TestScan_WrapsSentinels(t *testing.T) {
	s := newTestScanner(t, DefaultOptions())
	_, err := s.Scan(context.Background(), "/definitely/not/here")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrRootNotFound))
	assert.Contains(t, err.Error(), "/definitely/not/here")
}
