package prompt

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/hashicorp/go-hclog"
)

// ContextFileName is the default cache file, written next to wherever
// the tool is invoked from.
const ContextFileName = ".scout-context.json"

// Manager persists analysis contexts to a JSON file.
type Manager struct {
	path   string
	logger hclog.Logger
}

// NewManager builds a manager writing to the given path; an empty path
// uses ContextFileName in the working directory.
func NewManager(path string, logger hclog.Logger) *Manager {
	if path == "" {
		path = ContextFileName
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Manager{path: path, logger: logger}
}

// Save writes the context to disk, replacing any previous one.
func (m *Manager) Save(ctx Context) error {
	data, err := json.MarshalIndent(ctx, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding context: %w", err)
	}
	if err := os.WriteFile(m.path, data, 0o644); err != nil {
		return fmt.Errorf("writing context file: %w", err)
	}
	m.logger.Debug("analysis context saved", "project", ctx.ProjectName, "path", m.path)
	return nil
}

// Load reads the cached context. A missing file is not an error; it
// returns (nil, nil).
func (m *Manager) Load() (*Context, error) {
	data, err := os.ReadFile(m.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading context file: %w", err)
	}

	var ctx Context
	if err := json.Unmarshal(data, &ctx); err != nil {
		return nil, fmt.Errorf("decoding context file: %w", err)
	}
	return &ctx, nil
}

// Stale reports whether the cached context no longer matches the given
// report fingerprint. A missing cache counts as stale.
func (m *Manager) Stale(fingerprint string) bool {
	ctx, err := m.Load()
	if err != nil || ctx == nil {
		return true
	}
	return ctx.Fingerprint != fingerprint
}

// Clear removes the cached context if present.
func (m *Manager) Clear() error {
	err := os.Remove(m.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
