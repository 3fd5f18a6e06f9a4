package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/scout/internal/analysis"
)

// Run starts the interactive TUI with the given analysis options and
// initial project path.
func Run(opts analysis.Options, root string) error {
	m := NewModel(opts, root)
	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}

	return nil
}
