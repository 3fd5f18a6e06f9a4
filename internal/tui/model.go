package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/internal/tui/views"
)

// appState represents which view is currently active.
type appState int

const (
	statePath    appState = iota // Project directory input
	stateScan                    // Analysis in progress
	stateResults                 // Report browser
)

// Model is the root Bubble Tea model that manages view transitions.
type Model struct {
	state  appState
	opts   analysis.Options
	width  int
	height int

	// Sub-models for each view.
	path    views.PathModel
	scan    views.ScanModel
	results views.ResultsModel
}

// NewModel creates a root model with the given analysis options and
// initial project path.
func NewModel(opts analysis.Options, root string) Model {
	return Model{
		state: statePath,
		opts:  opts,
		path:  views.NewPathModel(root),
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return m.path.Init()
}

// Update handles messages and manages state transitions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m.handleBack()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}

	switch m.state {
	case statePath:
		return m.updatePath(msg)
	case stateScan:
		return m.updateScan(msg)
	case stateResults:
		return m.updateResults(msg)
	}

	return m, nil
}

// View renders the current view.
func (m Model) View() string {
	switch m.state {
	case statePath:
		return m.path.View()
	case stateScan:
		return m.scan.View()
	case stateResults:
		return m.results.View()
	}
	return ""
}

func (m Model) handleBack() (tea.Model, tea.Cmd) {
	if m.state == stateResults {
		m.state = statePath
		return m, m.path.Init()
	}
	return m, nil
}

func (m Model) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		root, err := m.path.ValidatedPath()
		if err == nil {
			m.scan = views.NewScanModel(m.opts, root)
			m.state = stateScan
			return m, m.scan.Init()
		}
	}

	updated, cmd := m.path.Update(msg)
	m.path = updated.(views.PathModel)
	return m, cmd
}

func (m Model) updateScan(msg tea.Msg) (tea.Model, tea.Cmd) {
	if scanMsg, ok := msg.(views.ScanCompleteMsg); ok {
		m.results = views.NewResultsModel(scanMsg.Report)
		m.state = stateResults
		return m, nil
	}

	updated, cmd := m.scan.Update(msg)
	m.scan = updated.(views.ScanModel)
	return m, cmd
}

func (m Model) updateResults(msg tea.Msg) (tea.Model, tea.Cmd) {
	updated, cmd := m.results.Update(msg)
	m.results = updated.(views.ResultsModel)
	return m, cmd
}
