package views

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/buemura/scout/internal/analysis"
	"github.com/buemura/scout/internal/tui/styles"
	"github.com/buemura/scout/pkg/types"
)

// ScanCompleteMsg is sent when an analysis finishes.
type ScanCompleteMsg struct {
	Report *types.ProjectReport
}

// scanErrorMsg is sent when an analysis fails.
type scanErrorMsg struct {
	err error
}

// ScanModel is the view model for the analysis-in-progress view.
type ScanModel struct {
	spinner spinner.Model
	opts    analysis.Options
	root    string
	done    bool
	err     string
}

// NewScanModel creates a progress view that will analyze root.
func NewScanModel(opts analysis.Options, root string) ScanModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(styles.ColorAccent)

	return ScanModel{
		spinner: sp,
		opts:    opts,
		root:    root,
	}
}

// Init starts the spinner and launches the analysis.
func (m ScanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan())
}

// Update handles spinner ticks and scan completion.
func (m ScanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ScanCompleteMsg:
		m.done = true
		return m, nil

	case scanErrorMsg:
		m.done = true
		m.err = msg.err.Error()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

// View renders the analysis progress.
func (m ScanModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scout — Interactive Mode"))
	b.WriteString("\n\n")

	if m.done {
		if m.err != "" {
			b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("Analysis failed: %s", m.err)))
		} else {
			b.WriteString("Analysis complete.\n")
		}
	} else {
		b.WriteString(fmt.Sprintf("%s Analyzing %s...\n",
			m.spinner.View(),
			styles.SelectedStyle.Render(m.root)))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("ctrl+c quit"))

	return b.String()
}

func (m ScanModel) runScan() tea.Cmd {
	opts := m.opts
	root := m.root
	return func() tea.Msg {
		scanner, err := analysis.NewScanner(opts)
		if err != nil {
			return scanErrorMsg{err: err}
		}

		report, err := scanner.Scan(context.Background(), root)
		if err != nil {
			return scanErrorMsg{err: err}
		}
		return ScanCompleteMsg{Report: report}
	}
}
