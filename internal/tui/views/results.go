package views

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/scout/internal/tui/styles"
	"github.com/buemura/scout/pkg/types"
)

// ExportFileName is where the results view writes the JSON report.
const ExportFileName = "scout-report.json"

// ResultsModel is the view model for browsing a project report.
type ResultsModel struct {
	report    *types.ProjectReport
	cursor    int
	offset    int
	maxRows   int
	exported  bool
	exportErr string
}

// NewResultsModel creates a results view from a completed report.
func NewResultsModel(report *types.ProjectReport) ResultsModel {
	return ResultsModel{
		report:  report,
		maxRows: 20,
	}
}

// Init returns nil (no initial command).
func (m ResultsModel) Init() tea.Cmd {
	return nil
}

// Update handles key events for scrolling and export.
func (m ResultsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	findings := m.report.Findings

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
				if m.cursor < m.offset {
					m.offset = m.cursor
				}
			}
		case "down", "j":
			if m.cursor < len(findings)-1 {
				m.cursor++
				if m.cursor >= m.offset+m.maxRows {
					m.offset = m.cursor - m.maxRows + 1
				}
			}
		case "e":
			m.exportJSON()
		case "q":
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the findings table with a detail pane for the selected row.
func (m ResultsModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scout — Project Report"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("%s: %d files, %d lines, %d entities\n\n",
		m.report.Root, m.report.Totals.Files, m.report.Totals.Lines, m.report.Totals.Entities))

	findings := m.report.Findings
	if len(findings) == 0 {
		b.WriteString("No findings discovered.\n")
	} else {
		b.WriteString(m.summaryLine())
		b.WriteString("\n\n")

		header := fmt.Sprintf("  %-10s %-22s %s", "SEVERITY", "RULE", "LOCATION")
		b.WriteString(styles.HeaderStyle.Render(header))
		b.WriteString("\n")
		b.WriteString(strings.Repeat("─", 80))
		b.WriteString("\n")

		end := m.offset + m.maxRows
		if end > len(findings) {
			end = len(findings)
		}

		for i := m.offset; i < end; i++ {
			f := findings[i]
			cursor := "  "
			if i == m.cursor {
				cursor = styles.CursorStyle.Render("> ")
			}

			sevStyle := styles.SeverityStyle(string(f.Severity))
			severity := sevStyle.Render(fmt.Sprintf("%-10s", f.Severity))
			rule := fmt.Sprintf("%-22s", truncate(f.Rule, 22))
			location := styles.HelpStyle.Render(findingLocation(f))

			b.WriteString(fmt.Sprintf("%s%s %s %s\n", cursor, severity, rule, location))
		}

		if len(findings) > m.maxRows {
			b.WriteString(fmt.Sprintf("\n  Showing %d-%d of %d findings\n",
				m.offset+1, end, len(findings)))
		}
	}

	if len(findings) > 0 && m.cursor < len(findings) {
		b.WriteString("\n")
		b.WriteString(m.detailView(findings[m.cursor]))
	}

	if m.exported {
		b.WriteString("\n")
		b.WriteString(styles.SelectedStyle.Render("Report exported to " + ExportFileName))
	}
	if m.exportErr != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.exportErr))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("↑/↓ scroll • e export JSON • esc rescan • q quit"))

	return b.String()
}

func (m ResultsModel) summaryLine() string {
	parts := []string{}
	for _, sev := range types.Severities() {
		if c := m.report.Totals.BySeverity[sev]; c > 0 {
			style := styles.SeverityStyle(string(sev))
			parts = append(parts, style.Render(fmt.Sprintf("%s: %d", sev, c)))
		}
	}
	return fmt.Sprintf("Total: %d findings  [%s]", m.report.Totals.Findings, strings.Join(parts, "  "))
}

func (m ResultsModel) detailView(f types.Finding) string {
	detail := fmt.Sprintf("Rule: %s\nSeverity: %s\nLocation: %s\nMessage: %s",
		f.Rule, f.Severity, findingLocation(f), f.Message)

	if entities := m.report.EntitiesFor(f.File); len(entities) > 0 {
		names := make([]string, 0, len(entities))
		for _, e := range entities {
			names = append(names, fmt.Sprintf("%s %s", e.Kind, e.Name))
		}
		detail += "\nEntities: " + truncate(strings.Join(names, ", "), 70)
	}

	return styles.BorderStyle.Render(detail)
}

func findingLocation(f types.Finding) string {
	if f.Line == 0 {
		return f.File
	}
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

func (m *ResultsModel) exportJSON() {
	data, err := json.MarshalIndent(m.report, "", "  ")
	if err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	if err := os.WriteFile(ExportFileName, data, 0644); err != nil {
		m.exportErr = fmt.Sprintf("export failed: %v", err)
		return
	}

	m.exported = true
	m.exportErr = ""
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
