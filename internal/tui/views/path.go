package views

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/buemura/scout/internal/tui/styles"
)

// PathModel is the view model for project directory input.
type PathModel struct {
	textInput textinput.Model
	err       string
}

// NewPathModel creates a new path input view, prefilled with the
// given directory.
func NewPathModel(initial string) PathModel {
	ti := textinput.New()
	ti.Placeholder = "e.g. /home/dev/myproject"
	ti.SetValue(initial)
	ti.Focus()
	ti.CharLimit = 512
	ti.Width = 60
	ti.PromptStyle = styles.CursorStyle
	ti.TextStyle = styles.SelectedStyle

	return PathModel{textInput: ti}
}

// Init returns the text input blink command.
func (m PathModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input events.
func (m PathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "enter" {
		if _, err := m.ValidatedPath(); err != nil {
			m.err = err.Error()
			return m, nil
		}
		m.err = ""
		return m, nil
	}

	var cmd tea.Cmd
	m.textInput, cmd = m.textInput.Update(msg)
	m.err = ""
	return m, cmd
}

// View renders the path input form.
func (m PathModel) View() string {
	var b strings.Builder

	b.WriteString(styles.TitleStyle.Render("Scout — Interactive Mode"))
	b.WriteString("\n\n")
	b.WriteString("Enter project directory to analyze:\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")

	if m.err != "" {
		b.WriteString("\n")
		b.WriteString(styles.ErrorStyle.Render(m.err))
	}

	b.WriteString("\n")
	b.WriteString(styles.HelpStyle.Render("enter scan • ctrl+c quit"))

	return b.String()
}

// ValidatedPath returns the entered path, or an error when it is
// missing or not a directory.
func (m PathModel) ValidatedPath() (string, error) {
	value := strings.TrimSpace(m.textInput.Value())
	if value == "" {
		return "", fmt.Errorf("project path is required")
	}

	info, err := os.Stat(value)
	if err != nil {
		return "", fmt.Errorf("path not found: %s", value)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("not a directory: %s", value)
	}
	return value, nil
}
