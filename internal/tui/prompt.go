package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type promptKind int

const (
	promptExport promptKind = iota
	promptImport
)

// PathPrompt asks for a file path for export or import.
type PathPrompt struct {
	kind  promptKind
	input textinput.Model
}

// NewPathPrompt creates a focused prompt prefilled with value.
func NewPathPrompt(kind promptKind, value string) *PathPrompt {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 512
	ti.Width = 48
	ti.Placeholder = "agents.csv"
	ti.SetValue(value)
	ti.CursorEnd()
	ti.Focus()
	return &PathPrompt{kind: kind, input: ti}
}

// Value returns the entered path.
func (p *PathPrompt) Value() string {
	return p.input.Value()
}

// Update forwards a message to the text input.
func (p *PathPrompt) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

// View renders the prompt box.
func (p *PathPrompt) View() string {
	title := "Export agents to"
	if p.kind == promptImport {
		title = "Import agents from"
	}
	hint := summaryStyle.Render(".csv/.txt = name,status lines · .json · .xlsx   Enter confirm · Esc cancel")
	return promptBoxStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(title),
		p.input.View(),
		hint,
	))
}
