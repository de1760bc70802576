package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/wallboard/internal/models"
)

// AgentList is the scrolling list of agents with a cursor.
type AgentList struct {
	agents       []models.Agent
	cursor       int
	scrollOffset int
	height       int
}

// NewAgentList creates an empty agent list.
func NewAgentList() *AgentList {
	return &AgentList{}
}

// SetAgents replaces the rows, keeping the cursor on the same agent name when possible.
func (al *AgentList) SetAgents(agents []models.Agent) {
	selected := ""
	if a, ok := al.Selected(); ok {
		selected = a.Name
	}

	al.agents = agents
	for i, a := range agents {
		if a.Name == selected {
			al.cursor = i
			break
		}
	}
	if al.cursor >= len(al.agents) {
		al.cursor = len(al.agents) - 1
	}
	if al.cursor < 0 {
		al.cursor = 0
	}
	al.ensureVisible()
}

// SetHeight sets the number of visible rows.
func (al *AgentList) SetHeight(h int) {
	al.height = h
	al.ensureVisible()
}

// Selected returns the agent under the cursor.
func (al *AgentList) Selected() (models.Agent, bool) {
	if al.cursor < 0 || al.cursor >= len(al.agents) {
		return models.Agent{}, false
	}
	return al.agents[al.cursor], true
}

// MoveUp moves the cursor up.
func (al *AgentList) MoveUp() {
	if al.cursor > 0 {
		al.cursor--
	}
	al.ensureVisible()
}

// MoveDown moves the cursor down.
func (al *AgentList) MoveDown() {
	if al.cursor < len(al.agents)-1 {
		al.cursor++
	}
	al.ensureVisible()
}

func (al *AgentList) ensureVisible() {
	if al.height <= 0 {
		return
	}
	if al.cursor < al.scrollOffset {
		al.scrollOffset = al.cursor
	}
	if al.cursor >= al.scrollOffset+al.height {
		al.scrollOffset = al.cursor - al.height + 1
	}
}

// View renders the visible rows at the given width.
func (al *AgentList) View(width int) string {
	if len(al.agents) == 0 {
		return summaryStyle.Render("  No agents")
	}

	end := len(al.agents)
	if al.height > 0 && al.scrollOffset+al.height < end {
		end = al.scrollOffset + al.height
	}

	nameWidth := width - 18
	if nameWidth < 8 {
		nameWidth = 8
	}

	var b strings.Builder
	for i := al.scrollOffset; i < end; i++ {
		a := al.agents[i]
		name := ansi.Truncate(a.Name, nameWidth, "…")
		marker := "  "
		style := rowStyle
		if i == al.cursor {
			marker = "▸ "
			style = selectedRowStyle
		}
		fmt.Fprintf(&b, "%s%s %s", marker, style.Render(padRight(name, nameWidth)), statusBadge(a.Status))
		if i < end-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

// nextStatus cycles through the statuses in menu order.
func nextStatus(current models.AgentStatus, step int) models.AgentStatus {
	n := len(models.AgentStatuses)
	for i, s := range models.AgentStatuses {
		if s == current {
			return models.AgentStatuses[((i+step)%n+n)%n]
		}
	}
	return models.AgentStatuses[0]
}
