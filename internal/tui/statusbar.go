package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/watchfire-io/wallboard/internal/models"
	"github.com/watchfire-io/wallboard/internal/wallboard"
)

func renderStatusBar(m *Model, width int) string {
	left := " "
	switch {
	case m.notice != "" && m.noticeErr:
		left += errorStyle.Render("✗ " + m.notice)
	case m.notice != "":
		left += noticeStyle.Render(m.notice)
	case m.opts.TrayRunning:
		left += "q hides to tray · Q quits"
	default:
		left += "q quits"
	}

	right := wallboard.Tooltip(m.dispatcher.Registry().Count(models.AgentStatusAvailable)) + " "

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		left = ansi.Truncate(left, width-lipgloss.Width(right)-1, "…")
		gap = 1
	}
	return statusBarStyle.Width(width).Render(left + spaces(gap) + right)
}

func spaces(n int) string {
	if n <= 0 {
		return ""
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
