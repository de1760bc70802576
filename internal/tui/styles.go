package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/wallboard/internal/models"
)

// Colors using AdaptiveColor for light/dark terminal support.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)

	summaryStyle = lipgloss.NewStyle().Foreground(colorDim)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.AdaptiveColor{Light: "235", Dark: "236"})

	noticeStyle = lipgloss.NewStyle().Foreground(colorGreen)
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(colorRed)

	selectedRowStyle = lipgloss.NewStyle().Bold(true).Foreground(colorWhite)
	rowStyle         = lipgloss.NewStyle().Foreground(colorWhite)

	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorCyan).
			Padding(0, 1)
)

// Status badge styles.
var (
	badgeAvailable = lipgloss.NewStyle().Foreground(colorGreen)
	badgeBusy      = lipgloss.NewStyle().Foreground(colorRed)
	badgeBreak     = lipgloss.NewStyle().Foreground(colorYellow)
)

func statusBadge(status models.AgentStatus) string {
	switch status {
	case models.AgentStatusAvailable:
		return badgeAvailable.Render("● Available")
	case models.AgentStatusBusy:
		return badgeBusy.Render("● Busy")
	case models.AgentStatusBreak:
		return badgeBreak.Render("● Break")
	default:
		return string(status)
	}
}
