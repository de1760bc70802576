package cli

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/watchfire-io/wallboard/internal/models"
)

// Adaptive colors matching the TUI palette.
var (
	colorWhite  = lipgloss.AdaptiveColor{Light: "0", Dark: "15"}
	colorDim    = lipgloss.AdaptiveColor{Light: "242", Dark: "240"}
	colorGreen  = lipgloss.AdaptiveColor{Light: "28", Dark: "40"}
	colorRed    = lipgloss.AdaptiveColor{Light: "160", Dark: "196"}
	colorYellow = lipgloss.AdaptiveColor{Light: "136", Dark: "220"}
	colorCyan   = lipgloss.AdaptiveColor{Light: "30", Dark: "45"}
)

// Semantic styles for CLI output.
var (
	styleBrand   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	styleVersion = lipgloss.NewStyle().Foreground(colorGreen)
	styleLabel   = lipgloss.NewStyle().Foreground(colorDim)
	styleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	styleSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleWarning = lipgloss.NewStyle().Bold(true).Foreground(colorYellow)
	styleHint    = lipgloss.NewStyle().Foreground(colorDim)
)

// Agent status badge styles.
var (
	badgeAvailable = lipgloss.NewStyle().Foreground(colorGreen)
	badgeBusy      = lipgloss.NewStyle().Foreground(colorRed)
	badgeBreak     = lipgloss.NewStyle().Foreground(colorYellow)
)

func statusBadge(status models.AgentStatus) string {
	switch status {
	case models.AgentStatusAvailable:
		return badgeAvailable.Render("● " + string(status))
	case models.AgentStatusBusy:
		return badgeBusy.Render("● " + string(status))
	case models.AgentStatusBreak:
		return badgeBreak.Render("● " + string(status))
	default:
		return styleHint.Render(string(status))
	}
}
