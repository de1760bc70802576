package tray

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/getlantern/systray"

	"github.com/watchfire-io/wallboard/internal/models"
)

// DefaultTooltip is shown until the first tooltip update arrives.
const DefaultTooltip = "Agent Wallboard - Desktop App"

var (
	state   AppState
	onStart func()
	onExit  func()
	logger  = slog.Default()

	mu      sync.Mutex
	ready   bool
	tooltip = DefaultTooltip

	agentItem   *systray.MenuItem
	showItem    *systray.MenuItem
	statusMenu  *systray.MenuItem
	statusItems [3]*systray.MenuItem
	quitItem    *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called once the tray is ready; onExitFn when it exits.
func Run(s AppState, l *slog.Logger, onStartFn, onExitFn func()) {
	state = s
	if l != nil {
		logger = l.With("component", "tray")
	}
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

// Surface is the tray as seen by the dispatcher.
type Surface struct{}

// SetTooltip replaces the tooltip and refreshes the menu. Updates made before
// the tray is ready are kept and applied once it is.
func (Surface) SetTooltip(text string) {
	mu.Lock()
	defer mu.Unlock()

	tooltip = text
	if !ready {
		return
	}
	systray.SetTooltip(text)
	refreshLocked()
}

func onReady() {
	mu.Lock()

	systray.SetTooltip(tooltip)

	header := systray.AddMenuItem("Agent Wallboard", "")
	header.Disable()

	agentItem = systray.AddMenuItem("No agent", "Agent changed by the status menu")
	agentItem.Disable()

	systray.AddSeparator()

	showItem = systray.AddMenuItem("📊 Show Wallboard", "Open the wallboard view")
	statusMenu = systray.AddMenuItem("🔄 Change Status", "Change the tray agent's status")
	for i, status := range models.AgentStatuses {
		statusItems[i] = statusMenu.AddSubMenuItemCheckbox(formatStatusTitle(status), "", false)
	}

	systray.AddSeparator()

	quitItem = systray.AddMenuItem("❌ Quit", "Quit Agent Wallboard")

	ready = true
	refreshLocked()
	mu.Unlock()

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	mu.Lock()
	ready = false
	mu.Unlock()

	if onExit != nil {
		onExit()
	}
}

func handleClicks() {
	for {
		select {
		case <-showItem.ClickedCh:
			if state != nil {
				state.ShowWallboard()
			}

		case <-statusItems[0].ClickedCh:
			changeStatus(models.AgentStatuses[0])
		case <-statusItems[1].ClickedCh:
			changeStatus(models.AgentStatuses[1])
		case <-statusItems[2].ClickedCh:
			changeStatus(models.AgentStatuses[2])

		case <-quitItem.ClickedCh:
			logger.Info("quit requested from tray")
			if state != nil {
				state.RequestShutdown()
			}
			return
		}
	}
}

func changeStatus(status models.AgentStatus) {
	if state == nil {
		return
	}
	logger.Info("status change from tray", "status", string(status))
	state.ChangeStatus(status)
}

// refreshLocked syncs the agent label, checkmarks and icon with the app state.
func refreshLocked() {
	if state == nil {
		systray.SetIcon(iconFor(0))
		return
	}

	systray.SetIcon(iconFor(state.AvailableCount()))

	agent, ok := state.TrayAgent()
	if !ok {
		agentItem.SetTitle("No agent")
		statusMenu.Disable()
		return
	}
	statusMenu.Enable()
	agentItem.SetTitle(formatAgentTitle(agent))
	for i, status := range models.AgentStatuses {
		if agent.Status == status {
			statusItems[i].Check()
		} else {
			statusItems[i].Uncheck()
		}
	}
}

func formatStatusTitle(status models.AgentStatus) string {
	switch status {
	case models.AgentStatusAvailable:
		return "🟢 Available"
	case models.AgentStatusBusy:
		return "🔴 Busy"
	case models.AgentStatusBreak:
		return "🟡 Break"
	default:
		return string(status)
	}
}

func formatAgentTitle(agent models.Agent) string {
	return fmt.Sprintf("%s - %s", agent.Name, agent.Status)
}
