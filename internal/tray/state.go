// Package tray implements the system tray icon and menu.
package tray

import "github.com/watchfire-io/wallboard/internal/models"

// AppState provides the tray with read access to the wallboard and the
// actions its menu triggers.
type AppState interface {
	// TrayAgent returns the agent the status menu acts on.
	TrayAgent() (models.Agent, bool)
	AvailableCount() int
	// ChangeStatus applies status to the tray agent.
	ChangeStatus(status models.AgentStatus)
	ShowWallboard()
	RequestShutdown()
}
