package wallboard

import (
	"fmt"

	"github.com/watchfire-io/wallboard/internal/models"
)

// NotificationTitle is the title used for agent status and event notifications.
const NotificationTitle = "Agent Wallboard Update"

// Tooltip formats the tray tooltip for the given number of available agents.
func Tooltip(available int) string {
	return fmt.Sprintf("Agent Wallboard - %d available", available)
}

// StatusNotification builds the notification announcing ev.
func StatusNotification(ev StatusChangeEvent) models.Notification {
	return models.Notification{
		Title: NotificationTitle,
		Body:  fmt.Sprintf("%s changed status to %s", ev.AgentName, ev.NewStatus),
	}
}
