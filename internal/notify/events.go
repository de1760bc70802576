package notify

import (
	"fmt"

	"github.com/watchfire-io/wallboard/internal/models"
)

// EventType is a call-center event announced to the desktop.
type EventType string

const (
	EventLogin        EventType = "login"
	EventLogout       EventType = "logout"
	EventStatusChange EventType = "status_change"
	EventCallReceived EventType = "call_received"
	EventCallEnded    EventType = "call_ended"
)

// EventTitle is the title of agent event notifications.
const EventTitle = "Agent Wallboard Update"

// EventDetails carries optional event data.
type EventDetails struct {
	NewStatus models.AgentStatus
	Duration  int // seconds, 0 = unknown
}

// EventMessage renders the notification body for an agent event.
// Unknown event types fall back to "agent: type".
func EventMessage(agent string, eventType EventType, details EventDetails) string {
	switch eventType {
	case EventLogin:
		return fmt.Sprintf("🟢 %s logged in", agent)
	case EventLogout:
		return fmt.Sprintf("🔴 %s logged out", agent)
	case EventStatusChange:
		status := string(details.NewStatus)
		if status == "" {
			status = "-"
		}
		return fmt.Sprintf("🔄 %s changed status to %s", agent, status)
	case EventCallReceived:
		return fmt.Sprintf("📞 %s received a new call", agent)
	case EventCallEnded:
		duration := "?"
		if details.Duration > 0 {
			duration = fmt.Sprintf("%d", details.Duration)
		}
		return fmt.Sprintf("📞 %s ended a call (%s seconds)", agent, duration)
	default:
		return fmt.Sprintf("%s: %s", agent, eventType)
	}
}

// EventNotification builds the notification for an agent event.
func EventNotification(agent string, eventType EventType, details EventDetails) models.Notification {
	return models.Notification{
		Title: EventTitle,
		Body:  EventMessage(agent, eventType, details),
	}
}

// HiddenToTray is shown when the wallboard view closes while the tray keeps running.
func HiddenToTray() models.Notification {
	return models.Notification{
		Title: AppName,
		Body:  "Agent Wallboard is still running in the system tray.\nUse the tray menu to reopen it.",
	}
}
