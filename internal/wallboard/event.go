package wallboard

import (
	"time"

	"github.com/watchfire-io/wallboard/internal/models"
)

// Origin identifies the surface that initiated a status change.
type Origin string

const (
	OriginUI     Origin = "ui"
	OriginTray   Origin = "tray"
	OriginRemote Origin = "remote" // local control API
)

// NeedsEcho reports whether the UI has to be told about a change from this origin.
// The UI already shows its own edits.
func (o Origin) NeedsEcho() bool {
	return o != OriginUI
}

// StatusChangeEvent describes one applied status change. Events are handed to
// subscribers and then dropped; nothing keeps a history.
type StatusChangeEvent struct {
	ID             string
	AgentName      string
	PreviousStatus models.AgentStatus
	NewStatus      models.AgentStatus
	Origin         Origin
	Timestamp      time.Time
}

// Subscriber receives echo events for changes the UI did not make itself.
// StatusChanged runs while the dispatcher is held and must not dispatch.
type Subscriber interface {
	StatusChanged(ev StatusChangeEvent)
}

// SubscriberFunc adapts a function to the Subscriber interface.
type SubscriberFunc func(ev StatusChangeEvent)

func (f SubscriberFunc) StatusChanged(ev StatusChangeEvent) {
	f(ev)
}
