package wallboard

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no agent has the requested name.
	ErrNotFound = errors.New("agent not found")

	// ErrInvalidStatus is returned for a status outside Available, Busy and Break.
	ErrInvalidStatus = errors.New("invalid status")
)

// NotificationDeliveryFailedError wraps a gateway failure. It is logged by the
// dispatcher and never returned from Dispatch.
type NotificationDeliveryFailedError struct {
	EventID string
	Err     error
}

func (e *NotificationDeliveryFailedError) Error() string {
	return fmt.Sprintf("notification for event %s not delivered: %v", e.EventID, e.Err)
}

func (e *NotificationDeliveryFailedError) Unwrap() error {
	return e.Err
}
