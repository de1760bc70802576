// Package notify delivers desktop notifications through the native notification service.
package notify

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/watchfire-io/wallboard/internal/models"
)

// AppName is reported to the notification service as the sender.
const AppName = "Agent Wallboard"

type sendFunc func(title, message string, icon any) error

// Gateway submits notifications to the desktop. It is safe for concurrent use.
type Gateway struct {
	mu      sync.RWMutex
	enabled bool
	icon    string
	logger  *slog.Logger

	notify sendFunc
	alert  sendFunc
}

// New creates a gateway backed by beeep.
func New(enabled bool, icon string, logger *slog.Logger) *Gateway {
	beeep.AppName = AppName
	if logger == nil {
		logger = slog.Default()
	}
	return &Gateway{
		enabled: enabled,
		icon:    icon,
		logger:  logger.With("component", "notify"),
		notify:  beeep.Notify,
		alert:   beeep.Alert,
	}
}

// SetEnabled turns delivery on or off. Disabled gateways accept and drop notifications.
func (g *Gateway) SetEnabled(enabled bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.enabled = enabled
}

// SetIcon changes the icon path shown with notifications.
func (g *Gateway) SetIcon(icon string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.icon = icon
}

// Enabled reports whether notifications are delivered.
func (g *Gateway) Enabled() bool {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.enabled
}

// Submit shows n. Urgent notifications use the alert variant, which also plays a sound.
func (g *Gateway) Submit(ctx context.Context, n models.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	g.mu.RLock()
	enabled, icon := g.enabled, g.icon
	g.mu.RUnlock()

	if !enabled {
		g.logger.Debug("notification muted", "title", n.Title)
		return nil
	}

	send := g.notify
	if n.Urgent {
		send = g.alert
	}
	if err := send(n.Title, n.Body, icon); err != nil {
		return fmt.Errorf("failed to show notification %q: %w", n.Title, err)
	}
	g.logger.Debug("notification shown", "title", n.Title, "urgent", n.Urgent)
	return nil
}
