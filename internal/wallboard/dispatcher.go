package wallboard

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/watchfire-io/wallboard/internal/models"
)

// NotificationGateway delivers desktop notifications. Delivery is best effort.
type NotificationGateway interface {
	Submit(ctx context.Context, n models.Notification) error
}

// TraySurface is the part of the tray the dispatcher updates.
type TraySurface interface {
	SetTooltip(text string)
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for dispatch and delivery failures.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		d.logger = logger
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(d *Dispatcher) {
		d.now = now
	}
}

type subscription struct {
	id  int
	sub Subscriber
}

// Dispatcher is the only writer of the registry. Every status change, whatever
// its origin, goes through Dispatch so the mutation and its side effects
// (tooltip, notification, echo) always happen together and in order.
type Dispatcher struct {
	mu       sync.Mutex
	registry *Registry
	gateway  NotificationGateway
	tray     TraySurface
	logger   *slog.Logger
	now      func() time.Time

	subMu       sync.Mutex
	subscribers []subscription
	nextSubID   int
}

// NewDispatcher creates a dispatcher over the given registry. A nil gateway or
// tray is replaced by a no-op.
func NewDispatcher(registry *Registry, gateway NotificationGateway, tray TraySurface, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: registry,
		gateway:  gateway,
		tray:     tray,
		logger:   slog.Default(),
		now:      time.Now,
	}
	if d.gateway == nil {
		d.gateway = nopGateway{}
	}
	if d.tray == nil {
		d.tray = nopTray{}
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = d.logger.With("component", "dispatcher")
	return d
}

// Registry returns the registry this dispatcher writes to. Callers may read it freely.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Subscribe registers s for echo events and returns a function that removes it.
// Subscribers are notified in subscription order.
func (d *Dispatcher) Subscribe(s Subscriber) (unsubscribe func()) {
	d.subMu.Lock()
	defer d.subMu.Unlock()

	d.nextSubID++
	id := d.nextSubID
	d.subscribers = append(d.subscribers, subscription{id: id, sub: s})

	return func() {
		d.subMu.Lock()
		defer d.subMu.Unlock()
		for i, s := range d.subscribers {
			if s.id == id {
				d.subscribers = append(d.subscribers[:i:i], d.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Dispatch applies one status change:
//  1. the registry is updated; on failure nothing else happens and the error is returned
//  2. the tray tooltip is recomputed from the registry
//  3. exactly one notification is submitted; delivery failures are only logged
//  4. changes not made by the UI are echoed to subscribers
func (d *Dispatcher) Dispatch(ctx context.Context, agentName string, status models.AgentStatus, origin Origin) (StatusChangeEvent, error) {
	if err := ctx.Err(); err != nil {
		return StatusChangeEvent{}, err
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	prev, err := d.registry.SetStatus(agentName, status)
	if err != nil {
		d.logger.Warn("status change rejected",
			"agent", agentName, "status", string(status), "origin", string(origin), "error", err)
		return StatusChangeEvent{}, err
	}

	ev := StatusChangeEvent{
		ID:             uuid.NewString(),
		AgentName:      agentName,
		PreviousStatus: prev,
		NewStatus:      status,
		Origin:         origin,
		Timestamp:      d.now(),
	}
	d.logger.Info("status changed",
		"event_id", ev.ID, "agent", ev.AgentName, "from", string(prev), "to", string(status), "origin", string(origin))

	d.refreshTooltipLocked()
	d.notify(ctx, ev)

	if origin.NeedsEcho() {
		d.publish(ev)
	}
	return ev, nil
}

// RefreshTooltip recomputes the tray tooltip from the registry.
func (d *Dispatcher) RefreshTooltip() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.refreshTooltipLocked()
}

func (d *Dispatcher) refreshTooltipLocked() {
	d.tray.SetTooltip(Tooltip(d.registry.Count(models.AgentStatusAvailable)))
}

func (d *Dispatcher) notify(ctx context.Context, ev StatusChangeEvent) {
	// The mutation is committed; delivery outlives the caller's context.
	ctx = context.WithoutCancel(ctx)
	if err := d.gateway.Submit(ctx, StatusNotification(ev)); err != nil {
		failed := &NotificationDeliveryFailedError{EventID: ev.ID, Err: err}
		d.logger.Warn("notification failed", "event_id", ev.ID, "error", failed)
	}
}

func (d *Dispatcher) publish(ev StatusChangeEvent) {
	d.subMu.Lock()
	subs := make([]Subscriber, len(d.subscribers))
	for i, s := range d.subscribers {
		subs[i] = s.sub
	}
	d.subMu.Unlock()

	for _, s := range subs {
		s.StatusChanged(ev)
	}
}

// IsRejection reports whether err is a validation failure from Dispatch, as
// opposed to a cancelled context.
func IsRejection(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrInvalidStatus)
}

type nopGateway struct{}

func (nopGateway) Submit(context.Context, models.Notification) error { return nil }

type nopTray struct{}

func (nopTray) SetTooltip(string) {}
