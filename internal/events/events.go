package events

import (
	"context"
	"time"
)

// EventPrefix is prepended to the owner identity to form the event name
// clients listen for.
const EventPrefix = "task-updated-"

// ChangeEvent signals that the task collection of Identity changed.
// It carries no task data; receivers are expected to refetch.
type ChangeEvent struct {
	Identity   string    `json:"identity"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Name returns the wire event name for the change.
func (e ChangeEvent) Name() string {
	return EventName(e.Identity)
}

// EventName returns the event name scoped to identity.
func EventName(identity string) string {
	return EventPrefix + identity
}

// Notifier defines an interface for components that accept change signals.
// Implementations must not block on delivery and never report delivery errors.
type Notifier interface {
	NotifyChanged(ctx context.Context, identity string)
}

// Sink receives dispatched change events.
type Sink interface {
	Deliver(ctx context.Context, event ChangeEvent) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, event ChangeEvent) error

// Deliver calls f(ctx, event).
func (f SinkFunc) Deliver(ctx context.Context, event ChangeEvent) error {
	return f(ctx, event)
}

// NopNotifier discards every signal.
type NopNotifier struct{}

// NotifyChanged implements Notifier.
func (NopNotifier) NotifyChanged(context.Context, string) {}
