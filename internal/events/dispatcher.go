package events

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/phrazzld/taskmate-api/internal/metrics"
	"github.com/phrazzld/taskmate-api/internal/redact"
)

// DefaultQueueSize is used when NewDispatcher is given a non-positive size.
const DefaultQueueSize = 256

// deliveryTimeout bounds a single sink delivery.
const deliveryTimeout = 5 * time.Second

// Dispatcher is a Notifier backed by a bounded queue drained by one goroutine.
type Dispatcher struct {
	queue    chan ChangeEvent
	sinks    []Sink
	logger   *slog.Logger
	timeFunc func() time.Time

	mu      sync.Mutex
	started bool
	stopCh  chan struct{}
	doneCh  chan struct{}
	stopped sync.Once
}

// Ensure Dispatcher implements Notifier interface
var _ Notifier = (*Dispatcher)(nil)

// NewDispatcher creates a dispatcher delivering to sinks.
// Panics if logger is nil.
func NewDispatcher(queueSize int, logger *slog.Logger, sinks ...Sink) *Dispatcher {
	if logger == nil {
		panic("logger cannot be nil for Dispatcher")
	}
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}
	return &Dispatcher{
		queue:    make(chan ChangeEvent, queueSize),
		sinks:    sinks,
		logger:   logger.With(slog.String("component", "change_dispatcher")),
		timeFunc: time.Now,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start begins the dispatch loop. Calling Start more than once has no effect.
func (d *Dispatcher) Start() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.started {
		return
	}
	d.started = true
	go d.run()
}

// Stop stops accepting signals, delivers what is already queued and waits for
// the loop to exit or ctx to end.
func (d *Dispatcher) Stop(ctx context.Context) error {
	d.stopped.Do(func() { close(d.stopCh) })

	d.mu.Lock()
	started := d.started
	d.mu.Unlock()
	if !started {
		return nil
	}

	select {
	case <-d.doneCh:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NotifyChanged enqueues a change signal for identity without blocking.
func (d *Dispatcher) NotifyChanged(ctx context.Context, identity string) {
	if identity == "" {
		return
	}

	select {
	case <-d.stopCh:
		d.logger.Warn("dispatcher stopped, dropping change signal")
		metrics.RecordNotification(metrics.NotificationDropped)
		return
	default:
	}

	event := ChangeEvent{Identity: identity, OccurredAt: d.timeFunc().UTC()}
	select {
	case d.queue <- event:
		metrics.RecordNotification(metrics.NotificationQueued)
	default:
		d.logger.Warn("change queue full, dropping signal",
			slog.Int("queue_capacity", cap(d.queue)))
		metrics.RecordNotification(metrics.NotificationDropped)
	}
}

// Pending returns the number of queued, undelivered signals.
func (d *Dispatcher) Pending() int {
	return len(d.queue)
}

func (d *Dispatcher) run() {
	defer close(d.doneCh)

	for {
		select {
		case event := <-d.queue:
			d.deliver(event)
		case <-d.stopCh:
			for {
				select {
				case event := <-d.queue:
					d.deliver(event)
				default:
					return
				}
			}
		}
	}
}

func (d *Dispatcher) deliver(event ChangeEvent) {
	for i, sink := range d.sinks {
		ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
		err := sink.Deliver(ctx, event)
		cancel()

		if err != nil {
			d.logger.Error("sink failed to deliver change event",
				slog.String("error", err.Error()),
				slog.Int("sink_index", i),
				slog.String("event", redact.String(event.Name())))
			metrics.RecordNotification(metrics.NotificationFailed)
			continue
		}
		metrics.RecordNotification(metrics.NotificationDelivered)
	}
}
