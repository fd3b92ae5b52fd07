package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/phrazzld/taskmate-api/internal/events"
	goredis "github.com/redis/go-redis/v9"
)

// Relay forwards change events received on a Redis channel to a local sink.
type Relay struct {
	client  *goredis.Client
	channel string
	target  events.Sink
	logger  *slog.Logger

	mu     sync.Mutex
	pubsub *goredis.PubSub
	cancel context.CancelFunc
	done   chan struct{}
}

// NewRelay creates a relay from channel into target.
// Panics if target is nil.
func NewRelay(client *goredis.Client, channel string, target events.Sink, logger *slog.Logger) *Relay {
	if target == nil {
		panic("target cannot be nil for Relay")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Relay{
		client:  client,
		channel: channel,
		target:  target,
		logger:  logger.With(slog.String("component", "redis_relay")),
	}
}

// Start subscribes to the channel and begins forwarding. It returns once the
// subscription is confirmed by the server.
func (r *Relay) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.pubsub != nil {
		return fmt.Errorf("relay already started")
	}

	pubsub := r.client.Subscribe(ctx, r.channel)
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return fmt.Errorf("subscribe to %s: %w", r.channel, err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	r.pubsub = pubsub
	r.cancel = cancel
	r.done = make(chan struct{})

	go r.run(runCtx, pubsub.Channel(), r.done)

	r.logger.Info("relay subscribed", slog.String("channel", r.channel))
	return nil
}

// Stop unsubscribes and waits for the forwarding loop to exit or ctx to end.
func (r *Relay) Stop(ctx context.Context) error {
	r.mu.Lock()
	pubsub, cancel, done := r.pubsub, r.cancel, r.done
	r.pubsub, r.cancel = nil, nil
	r.mu.Unlock()

	if pubsub == nil {
		return nil
	}

	cancel()
	err := pubsub.Close()

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	if err != nil {
		return fmt.Errorf("close subscription: %w", err)
	}
	return nil
}

func (r *Relay) run(ctx context.Context, messages <-chan *goredis.Message, done chan struct{}) {
	defer close(done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-messages:
			if !ok {
				return
			}
			r.forward(ctx, msg)
		}
	}
}

func (r *Relay) forward(ctx context.Context, msg *goredis.Message) {
	var event events.ChangeEvent
	if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil || event.Identity == "" {
		r.logger.Warn("ignoring malformed change event", slog.String("channel", msg.Channel))
		return
	}

	if err := r.target.Deliver(ctx, event); err != nil {
		r.logger.Error("failed to forward change event", slog.String("error", err.Error()))
	}
}
