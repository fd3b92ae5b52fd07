package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/phrazzld/taskmate-api/internal/events"
	goredis "github.com/redis/go-redis/v9"
)

// Publisher publishes change events on a Redis channel.
type Publisher struct {
	client  *goredis.Client
	channel string
	logger  *slog.Logger
}

// Ensure Publisher implements events.Sink interface
var _ events.Sink = (*Publisher)(nil)

// NewPublisher creates a publisher for channel.
func NewPublisher(client *goredis.Client, channel string, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		client:  client,
		channel: channel,
		logger:  logger.With(slog.String("component", "redis_publisher")),
	}
}

// Deliver implements events.Sink.
func (p *Publisher) Deliver(ctx context.Context, event events.ChangeEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal change event: %w", err)
	}

	receivers, err := p.client.Publish(ctx, p.channel, payload).Result()
	if err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}

	p.logger.Debug("change event published",
		slog.String("channel", p.channel),
		slog.Int64("receivers", receivers))
	return nil
}
