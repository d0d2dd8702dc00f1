package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill-kafka/v2/pkg/kafka"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventHandler receives decoded question events.
type EventHandler func(ctx context.Context, event *QuestionEvent) error

// SubscriberConfig holds configuration for a Kafka consumer of question events
type SubscriberConfig struct {
	KafkaBrokers  []string
	ConsumerGroup string // empty reads without committing offsets for a group
	Logger        *slog.Logger
}

// NewKafkaEventSubscriber creates a Watermill Kafka subscriber for the question topic
func NewKafkaEventSubscriber(config SubscriberConfig) (message.Subscriber, error) {
	saramaConfig := kafka.DefaultSaramaSubscriberConfig()

	subscriber, err := kafka.NewSubscriber(kafka.SubscriberConfig{
		Brokers:               config.KafkaBrokers,
		Unmarshaler:           kafka.DefaultMarshaler{},
		OverwriteSaramaConfig: saramaConfig,
		ConsumerGroup:         config.ConsumerGroup,
	}, watermill.NewSlogLogger(config.Logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka subscriber: %w", err)
	}
	return subscriber, nil
}

// Consume delivers every event on topic to handle until ctx is done.
// Messages that do not decode are logged and acked; a handler error nacks
// the message so the subscriber redelivers it.
func Consume(ctx context.Context, subscriber message.Subscriber, topic string, handle EventHandler, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	messages, err := subscriber.Subscribe(ctx, topic)
	if err != nil {
		return fmt.Errorf("failed to subscribe to %s: %w", topic, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event QuestionEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				logger.Warn("Dropping undecodable question event",
					"message_uuid", msg.UUID,
					"error", err)
				msg.Ack()
				continue
			}

			if err := handle(msg.Context(), &event); err != nil {
				logger.Error("Question event handler failed",
					"event_id", event.ID,
					"event_type", event.Type,
					"error", err)
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}
}
