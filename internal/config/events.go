package config

import (
	"log/slog"

	"github.com/SAP-F-2025/question-parser-service/internal/events"
	"github.com/ThreeDotsLabs/watermill/message"
)

// EventConfig holds configuration for event publishing
type EventConfig struct {
	Enabled       bool   // EVENTS_ENABLED
	Publisher     string // EVENTS_PUBLISHER: kafka or mock
	KafkaBrokers  string // KAFKA_BROKERS, comma separated
	QuestionTopic string // QUESTION_EVENTS_TOPIC
}

// GetKafkaBrokers returns Kafka brokers as a slice
func (c *EventConfig) GetKafkaBrokers() []string {
	return splitList(c.KafkaBrokers)
}

// CreateEventPublisher creates an event publisher based on configuration
func (c *EventConfig) CreateEventPublisher(logger *slog.Logger) (events.EventPublisher, error) {
	if !c.Enabled {
		logger.Info("Event publishing disabled, using mock publisher")
		return events.NewMockEventPublisher(logger), nil
	}

	switch c.Publisher {
	case "kafka":
		logger.Info("Creating Kafka event publisher",
			"brokers", c.KafkaBrokers,
			"topic", c.QuestionTopic)

		return events.NewKafkaEventPublisher(events.PublisherConfig{
			KafkaBrokers: c.GetKafkaBrokers(),
			TopicName:    c.QuestionTopic,
			Logger:       logger,
		})
	case "mock":
		logger.Info("Using mock event publisher")
		return events.NewMockEventPublisher(logger), nil
	default:
		logger.Warn("Unknown event publisher type, falling back to mock", "publisher", c.Publisher)
		return events.NewMockEventPublisher(logger), nil
	}
}

// CreateEventSubscriber creates a Kafka subscriber on the configured brokers
func (c *EventConfig) CreateEventSubscriber(consumerGroup string, logger *slog.Logger) (message.Subscriber, error) {
	logger.Info("Creating Kafka event subscriber",
		"brokers", c.KafkaBrokers,
		"topic", c.QuestionTopic,
		"consumer_group", consumerGroup)

	return events.NewKafkaEventSubscriber(events.SubscriberConfig{
		KafkaBrokers:  c.GetKafkaBrokers(),
		ConsumerGroup: consumerGroup,
		Logger:        logger,
	})
}
