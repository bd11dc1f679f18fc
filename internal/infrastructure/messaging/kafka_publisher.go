// Package messaging publishes domain events to Kafka.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/akashent3/redflags-sub001/pkg/kafka"
)

// domainEvent is what every published event must expose.
type domainEvent interface {
	EventType() string
	AggregateID() uuid.UUID
}

// KafkaPublisher implements port.EventPublisher over a single-topic producer.
// Messages are keyed by aggregate id so events for one assessment stay
// ordered within a partition.
type KafkaPublisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher for the events topic.
func NewKafkaPublisher(brokers []string, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		producer: kafka.NewProducer(brokers, topic),
		logger:   logger,
	}
}

// Publish serializes and sends domain events.
func (p *KafkaPublisher) Publish(ctx context.Context, events ...any) error {
	messages := make([]kafka.Message, 0, len(events))
	for _, evt := range events {
		de, ok := evt.(domainEvent)
		if !ok {
			return fmt.Errorf("event %T has no type or aggregate id", evt)
		}

		payload, err := json.Marshal(evt)
		if err != nil {
			return fmt.Errorf("marshal event %s: %w", de.EventType(), err)
		}

		messages = append(messages, kafka.Message{
			Key:     []byte(de.AggregateID().String()),
			Value:   payload,
			Headers: map[string]string{"event_type": de.EventType()},
		})

		p.logger.Info("publishing event",
			slog.String("event_type", de.EventType()),
			slog.String("aggregate_id", de.AggregateID().String()),
		)
	}

	return p.producer.Publish(ctx, messages...)
}

// Close flushes the underlying producer.
func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
