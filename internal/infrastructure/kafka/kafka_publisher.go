package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/bibbank/conveyor/internal/domain/event"
	pkgkafka "github.com/bibbank/conveyor/pkg/kafka"
)

// Producer is the subset of pkgkafka.Producer the publisher needs.
type Producer interface {
	Publish(ctx context.Context, topic string, messages ...pkgkafka.Message) error
}

// KafkaEventPublisher implements port.EventPublisher on a single topic.
// Messages are keyed by aggregate ID so one application's events keep
// their order.
type KafkaEventPublisher struct {
	producer Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaEventPublisher returns a publisher writing to topic.
func NewKafkaEventPublisher(producer Producer, topic string, logger *slog.Logger) *KafkaEventPublisher {
	return &KafkaEventPublisher{producer: producer, topic: topic, logger: logger}
}

// Publish sends events in one batch. The trace context of ctx travels in
// the message headers next to the event metadata.
func (p *KafkaEventPublisher) Publish(ctx context.Context, events ...event.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	messages := make([]pkgkafka.Message, 0, len(events))
	for _, evt := range events {
		msg, err := p.toMessage(ctx, evt)
		if err != nil {
			return err
		}
		messages = append(messages, msg)
	}

	if err := p.producer.Publish(ctx, p.topic, messages...); err != nil {
		return fmt.Errorf("publish %d events to %s: %w", len(messages), p.topic, err)
	}
	return nil
}

func (p *KafkaEventPublisher) toMessage(ctx context.Context, evt event.DomainEvent) (pkgkafka.Message, error) {
	payload, err := json.Marshal(evt)
	if err != nil {
		return pkgkafka.Message{}, fmt.Errorf("marshal %s: %w", evt.EventType(), err)
	}

	headers := propagation.MapCarrier{
		"event_type":     evt.EventType(),
		"event_id":       evt.EventID().String(),
		"aggregate_type": evt.AggregateType(),
	}
	otel.GetTextMapPropagator().Inject(ctx, headers)

	p.logger.DebugContext(ctx, "publishing domain event",
		"event_type", evt.EventType(),
		"aggregate_id", evt.AggregateID().String(),
		"bytes", len(payload),
	)
	return pkgkafka.Message{
		Key:     []byte(evt.AggregateID().String()),
		Value:   payload,
		Headers: headers,
	}, nil
}
