package testutil

import (
	"context"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
)

const kafkaImage = "confluentinc/confluent-local:7.6.1"

// KafkaContainer is a throwaway single-node Kafka cluster.
type KafkaContainer struct {
	Brokers []string
}

// NewKafkaContainer starts Kafka and terminates it when the test ends.
func NewKafkaContainer(ctx context.Context, t *testing.T) *KafkaContainer {
	t.Helper()

	container, err := kafka.Run(ctx, kafkaImage, kafka.WithClusterID("conveyor-test"))
	if err != nil {
		t.Fatalf("start kafka container: %v", err)
	}
	t.Cleanup(func() { terminate(t, "kafka", container) })

	brokers, err := container.Brokers(ctx)
	if err != nil {
		t.Fatalf("kafka brokers: %v", err)
	}
	return &KafkaContainer{Brokers: brokers}
}

// ReadMessages consumes n messages from the start of topic, failing the
// test if they do not arrive before ctx expires.
func (kc *KafkaContainer) ReadMessages(ctx context.Context, t *testing.T, topic string, n int) []kafkago.Message {
	t.Helper()

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     kc.Brokers,
		Topic:       topic,
		StartOffset: kafkago.FirstOffset,
		MaxWait:     250 * time.Millisecond,
	})
	defer reader.Close()

	msgs := make([]kafkago.Message, 0, n)
	for len(msgs) < n {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			t.Fatalf("read message %d/%d from %s: %v", len(msgs)+1, n, topic, err)
		}
		msgs = append(msgs, msg)
	}
	return msgs
}
