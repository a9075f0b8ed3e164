package kafka

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"

	kafkago "github.com/segmentio/kafka-go"
)

// Message is a record to publish. Headers are written in key order.
type Message struct {
	Key     []byte
	Value   []byte
	Headers map[string]string
}

// Producer publishes to any number of topics through one kafka-go writer
// per topic, created on first use. It is safe for concurrent use.
type Producer struct {
	cfg Config

	mu      sync.Mutex
	writers map[string]*kafkago.Writer
}

// NewProducer returns a producer for cfg.Brokers. No connection is made
// until the first Publish.
func NewProducer(cfg Config) *Producer {
	return &Producer{cfg: cfg.withDefaults(), writers: make(map[string]*kafkago.Writer)}
}

// Publish writes messages to topic and waits for all in-sync replicas.
func (p *Producer) Publish(ctx context.Context, topic string, messages ...Message) error {
	if len(messages) == 0 {
		return nil
	}
	out := make([]kafkago.Message, len(messages))
	for i, m := range messages {
		out[i] = toKafkaMessage(m)
	}
	if err := p.writer(topic).WriteMessages(ctx, out...); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes every writer.
func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for topic, w := range p.writers {
		if err := w.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka: close writer for %s: %w", topic, err))
		}
	}
	clear(p.writers)
	return errors.Join(errs...)
}

func toKafkaMessage(m Message) kafkago.Message {
	km := kafkago.Message{Key: m.Key, Value: m.Value}
	for _, k := range slices.Sorted(maps.Keys(m.Headers)) {
		km.Headers = append(km.Headers, kafkago.Header{Key: k, Value: []byte(m.Headers[k])})
	}
	return km
}

// writer returns the topic's writer. Hash balancing sends equal keys to the
// same partition.
func (p *Producer) writer(topic string) *kafkago.Writer {
	p.mu.Lock()
	defer p.mu.Unlock()

	if w, ok := p.writers[topic]; ok {
		return w
	}
	w := &kafkago.Writer{
		Addr:                   kafkago.TCP(p.cfg.Brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		BatchTimeout:           p.cfg.BatchTimeout,
		WriteTimeout:           p.cfg.WriteTimeout,
		RequiredAcks:           kafkago.RequireAll,
		AllowAutoTopicCreation: true,
	}
	p.writers[topic] = w
	return w
}
