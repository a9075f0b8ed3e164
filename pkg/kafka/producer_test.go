package kafka

import (
	"context"
	"testing"
	"time"
)

func TestNewProducer_Defaults(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})

	if len(p.cfg.Brokers) != 2 {
		t.Fatalf("brokers = %d, want 2", len(p.cfg.Brokers))
	}
	if p.cfg.BatchTimeout != DefaultBatchTimeout {
		t.Errorf("batch timeout = %s, want default", p.cfg.BatchTimeout)
	}
	if len(p.writers) != 0 {
		t.Errorf("writers = %d, want none before first publish", len(p.writers))
	}

	p = NewProducer(Config{Brokers: []string{"kafka:9092"}, BatchTimeout: time.Second})
	if p.cfg.BatchTimeout != time.Second {
		t.Errorf("batch timeout = %s, want 1s", p.cfg.BatchTimeout)
	}
}

func TestToKafkaMessage_SortsHeaders(t *testing.T) {
	km := toKafkaMessage(Message{
		Key:   []byte("app-123"),
		Value: []byte(`{"rate":"11"}`),
		Headers: map[string]string{
			"traceparent": "00-01-02-01",
			"event_type":  "conveyor.credit.calculated",
			"event_id":    "abc",
		},
	})

	if string(km.Key) != "app-123" {
		t.Errorf("key = %s", km.Key)
	}
	want := []string{"event_id", "event_type", "traceparent"}
	if len(km.Headers) != len(want) {
		t.Fatalf("headers = %d, want %d", len(km.Headers), len(want))
	}
	for i, k := range want {
		if km.Headers[i].Key != k {
			t.Errorf("header[%d] = %s, want %s", i, km.Headers[i].Key, k)
		}
	}
	if string(km.Headers[1].Value) != "conveyor.credit.calculated" {
		t.Errorf("event_type = %s", km.Headers[1].Value)
	}
}

func TestPublish_NoMessagesCreatesNoWriter(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	if err := p.Publish(context.Background(), "conveyor.events"); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("writers = %d, want 0", len(p.writers))
	}
}

func TestWriter_OnePerTopic(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}, WriteTimeout: 5 * time.Second})

	a := p.writer("conveyor.events")
	if a != p.writer("conveyor.events") {
		t.Error("same topic returned a new writer")
	}
	if a == p.writer("conveyor.audit") {
		t.Error("different topics share a writer")
	}
	if a.WriteTimeout != 5*time.Second {
		t.Errorf("write timeout = %s, want 5s", a.WriteTimeout)
	}

	if err := p.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if len(p.writers) != 0 {
		t.Errorf("writers after Close = %d, want 0", len(p.writers))
	}
}
