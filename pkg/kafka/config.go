package kafka

import "time"

// Config holds Kafka producer parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer waits to fill a batch. Zero uses
	// DefaultBatchTimeout.
	BatchTimeout time.Duration

	// WriteTimeout bounds a single produce request. Zero keeps the
	// kafka-go default.
	WriteTimeout time.Duration
}

// DefaultBatchTimeout keeps latency low for request-scoped publishing.
const DefaultBatchTimeout = 10 * time.Millisecond

func (c Config) withDefaults() Config {
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = DefaultBatchTimeout
	}
	return c
}
