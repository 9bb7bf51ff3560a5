// Package kafka publishes affiliate click events to the analytics topic.
// Publishing is optional and best-effort; the tracking service logs and
// continues when it fails.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"

	"github.com/propwijzer/propwijzer/internal/domain"
)

// Publisher writes click events to a Kafka topic.
type Publisher struct {
	writer *kafka.Writer
}

// NewPublisher creates a click event publisher.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: kafka.NewWriter(kafka.WriterConfig{
			Brokers:     brokers,
			Topic:       topic,
			MaxAttempts: 3,
		}),
	}
}

// Publish writes one click event, keyed by firm id so per-firm ordering is
// preserved across partitions.
func (p *Publisher) Publish(ctx context.Context, click domain.Click) error {
	value, err := json.Marshal(click)
	if err != nil {
		return fmt.Errorf("marshal click: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(click.FirmID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("write click event: %w", err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	if err := p.writer.Close(); err != nil {
		return fmt.Errorf("close click writer: %w", err)
	}
	return nil
}
