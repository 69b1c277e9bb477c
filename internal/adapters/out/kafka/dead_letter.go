package kafka

import (
	"context"

	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// DeadLetterPublisher parks messages the worker cannot process on a separate
// topic, preserving the original key and payload so operators can inspect
// and replay them. The failure reason travels in a message header.
type DeadLetterPublisher struct {
	writer messageWriter
}

// NewDeadLetterPublisher creates a dead letter publisher over an existing writer.
func NewDeadLetterPublisher(writer messageWriter) *DeadLetterPublisher {
	return &DeadLetterPublisher{writer: writer}
}

// Publish forwards the original message bytes to the dead letter topic.
func (p *DeadLetterPublisher) Publish(ctx context.Context, key, value []byte, reason string) error {
	msg := kafka.Message{
		Key:   key,
		Value: value,
		Headers: []kafka.Header{
			{Key: "dead-letter-reason", Value: []byte(reason)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.NewInfrastructureErrorWithID("publish dead letter", string(key), err)
	}

	return nil
}

// Close releases the underlying writer.
func (p *DeadLetterPublisher) Close() error {
	return p.writer.Close()
}
