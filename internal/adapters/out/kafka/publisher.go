// Package kafka implements the broker-facing output adapters using
// segmentio/kafka-go. The publisher sends order lifecycle notifications;
// the dead letter publisher parks messages the worker cannot process.
package kafka

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

// messageWriter is the subset of kafka.Writer the publisher needs.
// Narrowing the dependency keeps the adapter testable without a broker.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Publisher sends order notifications to a Kafka topic. Messages are keyed
// by order id so all events for one order land on the same partition and
// arrive in order.
type Publisher struct {
	writer messageWriter
}

// NewPublisher creates a publisher over an existing writer.
func NewPublisher(writer messageWriter) *Publisher {
	return &Publisher{writer: writer}
}

// NewWriter builds a kafka.Writer for the given brokers and topic with
// hash balancing on the message key and full acknowledgement.
func NewWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}
}

// Publish sends an Order.Created notification keyed by the order id.
// Failures are wrapped as InfrastructureError; the caller decides whether
// the operation as a whole degrades or fails.
func (p *Publisher) Publish(ctx context.Context, notification order.CreatedNotification) error {
	payload, err := json.Marshal(notification)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(notification.ID),
		Value: payload,
	}

	if err = p.writer.WriteMessages(ctx, msg); err != nil {
		return errs.NewInfrastructureErrorWithID(
			"publish "+notification.EventType, notification.ID, err)
	}

	return nil
}

// Close releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
