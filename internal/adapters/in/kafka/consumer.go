// Package kafka implements the worker's input adapter: a consumer group
// reader that turns Order.Created notifications into processing commands.
//
// Offsets double as the worker's durable cursor. A batch is committed only
// after every message in it has been handled, so an infrastructure failure
// withholds the commit and the broker redelivers the batch. Handlers are
// idempotent, which makes the redelivery harmless.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

const (
	// defaultBatchSize caps how many messages are drained before a commit.
	defaultBatchSize = 16

	// drainTimeout bounds how long the consumer waits for a batch to fill
	// once the first message has arrived.
	drainTimeout = 250 * time.Millisecond

	// fetchRetryDelay avoids a hot loop when the broker is unreachable.
	fetchRetryDelay = time.Second
)

// messageReader is the subset of kafka.Reader the consumer needs.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// processOrderCreatedHandler advances an order in response to its creation
// notification.
type processOrderCreatedHandler interface {
	Handle(ctx context.Context, cmd commands.ProcessOrderCreatedCommand) error
}

// deadLetterPublisher parks messages that can never be processed.
type deadLetterPublisher interface {
	Publish(ctx context.Context, key, value []byte, reason string) error
}

// Consumer reads Order.Created notifications and drives the processing
// handler. It distinguishes two failure classes:
//
//   - poison messages (malformed payload, unknown order): logged, sent to
//     the dead letter topic, and counted as handled so the batch advances
//   - infrastructure failures (database down): the batch commit is withheld
//     and the whole batch is redelivered
type Consumer struct {
	reader     messageReader
	handler    processOrderCreatedHandler
	deadLetter deadLetterPublisher
	logger     *slog.Logger
	batchSize  int

	wg      sync.WaitGroup
	stopped atomic.Bool
}

// NewConsumer creates a consumer over an existing reader.
// A batchSize of zero or less falls back to the default.
func NewConsumer(
	reader messageReader,
	handler processOrderCreatedHandler,
	deadLetter deadLetterPublisher,
	logger *slog.Logger,
	batchSize int,
) *Consumer {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	return &Consumer{
		reader:     reader,
		handler:    handler,
		deadLetter: deadLetter,
		logger:     logger,
		batchSize:  batchSize,
	}
}

// NewReader builds a kafka.Reader bound to a consumer group. Offsets are
// committed explicitly by the consumer, never automatically.
func NewReader(brokers []string, topic, groupID string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers: brokers,
		Topic:   topic,
		GroupID: groupID,
	})
}

// Start launches the consume loop in a background goroutine.
func (c *Consumer) Start(ctx context.Context) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.run(ctx)
	}()
}

// Stop closes the reader and waits for the consume loop to drain.
// An in-flight batch finishes before Stop returns; its commit may be lost,
// which only means redelivery to an idempotent handler.
func (c *Consumer) Stop() {
	c.stopped.Store(true)
	if err := c.reader.Close(); err != nil {
		c.logger.Error("failed to close kafka reader", "error", err)
	}
	c.wg.Wait()
}

func (c *Consumer) run(ctx context.Context) {
	c.logger.Info("order notification consumer started")

	for {
		if c.stopped.Load() || ctx.Err() != nil {
			c.logger.Info("order notification consumer stopped")
			return
		}

		batch, err := c.fetchBatch(ctx)
		if err != nil {
			if c.stopped.Load() || ctx.Err() != nil {
				c.logger.Info("order notification consumer stopped")
				return
			}
			c.logger.Error("failed to fetch messages", "error", err)
			time.Sleep(fetchRetryDelay)
			continue
		}

		if len(batch) == 0 {
			continue
		}

		// Retry the batch in place until it settles. The commit happens
		// only after the whole batch is handled, so a crash mid-batch
		// redelivers it from the last committed offset.
		for !c.processBatch(ctx, batch) {
			if c.stopped.Load() || ctx.Err() != nil {
				c.logger.Info("order notification consumer stopped")
				return
			}
			time.Sleep(fetchRetryDelay)
		}

		if err = c.reader.CommitMessages(ctx, batch...); err != nil {
			c.logger.Error("failed to commit offsets", "error", err)
		}
	}
}

// fetchBatch blocks for the first message, then drains the reader until the
// batch is full or drainTimeout elapses.
func (c *Consumer) fetchBatch(ctx context.Context) ([]kafka.Message, error) {
	first, err := c.reader.FetchMessage(ctx)
	if err != nil {
		return nil, err
	}

	batch := make([]kafka.Message, 0, c.batchSize)
	batch = append(batch, first)

	drainCtx, cancel := context.WithTimeout(ctx, drainTimeout)
	defer cancel()

	for len(batch) < c.batchSize {
		msg, fetchErr := c.reader.FetchMessage(drainCtx)
		if fetchErr != nil {
			break
		}
		batch = append(batch, msg)
	}

	return batch, nil
}

// processBatch handles every message in order. Returns false on the first
// infrastructure failure, leaving the batch uncommitted.
func (c *Consumer) processBatch(ctx context.Context, batch []kafka.Message) bool {
	for _, msg := range batch {
		if err := c.processMessage(ctx, msg); err != nil {
			c.logger.Error("batch processing failed, offsets withheld",
				"partition", msg.Partition,
				"offset", msg.Offset,
				"error", err)
			return false
		}
	}
	return true
}

// processMessage handles a single notification. A nil return means the
// message is settled: either processed or parked on the dead letter topic.
// A non-nil return means a retryable infrastructure failure.
func (c *Consumer) processMessage(ctx context.Context, msg kafka.Message) error {
	var notification order.CreatedNotification
	if err := json.Unmarshal(msg.Value, &notification); err != nil {
		c.logger.Warn("skipping malformed message",
			"partition", msg.Partition,
			"offset", msg.Offset,
			"error", err)
		c.sendToDeadLetter(ctx, msg, "malformed payload")
		return nil
	}

	if notification.EventType != order.EventTypeOrderCreated {
		c.logger.Debug("skipping message with unexpected event type",
			"eventType", notification.EventType)
		return nil
	}

	orderID, err := kernel.UUIDFromString(notification.ID)
	if err != nil {
		c.logger.Warn("skipping message with invalid order id",
			"orderId", notification.ID,
			"error", err)
		c.sendToDeadLetter(ctx, msg, "invalid order id")
		return nil
	}

	cmd, err := commands.NewProcessOrderCreatedCommand(orderID)
	if err != nil {
		c.sendToDeadLetter(ctx, msg, "invalid command")
		return nil
	}

	if err = c.handler.Handle(ctx, cmd); err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			// The notification outlived its order. Park it instead of
			// blocking the partition.
			c.logger.Warn("order not found for notification",
				"orderId", notification.ID)
			c.sendToDeadLetter(ctx, msg, "order not found")
			return nil
		}
		return err
	}

	c.logger.Info("order processed", "orderId", notification.ID)
	return nil
}

func (c *Consumer) sendToDeadLetter(ctx context.Context, msg kafka.Message, reason string) {
	if err := c.deadLetter.Publish(ctx, msg.Key, msg.Value, reason); err != nil {
		c.logger.Error("failed to publish dead letter",
			"reason", reason,
			"error", err)
	}
}
