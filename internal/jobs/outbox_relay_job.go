package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/robfig/cron/v3"
)

// defaultRelayBatchSize caps how many pending messages one relay tick handles.
const defaultRelayBatchSize = 50

// OutboxRelayJob republishes pending outbox messages to the broker.
// Runs every second so a publish that failed on the write path is retried
// within a second of the broker coming back.
//
// The relay is the safety net behind the write path's direct publish: any
// message still pending, whatever the reason, eventually goes out. Consumers
// tolerate the resulting duplicates.
type OutboxRelayJob struct {
	uowFactory ports.UnitOfWorkFactory
	publisher  ports.EventPublisher
	batchSize  int
	cron       *cron.Cron
	logger     *slog.Logger
}

// NewOutboxRelayJob creates a new job for relaying outbox messages.
// A batchSize of zero or less falls back to the default.
func NewOutboxRelayJob(
	uowFactory ports.UnitOfWorkFactory,
	publisher ports.EventPublisher,
	batchSize int,
	logger *slog.Logger,
) *OutboxRelayJob {
	if batchSize <= 0 {
		batchSize = defaultRelayBatchSize
	}

	return &OutboxRelayJob{
		uowFactory: uowFactory,
		publisher:  publisher,
		batchSize:  batchSize,
		cron:       cron.New(cron.WithSeconds()),
		logger:     logger.With("component", "outbox_relay_job"),
	}
}

// Start begins the relay job to run every second.
func (j *OutboxRelayJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()
		if err := j.RelayPending(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Outbox relay job failed", "error", err)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Outbox relay job started (running every second)")
	return nil
}

// Stop stops the relay job.
func (j *OutboxRelayJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Outbox relay job stopped")
}

// RelayPending publishes one batch of pending messages, oldest first.
// A publish failure stops the batch so ordering is preserved; the remaining
// messages are retried on the next tick.
func (j *OutboxRelayJob) RelayPending(ctx context.Context) error {
	repo := j.uowFactory.Create().OutboxRepository()

	pending, err := repo.GetPending(ctx, j.batchSize)
	if err != nil {
		return err
	}

	for _, message := range pending {
		var notification order.CreatedNotification
		if err = json.Unmarshal(message.Payload(), &notification); err != nil {
			// Rows are written by our own handlers; a malformed payload is
			// a bug, not a transient condition. Skip it so it does not
			// block the queue.
			j.logger.WarnContext(ctx, "skipping malformed outbox payload",
				"messageId", message.ID().String(),
				"error", err)
			continue
		}

		if err = j.publisher.Publish(ctx, notification); err != nil {
			return err
		}

		message.MarkSent()
		if err = repo.MarkSent(ctx, message); err != nil {
			return err
		}

		j.logger.InfoContext(ctx, "relayed outbox message",
			"messageId", message.ID().String(),
			"eventType", message.EventType())
	}

	return nil
}
