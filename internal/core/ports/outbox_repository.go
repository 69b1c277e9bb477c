package ports

import (
	"context"

	"orderflow/internal/core/domain/model/outbox"
)

// OutboxRepository defines the persistence contract for outbox messages.
// Messages are added inside the same transaction as the aggregate change
// that produced them and relayed to the broker by a background job.
type OutboxRepository interface {
	// Add persists a new pending outbox message.
	Add(ctx context.Context, message *outbox.Message) error

	// GetPending retrieves up to limit pending messages, oldest first.
	GetPending(ctx context.Context, limit int) ([]*outbox.Message, error)

	// MarkSent persists the sent status of a relayed message.
	MarkSent(ctx context.Context, message *outbox.Message) error
}
