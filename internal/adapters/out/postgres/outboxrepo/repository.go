package outboxrepo

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOutboxRepository creates a new GORM outbox repository.
func NewGormOutboxRepository(db *gorm.DB, tracker aggregateTracker) *GormOutboxRepository {
	return &GormOutboxRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new pending outbox message.
func (r *GormOutboxRepository) Add(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errs.NewInfrastructureErrorWithID("insert outbox message", message.ID().String(), err)
	}

	r.tracker.TrackAggregate(message.ID(), message)
	return nil
}

// GetPending retrieves up to limit pending messages, oldest first, so the
// relay preserves publication order.
func (r *GormOutboxRepository) GetPending(ctx context.Context, limit int) ([]*outbox.Message, error) {
	var dtos []MessageDTO
	err := r.db.WithContext(ctx).
		Where("status = ?", int(outbox.StatusPending)).
		Order("created_at, id").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, errs.NewInfrastructureError("list pending outbox messages", err)
	}

	messages := make([]*outbox.Message, 0, len(dtos))
	for _, dto := range dtos {
		message, toErr := toDomain(dto)
		if toErr != nil {
			return nil, toErr
		}
		messages = append(messages, message)
	}

	return messages, nil
}

// MarkSent persists the sent status of a relayed message.
func (r *GormOutboxRepository) MarkSent(ctx context.Context, message *outbox.Message) error {
	if err := message.Validate(); err != nil {
		return err
	}

	dto := fromDomain(message)
	result := r.db.WithContext(ctx).Model(&MessageDTO{}).
		Where("id = ?", dto.ID).
		Updates(map[string]any{"status": dto.Status, "sent_at": dto.SentAt})
	if result.Error != nil {
		return errs.NewInfrastructureErrorWithID(
			"mark outbox message sent", message.ID().String(), result.Error)
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("messageId", message.ID())
	}

	r.tracker.TrackAggregate(message.ID(), message)
	return nil
}
