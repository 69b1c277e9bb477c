// Package outboxrepo persists outbox messages alongside the order rows that
// produced them, so an order change and the event announcing it commit in the
// same transaction.
package outboxrepo

import (
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/outbox"

	"github.com/google/uuid"
)

// MessageDTO represents the database structure for persisting outbox messages.
// Status is indexed because the relay job polls for pending rows.
type MessageDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	EventType string    `gorm:"type:varchar(100);not null"`
	Payload   []byte    `gorm:"type:jsonb;not null"`
	Status    int       `gorm:"index"`
	CreatedAt time.Time `gorm:"not null"`
	SentAt    *time.Time
}

// TableName specifies the database table name for outbox messages.
func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromDomain(message *outbox.Message) MessageDTO {
	return MessageDTO{
		ID:        message.ID().Bytes(),
		EventType: message.EventType(),
		Payload:   message.Payload(),
		Status:    int(message.Status()),
		CreatedAt: message.CreatedAt(),
		SentAt:    message.SentAt(),
	}
}

func toDomain(dto MessageDTO) (*outbox.Message, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return outbox.RestoreMessage(
		id,
		dto.EventType,
		dto.Payload,
		outbox.Status(dto.Status),
		dto.CreatedAt,
		dto.SentAt,
	)
}
