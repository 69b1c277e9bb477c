// Package outbox models messages queued for publication alongside the
// business data that produced them. A message is written in the same
// transaction as its order and relayed to the broker afterwards, so a
// crash between commit and publish loses nothing.
package outbox

import (
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var ErrMessageIsNotConstructed = errors.New(
	"Message must be created via NewMessage or RestoreMessage")

// Status of an outbox message. Pending messages are picked up by the relay
// job; sent messages stay for audit.
type Status int

const (
	StatusUnknown Status = iota
	StatusPending
	StatusSent
)

// String implements fmt.Stringer.
func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusSent:
		return "Sent"
	default:
		return "Unknown"
	}
}

// Message is a serialized event waiting to be relayed to the broker.
// The payload is opaque JSON; eventType and key come from the producing
// aggregate so the relay can route without decoding.
type Message struct {
	id        kernel.UUID
	eventType string
	payload   []byte
	status    Status
	createdAt time.Time
	sentAt    *time.Time

	isConstructed bool
}

// NewMessage creates a pending outbox message. The id doubles as the broker
// message key, so callers pass the aggregate id that produced the event.
func NewMessage(id kernel.UUID, eventType string, payload []byte) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if eventType == "" {
		return nil, errs.NewValueIsRequiredError("eventType")
	}
	if len(payload) == 0 {
		return nil, errs.NewValueIsRequiredError("payload")
	}

	return &Message{
		id:            id,
		eventType:     eventType,
		payload:       payload,
		status:        StatusPending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}, nil
}

// RestoreMessage reconstructs a message from persistence.
func RestoreMessage(
	id kernel.UUID,
	eventType string,
	payload []byte,
	status Status,
	createdAt time.Time,
	sentAt *time.Time,
) (*Message, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if status != StatusPending && status != StatusSent {
		return nil, errs.NewValueIsInvalidError("status")
	}

	return &Message{
		id:            id,
		eventType:     eventType,
		payload:       payload,
		status:        status,
		createdAt:     createdAt,
		sentAt:        sentAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Message was created through a constructor.
func (m *Message) Validate() error {
	if m == nil || !m.isConstructed {
		return ErrMessageIsNotConstructed
	}
	return nil
}

func (m *Message) ID() kernel.UUID      { return m.id }
func (m *Message) EventType() string    { return m.eventType }
func (m *Message) Payload() []byte      { return m.payload }
func (m *Message) Status() Status       { return m.status }
func (m *Message) CreatedAt() time.Time { return m.createdAt }
func (m *Message) SentAt() *time.Time   { return m.sentAt }

// MarkSent records a successful relay. Idempotent.
func (m *Message) MarkSent() {
	if m.status == StatusSent {
		return
	}
	m.status = StatusSent
	now := time.Now().UTC()
	m.sentAt = &now
}
