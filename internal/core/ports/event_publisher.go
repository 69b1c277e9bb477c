package ports

import (
	"context"

	"orderflow/internal/core/domain/model/order"
)

// EventPublisher sends order lifecycle notifications to the message broker.
// Delivery is at least once; consumers must tolerate duplicates.
type EventPublisher interface {
	// Publish sends an Order.Created notification keyed by the order id.
	Publish(ctx context.Context, notification order.CreatedNotification) error
}
