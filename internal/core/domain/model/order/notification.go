package order

import "time"

// EventTypeOrderCreated is the logical event type carried in every
// Order.Created notification. Consumers filter on this value and skip
// everything else.
const EventTypeOrderCreated = "Order.Created"

// CreatedNotification is the immutable snapshot of an order at creation time,
// published as the payload of the Order.Created event.
//
// It is not the live Order: the transport delivers it at least once and
// possibly late, so consumers must re-read current state from the repository
// before mutating.
type CreatedNotification struct {
	EventType    string    `json:"eventType"`
	ID           string    `json:"id"`
	CustomerName string    `json:"customerName"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	TotalAmount  float64   `json:"totalAmount"`
	Status       string    `json:"status"`
	CreatedAtUtc time.Time `json:"createdAtUtc"`
}

// NewCreatedNotification builds the notification snapshot for a freshly
// persisted order.
func NewCreatedNotification(o *Order) CreatedNotification {
	return CreatedNotification{
		EventType:    EventTypeOrderCreated,
		ID:           o.ID().String(),
		CustomerName: o.CustomerName(),
		ProductName:  o.ProductName(),
		Quantity:     o.Quantity(),
		TotalAmount:  o.TotalAmount(),
		Status:       o.Status().String(),
		CreatedAtUtc: o.CreatedAt(),
	}
}
