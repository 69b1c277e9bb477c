package commands

import (
	"context"
	"encoding/json"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/outbox"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Persists the new order together with its outbox message in one transaction,
// then publishes the Order.Created notification to the broker.
//
// Publishing is best effort: if the broker is down the order stays persisted,
// the outbox row stays pending for the relay job to retry, and the caller
// receives an InfrastructureError so it can report the degraded state.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	cmd, _ := NewCreateOrderCommand(kernel.NewUUID(), "Acme", "Widget", 2, 19.99)
//
//	created, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order creation failed: %w", err)
//	}
//	// created holds the persisted order in Created status
type CreateOrderCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires a UoWFactory for transactional persistence and an EventPublisher
// for the Order.Created notification.
func NewCreateOrderCommandHandler(
	uowFactory UoWFactory, publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order creation command and returns the persisted order.
//
// The order and its outbox message are committed atomically before any
// publish attempt, so a broker outage can never lose the event. A publish
// failure returns the persisted order together with an InfrastructureError.
func (h *CreateOrderCommandHandler) Handle(
	ctx context.Context, cmd CreateOrderCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerName(),
		cmd.ProductName(),
		cmd.Quantity(),
		cmd.TotalAmount(),
	)
	if err != nil {
		return nil, err
	}

	notification := order.NewCreatedNotification(newOrder)
	payload, err := json.Marshal(notification)
	if err != nil {
		return nil, err
	}

	message, err := outbox.NewMessage(newOrder.ID(), order.EventTypeOrderCreated, payload)
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return nil, err
	}

	if err = uow.OutboxRepository().Add(ctx, message); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	if err = h.publisher.Publish(ctx, notification); err != nil {
		return newOrder, errs.NewInfrastructureErrorWithID(
			"publish order created notification", newOrder.ID().String(), err)
	}

	h.markSent(ctx, message)

	return newOrder, nil
}

// markSent records the direct publish in the outbox so the relay job skips
// the message. Failures are swallowed: the relay would merely republish,
// and consumers tolerate duplicates.
func (h *CreateOrderCommandHandler) markSent(ctx context.Context, message *outbox.Message) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	message.MarkSent()
	if err := uow.OutboxRepository().MarkSent(ctx, message); err != nil {
		return
	}

	_ = uow.Commit(ctx)
}
