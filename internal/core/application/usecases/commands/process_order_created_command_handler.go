package commands

import (
	"context"
)

// ProcessOrderCreatedCommandHandler advances orders to Processed when their
// creation notification arrives from the broker.
//
// The handler is idempotent: notifications are delivered at least once, and
// re-processing an already processed order succeeds without a state change.
// A missing order surfaces as errs.ObjectNotFoundError so the caller can
// dead-letter the notification instead of silently dropping it.
type ProcessOrderCreatedCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewProcessOrderCreatedCommandHandler creates a handler for processing
// order creation notifications.
func NewProcessOrderCreatedCommandHandler(
	uowFactory OrderUoWFactory,
) ProcessOrderCreatedCommandHandler {
	return ProcessOrderCreatedCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle reads the current order state, applies the Processed transition and
// persists the result inside one transaction.
//
// Reading before mutating matters: the notification payload may be stale, so
// the transition always starts from what the repository holds now.
func (h *ProcessOrderCreatedCommandHandler) Handle(
	ctx context.Context, cmd ProcessOrderCreatedCommand,
) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.MarkProcessed(); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
