package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrProcessOrderCreatedCommandIsNotConstructed = errors.New(
	"ProcessOrderCreatedCommand must be created via NewProcessOrderCreatedCommand constructor",
)

// ProcessOrderCreatedCommand represents a request to advance an order to
// Processed in response to its creation notification being delivered.
type ProcessOrderCreatedCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewProcessOrderCreatedCommand creates a command to process an order's
// creation notification. Validates that the order ID is valid.
func NewProcessOrderCreatedCommand(orderID kernel.UUID) (ProcessOrderCreatedCommand, error) {
	if err := orderID.Validate(); err != nil {
		return ProcessOrderCreatedCommand{}, err
	}

	return ProcessOrderCreatedCommand{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c ProcessOrderCreatedCommand) Validate() error {
	return c.guard.Validate(ErrProcessOrderCreatedCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to process.
func (c ProcessOrderCreatedCommand) OrderID() kernel.UUID {
	return c.orderID
}
