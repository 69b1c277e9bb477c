package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(id, "Acme", "Widget", 10, 99.90)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, "Acme", cmd.CustomerName())
	assert.Equal(t, "Widget", cmd.ProductName())
	assert.Equal(t, 10, cmd.Quantity())
	assert.InDelta(t, 99.90, cmd.TotalAmount(), 0.0001)
}

func TestNewCreateOrderCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{} // zero value, should trigger validation error
	_, err := commands.NewCreateOrderCommand(invalidID, "Acme", "Widget", 10, 99.90)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewCreateOrderCommand_EmptyCustomerName(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "Widget", 10, 99.90)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_EmptyProductName(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Acme", "", 10, 99.90)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsRequired)
}

func TestNewCreateOrderCommand_InvalidQuantity(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Acme", "Widget", 0, 99.90)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateOrderCommand_InvalidTotalAmount(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "Acme", "Widget", 10, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewCreateOrderCommand_InvalidInput(t *testing.T) {
	_, err := commands.NewCreateOrderCommand(kernel.NewUUID(), "", "", 0, 0)
	require.Error(t, err)
}
