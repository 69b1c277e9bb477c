package commands_test

import (
	"testing"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProcessOrderCreatedCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewProcessOrderCreatedCommand(id)
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	require.NoError(t, cmd.Validate())
}

func TestNewProcessOrderCreatedCommand_InvalidOrderID(t *testing.T) {
	invalidID := kernel.UUID{}
	_, err := commands.NewProcessOrderCreatedCommand(invalidID)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestProcessOrderCreatedCommand_NotConstructed(t *testing.T) {
	cmd := commands.ProcessOrderCreatedCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrProcessOrderCreatedCommandIsNotConstructed)
}
