package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("valid_statuses", func(t *testing.T) {
		require.NoError(t, order.Created.Validate())
		require.NoError(t, order.Processed.Validate())
	})

	t.Run("invalid_statuses", func(t *testing.T) {
		require.Error(t, order.Unknown.Validate())
		require.Error(t, order.Status(42).Validate())
	})
}

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "Unknown", order.Unknown.String())
	assert.Equal(t, "Created", order.Created.String())
	assert.Equal(t, "Processed", order.Processed.String())
	assert.Equal(t, "Unknown", order.Status(42).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("parses_valid_names", func(t *testing.T) {
		s, err := order.StatusFromString("Created")
		require.NoError(t, err)
		assert.Equal(t, order.Created, s)

		s, err = order.StatusFromString("Processed")
		require.NoError(t, err)
		assert.Equal(t, order.Processed, s)
	})

	t.Run("rejects_unknown_names", func(t *testing.T) {
		_, err := order.StatusFromString("Shipped")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("rejects_unknown_literal", func(t *testing.T) {
		_, err := order.StatusFromString("Unknown")
		require.Error(t, err)
	})
}

func TestStatus_Process(t *testing.T) {
	t.Run("created_moves_to_processed", func(t *testing.T) {
		s, err := order.Created.Process()
		require.NoError(t, err)
		assert.Equal(t, order.Processed, s)
	})

	t.Run("processed_stays_processed", func(t *testing.T) {
		s, err := order.Processed.Process()
		require.NoError(t, err)
		assert.Equal(t, order.Processed, s)
	})

	t.Run("unknown_cannot_be_processed", func(t *testing.T) {
		_, err := order.Unknown.Process()
		require.Error(t, err)
	})
}
