package guard_test

import (
	"errors"
	"testing"

	"orderflow/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConstructorGuard(t *testing.T) {
	g := guard.NewConstructorGuard()

	require.NoError(t, g.Validate(errors.New("not constructed")))
	require.NoError(t, g.Validate(nil))
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})
}

// TestConstructorGuardUsage demonstrates the intended embedding pattern.
func TestConstructorGuardUsage(t *testing.T) {
	type amount struct {
		cents int
		guard guard.ConstructorGuard
	}

	errAmountNotConstructed := errors.New("amount must be created via newAmount")

	newAmount := func(cents int) (amount, error) {
		if cents <= 0 {
			return amount{}, errors.New("cents must be positive")
		}
		return amount{cents: cents, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructed_value_passes_validation", func(t *testing.T) {
		a, err := newAmount(1999)
		require.NoError(t, err)
		require.NoError(t, a.guard.Validate(errAmountNotConstructed))
		assert.Equal(t, 1999, a.cents)
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var a amount
		err := a.guard.Validate(errAmountNotConstructed)
		require.Error(t, err)
		assert.Equal(t, errAmountNotConstructed, err)
	})
}
