package locator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pvframework/pkg/locator"
)

func TestRequiredField(t *testing.T) {
	t.Parallel()

	data := map[string]any{
		"account": map[string]any{"number": "123", "balance": 10.5, "owner": nil},
	}

	t.Run("typed value", func(t *testing.T) {
		v, err := locator.RequiredField[string](data, "account.number")
		require.NoError(t, err)
		assert.Equal(t, "123", v)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := locator.RequiredField[string](data, "account.balance")
		require.Error(t, err)
		assert.ErrorIs(t, err, locator.ErrTypeMismatch)
		assert.Contains(t, err.Error(), "account.balance")
	})

	t.Run("missing value", func(t *testing.T) {
		_, err := locator.RequiredField[string](data, "account.iban")
		assert.ErrorIs(t, err, locator.ErrMissingValue)
	})

	t.Run("nil for nilable type", func(t *testing.T) {
		v, err := locator.RequiredField[*string](data, "account.owner")
		require.NoError(t, err)
		assert.Nil(t, v)
	})

	t.Run("nil for non nilable type", func(t *testing.T) {
		_, err := locator.RequiredField[int](data, "account.owner")
		assert.ErrorIs(t, err, locator.ErrTypeMismatch)
	})
}

func TestOptionalField(t *testing.T) {
	t.Parallel()

	data := map[string]any{"age": 42}

	v, ok := locator.OptionalField[int](data, "age")
	assert.True(t, ok)
	assert.Equal(t, 42, v)

	_, ok = locator.OptionalField[int](data, "name")
	assert.False(t, ok)

	_, ok = locator.OptionalField[string](data, "age")
	assert.False(t, ok)
}
