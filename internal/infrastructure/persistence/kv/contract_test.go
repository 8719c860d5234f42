package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runStoreContract exercises the behaviour every medium must share
func runStoreContract(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("missing key is not an error", func(t *testing.T) {
		value, found, err := store.Get(ctx, "missing_default")
		require.NoError(t, err)
		assert.False(t, found)
		assert.Nil(t, value)
	})

	t.Run("set then get returns the value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "staff_acme", []byte(`[{"id":"s-1"}]`)))

		value, found, err := store.Get(ctx, "staff_acme")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[{"id":"s-1"}]`, string(value))
	})

	t.Run("set replaces the previous value", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "staff_acme", []byte(`[]`)))

		value, found, err := store.Get(ctx, "staff_acme")
		require.NoError(t, err)
		assert.True(t, found)
		assert.JSONEq(t, `[]`, string(value))
	})

	t.Run("keys are independent", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, "staff_globex", []byte(`[{"id":"g-1"}]`)))

		value, _, err := store.Get(ctx, "staff_acme")
		require.NoError(t, err)
		assert.JSONEq(t, `[]`, string(value))
	})

	t.Run("delete removes and tolerates missing keys", func(t *testing.T) {
		require.NoError(t, store.Delete(ctx, "staff_acme"))
		require.NoError(t, store.Delete(ctx, "staff_acme"))

		_, found, err := store.Get(ctx, "staff_acme")
		require.NoError(t, err)
		assert.False(t, found)
	})
}
