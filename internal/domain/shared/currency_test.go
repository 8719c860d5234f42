package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	code, err := ParseCurrency("idr")
	require.NoError(t, err)
	assert.Equal(t, "IDR", code)

	code, err = ParseCurrency(" USD ")
	require.NoError(t, err)
	assert.Equal(t, "USD", code)

	_, err = ParseCurrency("XYZW")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = ParseCurrency("")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
