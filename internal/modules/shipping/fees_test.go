package shipping

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteStandard(t *testing.T) {
	fee, err := Quote(MethodStandard, 100_000)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), fee)

	// free at and above the threshold
	fee, err = Quote(MethodStandard, 500_000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)
}

func TestQuoteExpress(t *testing.T) {
	fee, err := Quote(MethodExpress, 499_999)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), fee)

	fee, err = Quote(MethodExpress, 2_000_000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), fee)
}

func TestQuoteSuperExpressTiers(t *testing.T) {
	cases := []struct {
		subtotal int64
		fee      int64
	}{
		{100_000, 100_000},
		{999_999, 100_000},
		{1_000_000, 50_000},
		{1_999_999, 50_000},
		{2_000_000, 20_000},
		{5_000_000, 20_000},
	}
	for _, tc := range cases {
		fee, err := Quote(MethodSuperExpress, tc.subtotal)
		require.NoError(t, err)
		assert.Equal(t, tc.fee, fee, "subtotal=%d", tc.subtotal)
	}
}

func TestQuoteDefaultsToStandard(t *testing.T) {
	fee, err := Quote("", 100_000)
	require.NoError(t, err)
	assert.Equal(t, int64(30_000), fee)
}

func TestQuoteUnknownMethod(t *testing.T) {
	_, err := Quote("drone", 100_000)
	assert.ErrorIs(t, err, ErrUnknownMethod)
}
