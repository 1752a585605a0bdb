package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockShortageMessage(t *testing.T) {
	soldOut := StockShortage{ProductName: "Oxford Shirt", Requested: 2, Available: 0}
	assert.Equal(t, "Oxford Shirt is sold out", soldOut.Message())

	short := StockShortage{ProductName: "Chino Pants", Requested: 5, Available: 3}
	assert.Equal(t, "only 3 of Chino Pants left (requested 5)", short.Message())
}

func TestEnsureAvailable(t *testing.T) {
	want := map[string]int{"p1": 2, "p2": 1}
	stock := map[string]int{"p1": 10, "p2": 1}
	names := map[string]string{"p1": "A", "p2": "B"}

	assert.NoError(t, EnsureAvailable(want, stock, names))
}

func TestEnsureAvailableShort(t *testing.T) {
	want := map[string]int{"p1": 2, "p2": 4}
	stock := map[string]int{"p1": 10, "p2": 3}
	names := map[string]string{"p1": "A", "p2": "B"}

	err := EnsureAvailable(want, stock, names)
	require.Error(t, err)

	var short *InsufficientStockError
	require.ErrorAs(t, err, &short)
	require.Len(t, short.Items, 1)
	assert.Equal(t, "p2", short.Items[0].ProductID)
	assert.Equal(t, 4, short.Items[0].Requested)
	assert.Equal(t, 3, short.Items[0].Available)
}

func TestEnsureAvailableMissingProductIsSoldOut(t *testing.T) {
	want := map[string]int{"gone": 1}
	err := EnsureAvailable(want, map[string]int{}, map[string]string{"gone": "Gone"})

	var short *InsufficientStockError
	require.ErrorAs(t, err, &short)
	require.Len(t, short.Items, 1)
	assert.Equal(t, 0, short.Items[0].Available)
}
