package orders

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotals(t *testing.T) {
	lines := []PricedLine{
		{ProductID: "p1", Quantity: 2, UnitPriceVND: 250_000},
		{ProductID: "p2", Quantity: 1, UnitPriceVND: 100_000},
	}

	// 600k subtotal, free shipping tier, 10% VAT
	got := ComputeTotals(lines, 0, 0)
	assert.Equal(t, int64(600_000), got.SubtotalVND)
	assert.Equal(t, int64(60_000), got.TaxVND)
	assert.Equal(t, int64(660_000), got.TotalVND)
}

func TestComputeTotalsWithShippingAndDiscount(t *testing.T) {
	lines := []PricedLine{
		{ProductID: "p1", Quantity: 1, UnitPriceVND: 200_000},
	}

	got := ComputeTotals(lines, 30_000, 50_000)
	assert.Equal(t, int64(200_000), got.SubtotalVND)
	assert.Equal(t, int64(30_000), got.ShippingFeeVND)
	assert.Equal(t, int64(20_000), got.TaxVND)
	assert.Equal(t, int64(50_000), got.DiscountVND)
	assert.Equal(t, int64(200_000), got.TotalVND)
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, 0, 0)
	assert.Equal(t, int64(0), got.SubtotalVND)
	assert.Equal(t, int64(0), got.TotalVND)
}

func TestSubtotalMultipliesQuantity(t *testing.T) {
	lines := []PricedLine{
		{Quantity: 3, UnitPriceVND: 99_000},
	}
	assert.Equal(t, int64(297_000), Subtotal(lines))
}

func TestNewOrderNumberFormat(t *testing.T) {
	at := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	n := NewOrderNumber(at)

	assert.True(t, strings.HasPrefix(n, "JH20250314-"), n)
	assert.Len(t, n, len("JH20250314-")+8)

	// random suffix keeps same-day numbers distinct
	assert.NotEqual(t, n, NewOrderNumber(at))
}
