package coupons

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiscountPercentage(t *testing.T) {
	c := Coupon{Type: TypePercentage, Value: 10}
	assert.Equal(t, int64(100_000), Discount(c, 1_000_000))
	assert.Equal(t, int64(0), Discount(c, 0))
}

func TestDiscountFixed(t *testing.T) {
	c := Coupon{Type: TypeFixed, Value: 50_000}
	assert.Equal(t, int64(50_000), Discount(c, 200_000))
}

func TestDiscountClampedToSubtotal(t *testing.T) {
	c := Coupon{Type: TypeFixed, Value: 300_000}
	assert.Equal(t, int64(120_000), Discount(c, 120_000))

	full := Coupon{Type: TypePercentage, Value: 150}
	assert.Equal(t, int64(100_000), Discount(full, 100_000))
}

func TestDiscountNeverNegative(t *testing.T) {
	c := Coupon{Type: TypeFixed, Value: -5_000}
	assert.Equal(t, int64(0), Discount(c, 100_000))
}

func TestDiscountUnknownType(t *testing.T) {
	c := Coupon{Type: "bogus", Value: 50}
	assert.Equal(t, int64(0), Discount(c, 100_000))
}
