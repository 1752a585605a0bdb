package refunds

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/modules/orders"
)

func TestEligible(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)

	fresh := now.Add(-24 * time.Hour)
	assert.NoError(t, Eligible(orders.StatusDelivered, &fresh, now))

	edge := now.Add(-RefundWindow)
	assert.NoError(t, Eligible(orders.StatusDelivered, &edge, now))
}

func TestEligibleRejectsUndelivered(t *testing.T) {
	now := time.Now()
	at := now.Add(-time.Hour)

	assert.ErrorIs(t, Eligible(orders.StatusShipped, &at, now), ErrNotDelivered)
	assert.ErrorIs(t, Eligible(orders.StatusCancelled, &at, now), ErrNotDelivered)
	assert.ErrorIs(t, Eligible(orders.StatusDelivered, nil, now), ErrNotDelivered)
}

func TestEligibleRejectsExpiredWindow(t *testing.T) {
	now := time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	old := now.Add(-RefundWindow - time.Second)

	assert.ErrorIs(t, Eligible(orders.StatusDelivered, &old, now), ErrWindowExpired)
}
