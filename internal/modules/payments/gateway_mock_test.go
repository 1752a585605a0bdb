package payments

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockGatewayRoundTrip(t *testing.T) {
	g := NewMockGateway("mock")

	raw, err := g.BuildPayURL(context.Background(), PayURLRequest{
		OrderID:   "order-1",
		AmountVND: 120_000,
		ReturnURL: "http://localhost:8080/payments/mock/return",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)

	cb, err := g.ParseCallback(u.Query())
	require.NoError(t, err)
	assert.Equal(t, "order-1", cb.OrderID)
	assert.Equal(t, int64(120_000), cb.AmountVND)
	assert.True(t, cb.Success)
}

func TestMockGatewayFailures(t *testing.T) {
	g := NewMockGateway("mock")
	g.FailCreate = true
	_, err := g.BuildPayURL(context.Background(), PayURLRequest{OrderID: "o"})
	assert.Error(t, err)

	g.FailCreate = false
	params := url.Values{}
	params.Set("order_id", "order-1")
	params.Set("mock_result", "fail")
	cb, err := g.ParseCallback(params)
	require.NoError(t, err)
	assert.False(t, cb.Success)
}
