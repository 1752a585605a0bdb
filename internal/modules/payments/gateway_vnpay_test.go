package payments

import (
	"context"
	"net/url"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/config"
)

func vnpayForTest() *VNPayGateway {
	g := NewVNPayGateway(config.GatewayConfig{
		MerchantCode: "TESTTMN",
		Secret:       "test-secret",
		PayURL:       "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html",
	})
	g.now = func() time.Time { return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC) }
	return g
}

func TestVNPayBuildPayURL(t *testing.T) {
	g := vnpayForTest()

	raw, err := g.BuildPayURL(context.Background(), PayURLRequest{
		OrderID:   "order-1",
		AmountVND: 660_000,
		OrderInfo: "Order JH20250314-abcd1234",
		ReturnURL: "http://localhost:8080/payments/vnpay/return",
		IPNURL:    "http://localhost:8080/payments/vnpay/ipn",
		ClientIP:  "203.0.113.7",
	})
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	q := u.Query()

	// amount is in VND x100 on the wire
	assert.Equal(t, "66000000", q.Get("vnp_Amount"))
	assert.Equal(t, "order-1", q.Get("vnp_TxnRef"))
	assert.Equal(t, "TESTTMN", q.Get("vnp_TmnCode"))
	assert.NotEmpty(t, q.Get("vnp_SecureHash"))

	// the hash must cover the emitted params
	verify := url.Values{}
	for k, vs := range q {
		if k == "vnp_SecureHash" {
			continue
		}
		for _, v := range vs {
			verify.Add(k, v)
		}
	}
	assert.Equal(t, signVNPay(verify, "test-secret"), q.Get("vnp_SecureHash"))
}

func signedVNPayCallback(t *testing.T, secret, orderID string, amountVND int64, code string) url.Values {
	t.Helper()
	params := url.Values{}
	params.Set("vnp_TxnRef", orderID)
	params.Set("vnp_TransactionNo", "14012345")
	params.Set("vnp_Amount", strconv.FormatInt(amountVND*100, 10))
	params.Set("vnp_ResponseCode", code)
	params.Set("vnp_SecureHash", signVNPay(params, secret))
	return params
}

func TestVNPayParseCallbackSuccess(t *testing.T) {
	g := vnpayForTest()
	params := signedVNPayCallback(t, "test-secret", "order-1", 660_000, "00")

	cb, err := g.ParseCallback(params)
	require.NoError(t, err)
	assert.Equal(t, "order-1", cb.OrderID)
	assert.Equal(t, int64(660_000), cb.AmountVND)
	assert.True(t, cb.Success)
	assert.Equal(t, "order-1:14012345:00", cb.EventID)
}

func TestVNPayParseCallbackDeclined(t *testing.T) {
	g := vnpayForTest()
	params := signedVNPayCallback(t, "test-secret", "order-1", 660_000, "24")

	cb, err := g.ParseCallback(params)
	require.NoError(t, err)
	assert.False(t, cb.Success)
	assert.Equal(t, "24", cb.ResponseCode)
}

func TestVNPayParseCallbackRejectsTampering(t *testing.T) {
	g := vnpayForTest()

	params := signedVNPayCallback(t, "test-secret", "order-1", 660_000, "00")
	params.Set("vnp_Amount", "100") // changed after signing
	_, err := g.ParseCallback(params)
	assert.Error(t, err)

	wrongKey := signedVNPayCallback(t, "other-secret", "order-1", 660_000, "00")
	_, err = g.ParseCallback(wrongKey)
	assert.Error(t, err)

	unsigned := url.Values{}
	unsigned.Set("vnp_TxnRef", "order-1")
	_, err = g.ParseCallback(unsigned)
	assert.Error(t, err)
}
