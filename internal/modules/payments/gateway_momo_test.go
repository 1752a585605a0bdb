package payments

import (
	"fmt"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/config"
)

func momoForTest() *MoMoGateway {
	return NewMoMoGateway(config.GatewayConfig{
		MerchantCode: "TESTPARTNER",
		Secret:       "momo-secret",
		PayURL:       "https://test-payment.momo.vn/v2/gateway/api/create",
	})
}

func signedMoMoCallback(secret, orderID string, amountVND int64, resultCode string) url.Values {
	params := url.Values{}
	params.Set("partnerCode", "TESTPARTNER")
	params.Set("orderId", orderID)
	params.Set("requestId", "req-1")
	params.Set("amount", fmt.Sprintf("%d", amountVND))
	params.Set("orderInfo", "Order")
	params.Set("orderType", "momo_wallet")
	params.Set("transId", "2302834982")
	params.Set("resultCode", resultCode)
	params.Set("message", "Success")
	params.Set("payType", "qr")
	params.Set("responseTime", "1710410400000")
	params.Set("extraData", "")

	raw := fmt.Sprintf("accessKey=%s&amount=%s&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%s&resultCode=%s&transId=%s",
		"TESTPARTNER",
		params.Get("amount"),
		params.Get("extraData"),
		params.Get("message"),
		params.Get("orderId"),
		params.Get("orderInfo"),
		params.Get("orderType"),
		params.Get("partnerCode"),
		params.Get("payType"),
		params.Get("requestId"),
		params.Get("responseTime"),
		params.Get("resultCode"),
		params.Get("transId"),
	)
	params.Set("signature", signMoMo(raw, secret))
	return params
}

func TestMoMoParseCallbackSuccess(t *testing.T) {
	g := momoForTest()
	params := signedMoMoCallback("momo-secret", "order-9", 250_000, "0")

	cb, err := g.ParseCallback(params)
	require.NoError(t, err)
	assert.Equal(t, "order-9", cb.OrderID)
	assert.Equal(t, int64(250_000), cb.AmountVND)
	assert.True(t, cb.Success)
	assert.Equal(t, "order-9:req-1:0", cb.EventID)
}

func TestMoMoParseCallbackDeclined(t *testing.T) {
	g := momoForTest()
	params := signedMoMoCallback("momo-secret", "order-9", 250_000, "1006")

	cb, err := g.ParseCallback(params)
	require.NoError(t, err)
	assert.False(t, cb.Success)
}

func TestMoMoParseCallbackRejectsBadSignature(t *testing.T) {
	g := momoForTest()

	params := signedMoMoCallback("wrong-secret", "order-9", 250_000, "0")
	_, err := g.ParseCallback(params)
	assert.Error(t, err)

	tampered := signedMoMoCallback("momo-secret", "order-9", 250_000, "0")
	tampered.Set("amount", "1")
	_, err = g.ParseCallback(tampered)
	assert.Error(t, err)

	unsigned := url.Values{}
	unsigned.Set("orderId", "order-9")
	_, err = g.ParseCallback(unsigned)
	assert.Error(t, err)
}
