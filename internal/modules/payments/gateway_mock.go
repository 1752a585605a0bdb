package payments

import (
	"context"
	"errors"
	"net/url"
	"strconv"
)

// MockGateway is used in tests and local development. Callbacks are trusted
// without a signature; a mock_result=fail parameter simulates a declined
// payment.
type MockGateway struct {
	GatewayName string
	FailCreate  bool
	PayBase     string
}

func NewMockGateway(name string) *MockGateway {
	return &MockGateway{GatewayName: name, PayBase: "https://pay.mock.local/checkout"}
}

func (g *MockGateway) Name() string {
	if g.GatewayName == "" {
		return "mock"
	}
	return g.GatewayName
}

func (g *MockGateway) BuildPayURL(ctx context.Context, req PayURLRequest) (string, error) {
	_ = ctx
	if g.FailCreate {
		return "", errors.New("mock gateway unavailable")
	}
	q := url.Values{}
	q.Set("order_id", req.OrderID)
	q.Set("amount", strconv.FormatInt(req.AmountVND, 10))
	q.Set("return_url", req.ReturnURL)
	return g.PayBase + "?" + q.Encode(), nil
}

func (g *MockGateway) ParseCallback(params url.Values) (CallbackData, error) {
	orderID := params.Get("order_id")
	if orderID == "" {
		return CallbackData{}, errors.New("mock: missing order_id")
	}
	amount, _ := strconv.ParseInt(params.Get("amount"), 10, 64)
	code := "00"
	success := true
	if params.Get("mock_result") == "fail" {
		code = "99"
		success = false
	}
	txnID := params.Get("txn_id")
	if txnID == "" {
		txnID = "mock-txn"
	}
	return CallbackData{
		OrderID:      orderID,
		TxnID:        txnID,
		AmountVND:    amount,
		Success:      success,
		ResponseCode: code,
		EventID:      orderID + ":" + txnID + ":" + code,
		Raw:          params,
	}, nil
}
