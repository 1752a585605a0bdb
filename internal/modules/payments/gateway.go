package payments

import (
	"context"
	"net/url"
)

// PayURLRequest carries everything a gateway needs to start a redirect-based
// payment for one order.
type PayURLRequest struct {
	OrderID     string
	OrderNumber string
	AmountVND   int64
	OrderInfo   string
	ReturnURL   string
	IPNURL      string
	ClientIP    string
}

// CallbackData is the normalized result of a gateway return redirect or IPN.
// The order id is parsed out of the gateway's transaction reference.
type CallbackData struct {
	OrderID      string
	TxnID        string
	AmountVND    int64
	Success      bool
	ResponseCode string
	EventID      string // unique per gateway notification, for dedupe
	Raw          url.Values
}

// Gateway is the client contract for one external payment processor.
// ParseCallback must verify the signature before trusting any field.
type Gateway interface {
	Name() string
	BuildPayURL(ctx context.Context, req PayURLRequest) (string, error)
	ParseCallback(params url.Values) (CallbackData, error)
}
