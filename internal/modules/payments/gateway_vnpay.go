package payments

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/config"
)

// VNPayGateway builds the redirect pay URL locally and verifies callbacks,
// per the VNPay v2 contract: HMAC-SHA512 over the sorted, url-encoded
// parameter string, amount in VND x100, response code "00" on success.
type VNPayGateway struct {
	cfg config.GatewayConfig
	now func() time.Time
}

func NewVNPayGateway(cfg config.GatewayConfig) *VNPayGateway {
	return &VNPayGateway{cfg: cfg, now: time.Now}
}

func (g *VNPayGateway) Name() string { return "vnpay" }

func (g *VNPayGateway) BuildPayURL(ctx context.Context, req PayURLRequest) (string, error) {
	_ = ctx

	now := g.now()
	params := url.Values{}
	params.Set("vnp_Version", "2.1.0")
	params.Set("vnp_Command", "pay")
	params.Set("vnp_TmnCode", g.cfg.MerchantCode)
	params.Set("vnp_Amount", strconv.FormatInt(req.AmountVND*100, 10))
	params.Set("vnp_CurrCode", "VND")
	params.Set("vnp_TxnRef", req.OrderID)
	params.Set("vnp_OrderInfo", req.OrderInfo)
	params.Set("vnp_OrderType", "other")
	params.Set("vnp_Locale", "vn")
	params.Set("vnp_ReturnUrl", req.ReturnURL)
	params.Set("vnp_IpAddr", req.ClientIP)
	params.Set("vnp_CreateDate", now.UTC().Format("20060102150405"))

	signed := signVNPay(params, g.cfg.Secret)
	params.Set("vnp_SecureHash", signed)

	return g.cfg.PayURL + "?" + params.Encode(), nil
}

func (g *VNPayGateway) ParseCallback(params url.Values) (CallbackData, error) {
	got := params.Get("vnp_SecureHash")
	if got == "" {
		return CallbackData{}, errors.New("vnpay: missing secure hash")
	}

	verify := url.Values{}
	for k, vs := range params {
		if k == "vnp_SecureHash" || k == "vnp_SecureHashType" {
			continue
		}
		for _, v := range vs {
			verify.Add(k, v)
		}
	}
	want := signVNPay(verify, g.cfg.Secret)
	if !hmac.Equal([]byte(strings.ToLower(got)), []byte(want)) {
		return CallbackData{}, errors.New("vnpay: invalid signature")
	}

	amount, err := strconv.ParseInt(params.Get("vnp_Amount"), 10, 64)
	if err != nil {
		return CallbackData{}, errors.New("vnpay: malformed amount")
	}

	code := params.Get("vnp_ResponseCode")
	txnID := params.Get("vnp_TransactionNo")
	orderID := params.Get("vnp_TxnRef")
	if orderID == "" {
		return CallbackData{}, errors.New("vnpay: missing txn ref")
	}

	return CallbackData{
		OrderID:      orderID,
		TxnID:        txnID,
		AmountVND:    amount / 100,
		Success:      code == "00",
		ResponseCode: code,
		EventID:      orderID + ":" + txnID + ":" + code,
		Raw:          params,
	}, nil
}

func signVNPay(params url.Values, secret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(k))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(params.Get(k)))
	}

	mac := hmac.New(sha512.New, []byte(secret))
	mac.Write([]byte(b.String()))
	return hex.EncodeToString(mac.Sum(nil))
}
