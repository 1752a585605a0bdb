package payments

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/InfinityZero3000/John-Henry-Fashion-sub000/internal/config"
)

// MoMoGateway creates the payment server-to-server: a signed JSON request to
// the create endpoint returns the redirect payUrl. Signatures are
// HMAC-SHA256 over a canonical key=value string; resultCode 0 means paid.
type MoMoGateway struct {
	cfg    config.GatewayConfig
	client *http.Client
}

func NewMoMoGateway(cfg config.GatewayConfig) *MoMoGateway {
	return &MoMoGateway{cfg: cfg, client: &http.Client{Timeout: 10 * time.Second}}
}

func (g *MoMoGateway) Name() string { return "momo" }

type momoCreateRequest struct {
	PartnerCode string `json:"partnerCode"`
	RequestID   string `json:"requestId"`
	Amount      int64  `json:"amount"`
	OrderID     string `json:"orderId"`
	OrderInfo   string `json:"orderInfo"`
	RedirectURL string `json:"redirectUrl"`
	IPNURL      string `json:"ipnUrl"`
	RequestType string `json:"requestType"`
	ExtraData   string `json:"extraData"`
	Signature   string `json:"signature"`
}

type momoCreateResponse struct {
	ResultCode int    `json:"resultCode"`
	Message    string `json:"message"`
	PayURL     string `json:"payUrl"`
}

func (g *MoMoGateway) BuildPayURL(ctx context.Context, req PayURLRequest) (string, error) {
	requestID := uuid.NewString()

	raw := fmt.Sprintf("accessKey=%s&amount=%d&extraData=&ipnUrl=%s&orderId=%s&orderInfo=%s&partnerCode=%s&redirectUrl=%s&requestId=%s&requestType=captureWallet",
		g.cfg.MerchantCode, req.AmountVND, req.IPNURL, req.OrderID, req.OrderInfo, g.cfg.MerchantCode, req.ReturnURL, requestID)

	body := momoCreateRequest{
		PartnerCode: g.cfg.MerchantCode,
		RequestID:   requestID,
		Amount:      req.AmountVND,
		OrderID:     req.OrderID,
		OrderInfo:   req.OrderInfo,
		RedirectURL: req.ReturnURL,
		IPNURL:      req.IPNURL,
		RequestType: "captureWallet",
		Signature:   signMoMo(raw, g.cfg.Secret),
	}

	buf, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.PayURL, bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("momo create failed: %w", err)
	}
	defer resp.Body.Close()

	var out momoCreateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("momo create: malformed response: %w", err)
	}
	if out.PayURL == "" {
		return "", fmt.Errorf("momo create rejected: code=%d message=%s", out.ResultCode, out.Message)
	}
	return out.PayURL, nil
}

func (g *MoMoGateway) ParseCallback(params url.Values) (CallbackData, error) {
	got := params.Get("signature")
	if got == "" {
		return CallbackData{}, errors.New("momo: missing signature")
	}

	raw := fmt.Sprintf("accessKey=%s&amount=%s&extraData=%s&message=%s&orderId=%s&orderInfo=%s&orderType=%s&partnerCode=%s&payType=%s&requestId=%s&responseTime=%s&resultCode=%s&transId=%s",
		g.cfg.MerchantCode,
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
	want := signMoMo(raw, g.cfg.Secret)
	if !hmac.Equal([]byte(got), []byte(want)) {
		return CallbackData{}, errors.New("momo: invalid signature")
	}

	orderID := params.Get("orderId")
	if orderID == "" {
		return CallbackData{}, errors.New("momo: missing order id")
	}
	amount, err := strconv.ParseInt(params.Get("amount"), 10, 64)
	if err != nil {
		return CallbackData{}, errors.New("momo: malformed amount")
	}

	code := params.Get("resultCode")
	txnID := params.Get("transId")

	return CallbackData{
		OrderID:      orderID,
		TxnID:        txnID,
		AmountVND:    amount,
		Success:      code == "0",
		ResponseCode: code,
		EventID:      orderID + ":" + params.Get("requestId") + ":" + code,
		Raw:          params,
	}, nil
}

func signMoMo(raw, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(raw))
	return hex.EncodeToString(mac.Sum(nil))
}
