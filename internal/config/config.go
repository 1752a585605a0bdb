package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBDSN   string
	BaseURL string // absolute base for gateway return/IPN URLs

	PaymentWindow time.Duration // unpaid gateway orders older than this get cancelled

	VNPay GatewayConfig
	MoMo  GatewayConfig

	SMTP SMTPConfig
}

type GatewayConfig struct {
	MerchantCode string
	Secret       string
	PayURL       string
}

type SMTPConfig struct {
	Host          string
	Port          string
	User          string
	Pass          string
	From          string
	FromName      string
	TLSMode       string // "", "tls", "starttls"
	SkipVerifyTLS bool
}

func FromEnv() (Config, error) {
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		return Config{}, fmt.Errorf("DB_DSN environment variable is required")
	}

	cfg := Config{
		DBDSN:         dsn,
		BaseURL:       envOr("BASE_URL", "http://localhost:8080"),
		PaymentWindow: envDuration("PAYMENT_WINDOW", 15*time.Minute),
		VNPay: GatewayConfig{
			MerchantCode: os.Getenv("VNPAY_TMN_CODE"),
			Secret:       os.Getenv("VNPAY_HASH_SECRET"),
			PayURL:       envOr("VNPAY_PAY_URL", "https://sandbox.vnpayment.vn/paymentv2/vpcpay.html"),
		},
		MoMo: GatewayConfig{
			MerchantCode: os.Getenv("MOMO_PARTNER_CODE"),
			Secret:       os.Getenv("MOMO_SECRET_KEY"),
			PayURL:       envOr("MOMO_PAY_URL", "https://test-payment.momo.vn/v2/gateway/api/create"),
		},
		SMTP: SMTPConfig{
			Host:          envOr("SMTP_HOST", "localhost"),
			Port:          envOr("SMTP_PORT", "1025"),
			User:          os.Getenv("SMTP_USER"),
			Pass:          os.Getenv("SMTP_PASS"),
			From:          envOr("SMTP_FROM", "no-reply@johnhenry.local"),
			FromName:      envOr("SMTP_FROM_NAME", "John Henry Fashion"),
			TLSMode:       os.Getenv("SMTP_TLS_MODE"),
			SkipVerifyTLS: envBool("SMTP_SKIP_VERIFY_TLS"),
		},
	}
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envBool(k string) bool {
	b, _ := strconv.ParseBool(os.Getenv(k))
	return b
}

func envDuration(k string, def time.Duration) time.Duration {
	if v := os.Getenv(k); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
