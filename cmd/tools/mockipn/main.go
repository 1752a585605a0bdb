package main

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Sends a signed fake VNPay IPN to a local server, for testing the callback
// path without the sandbox.
func main() {
	base := flag.String("url", "http://localhost:8080/payments/vnpay/ipn", "IPN URL")
	secret := flag.String("secret", os.Getenv("VNPAY_HASH_SECRET"), "VNPay hash secret")
	orderID := flag.String("order-id", "", "Order ID (vnp_TxnRef)")
	txnID := flag.String("txn-id", "txn_"+randomHex(6), "Gateway transaction number")
	amount := flag.Int64("amount", 660000, "Amount in VND (will be sent x100)")
	code := flag.String("code", "00", "Response code (00 = success, 24 = cancelled)")
	dryRun := flag.Bool("dry-run", false, "Only print the signed URL, don't send")

	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "Error: secret not provided and VNPAY_HASH_SECRET not set")
		os.Exit(1)
	}
	if *orderID == "" {
		fmt.Fprintln(os.Stderr, "Error: -order-id is required")
		os.Exit(1)
	}

	params := url.Values{}
	params.Set("vnp_TmnCode", "MOCKTMN")
	params.Set("vnp_TxnRef", *orderID)
	params.Set("vnp_TransactionNo", *txnID)
	params.Set("vnp_Amount", strconv.FormatInt(*amount*100, 10))
	params.Set("vnp_ResponseCode", *code)
	params.Set("vnp_SecureHash", sign(params, *secret))

	target := *base + "?" + params.Encode()
	fmt.Println("GET", target)
	if *dryRun {
		return
	}

	resp, err := http.Get(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error sending IPN: %v\n", err)
		os.Exit(1)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	fmt.Printf("Status: %s\nBody: %s\n", resp.Status, string(body))
}

func sign(params url.Values, secret string) string {
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

func randomHex(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "deadbeef"
	}
	return hex.EncodeToString(b)
}
