package mailer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMIMEMessageTextOnly(t *testing.T) {
	msg, err := buildMIMEMessage(Email{
		From:     "shop@example.com",
		FromName: "John Henry",
		To:       []string{"customer@example.com"},
		Subject:  "Order update",
		TextBody: "Your order is now shipped.",
	}, "example.com")
	require.NoError(t, err)

	assert.Contains(t, msg, "To: customer@example.com")
	assert.Contains(t, msg, "Content-Type: text/plain")
	assert.Contains(t, msg, "Your order is now shipped.")
}

func TestBuildMIMEMessageMultipart(t *testing.T) {
	msg, err := buildMIMEMessage(Email{
		From:     "shop@example.com",
		To:       []string{"customer@example.com"},
		Subject:  "Order update",
		TextBody: "plain",
		HTMLBody: "<p>html</p>",
	}, "example.com")
	require.NoError(t, err)

	assert.Contains(t, msg, "multipart/alternative")
	assert.Contains(t, msg, "text/plain")
	assert.Contains(t, msg, "text/html")
}

func TestBuildMIMEMessageValidation(t *testing.T) {
	_, err := buildMIMEMessage(Email{From: "a@b.c", Subject: "s", TextBody: "x"}, "example.com")
	assert.Error(t, err, "missing recipient")

	_, err = buildMIMEMessage(Email{To: []string{"a@b.c"}, Subject: "s", TextBody: "x"}, "example.com")
	assert.Error(t, err, "missing from")

	_, err = buildMIMEMessage(Email{From: "a@b.c", To: []string{"d@e.f"}, Subject: "s"}, "example.com")
	assert.Error(t, err, "missing body")
}

func TestFormatAddressEncodesDisplayName(t *testing.T) {
	assert.Equal(t, "shop@example.com", formatAddress("", "shop@example.com"))

	got := formatAddress("Cửa hàng", "shop@example.com")
	assert.True(t, strings.HasSuffix(got, "<shop@example.com>"), got)
	assert.Contains(t, got, "=?utf-8?")
}
