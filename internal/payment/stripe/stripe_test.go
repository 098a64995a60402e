package stripe

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestToMinorAmount(t *testing.T) {
	cases := []struct {
		amount   string
		currency string
		want     int64
	}{
		{"8.99", "USD", 899},
		{"0.50", "usd", 50},
		{"100", "EUR", 10000},
		{"1200", "JPY", 1200},
		{"59.99", "USD", 5999},
	}
	for _, tc := range cases {
		got, err := ToMinorAmount(tc.amount, tc.currency)
		if err != nil {
			t.Fatalf("ToMinorAmount(%q, %q) failed: %v", tc.amount, tc.currency, err)
		}
		if got != tc.want {
			t.Fatalf("ToMinorAmount(%q, %q) want %d got %d", tc.amount, tc.currency, tc.want, got)
		}
	}
}

func TestToMinorAmountRejectsInvalid(t *testing.T) {
	for _, amount := range []string{"", "abc", "0", "-1.50"} {
		if _, err := ToMinorAmount(amount, "USD"); !errors.Is(err, ErrConfigInvalid) {
			t.Fatalf("ToMinorAmount(%q) want ErrConfigInvalid got %v", amount, err)
		}
	}
}

func TestFromMinorAmount(t *testing.T) {
	if got := FromMinorAmount(899, "USD"); got != "8.99" {
		t.Fatalf("FromMinorAmount(899, USD) want 8.99 got %s", got)
	}
	if got := FromMinorAmount(1200, "JPY"); got != "1200" {
		t.Fatalf("FromMinorAmount(1200, JPY) want 1200 got %s", got)
	}
}

func TestCreateSubscriptionSession(t *testing.T) {
	var gotForm url.Values
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/checkout/sessions" {
			t.Errorf("path want /v1/checkout/sessions got %s", r.URL.Path)
		}
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form failed: %v", err)
		}
		gotForm = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"cs_sub_1","url":"https://pay.example/cs_sub_1","status":"open"}`)
	}))
	defer server.Close()

	cfg := &Config{
		SecretKey:  "sk_test",
		SuccessURL: "https://shop.example/done",
		CancelURL:  "https://shop.example/cart",
		APIBaseURL: server.URL,
	}
	result, err := CreateSubscriptionSession(context.Background(), cfg, CreateSubscriptionInput{
		PriceID:       "price_123",
		CustomerEmail: "sub@smiley.example",
	})
	if err != nil {
		t.Fatalf("create subscription session failed: %v", err)
	}
	if result.SessionID != "cs_sub_1" || result.URL != "https://pay.example/cs_sub_1" {
		t.Fatalf("unexpected session result: %+v", result)
	}

	if got := gotForm.Get("mode"); got != "subscription" {
		t.Fatalf("mode want subscription got %s", got)
	}
	if got := gotForm.Get("line_items[0][price]"); got != "price_123" {
		t.Fatalf("price want price_123 got %s", got)
	}
	if got := gotForm.Get("line_items[0][quantity]"); got != "1" {
		t.Fatalf("quantity want 1 got %s", got)
	}
	if got := gotForm.Get("customer_email"); got != "sub@smiley.example" {
		t.Fatalf("customer_email want sub@smiley.example got %s", got)
	}
	if got := gotForm.Get("success_url"); got != "https://shop.example/done" {
		t.Fatalf("success_url want the configured default got %s", got)
	}
}

func TestCreateSubscriptionSessionRequiresPriceID(t *testing.T) {
	cfg := &Config{
		SecretKey:  "sk_test",
		SuccessURL: "https://shop.example/done",
		CancelURL:  "https://shop.example/cart",
	}
	_, err := CreateSubscriptionSession(context.Background(), cfg, CreateSubscriptionInput{})
	if !errors.Is(err, ErrConfigInvalid) {
		t.Fatalf("want ErrConfigInvalid got %v", err)
	}
}

func signTestPayload(secret string, timestamp int64, body []byte) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(fmt.Sprintf("%d.%s", timestamp, body)))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifyAndParseWebhookCompleted(t *testing.T) {
	secret := "whsec_test"
	now := time.Now()
	body := []byte(`{
		"id": "evt_1",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_test_1",
				"customer": "cus_1",
				"amount_total": 899,
				"currency": "usd",
				"created": ` + fmt.Sprintf("%d", now.Unix()) + `,
				"payment_status": "paid",
				"metadata": {"order_no": "SM20260101000000123456"}
			}
		}
	}`)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), signTestPayload(secret, now.Unix(), body))

	cfg := &Config{WebhookSecret: secret}
	result, err := VerifyAndParseWebhook(cfg, map[string]string{"Stripe-Signature": header}, body, now)
	if err != nil {
		t.Fatalf("verify webhook failed: %v", err)
	}
	if result.Status != "success" {
		t.Fatalf("status want success got %s", result.Status)
	}
	if result.OrderNo != "SM20260101000000123456" {
		t.Fatalf("order_no want SM20260101000000123456 got %s", result.OrderNo)
	}
	if result.SessionID != "cs_test_1" {
		t.Fatalf("session_id want cs_test_1 got %s", result.SessionID)
	}
	if result.Amount != "8.99" {
		t.Fatalf("amount want 8.99 got %s", result.Amount)
	}
	if result.Currency != "USD" {
		t.Fatalf("currency want USD got %s", result.Currency)
	}
}

func TestVerifyAndParseWebhookRejectsBadSignature(t *testing.T) {
	now := time.Now()
	body := []byte(`{"id":"evt_2","type":"checkout.session.completed","data":{"object":{"id":"cs_2"}}}`)
	header := fmt.Sprintf("t=%d,v1=%s", now.Unix(), strings.Repeat("0", 64))

	cfg := &Config{WebhookSecret: "whsec_test"}
	_, err := VerifyAndParseWebhook(cfg, map[string]string{"Stripe-Signature": header}, body, now)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("want ErrSignatureInvalid got %v", err)
	}
}

func TestVerifyAndParseWebhookRejectsStaleTimestamp(t *testing.T) {
	secret := "whsec_test"
	now := time.Now()
	stale := now.Add(-time.Hour).Unix()
	body := []byte(`{"id":"evt_3","type":"checkout.session.completed","data":{"object":{"id":"cs_3"}}}`)
	header := fmt.Sprintf("t=%d,v1=%s", stale, signTestPayload(secret, stale, body))

	cfg := &Config{WebhookSecret: secret}
	_, err := VerifyAndParseWebhook(cfg, map[string]string{"Stripe-Signature": header}, body, now)
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("want ErrSignatureInvalid got %v", err)
	}
}

func TestVerifyAndParseWebhookRejectsMissingHeader(t *testing.T) {
	cfg := &Config{WebhookSecret: "whsec_test"}
	_, err := VerifyAndParseWebhook(cfg, nil, []byte(`{}`), time.Now())
	if !errors.Is(err, ErrSignatureInvalid) {
		t.Fatalf("want ErrSignatureInvalid got %v", err)
	}
}

func TestMapEventTypeStatus(t *testing.T) {
	cases := map[string]string{
		"checkout.session.completed":               "success",
		"checkout.session.async_payment_succeeded": "success",
		"checkout.session.expired":                 "expired",
		"checkout.session.async_payment_failed":    "failed",
	}
	for eventType, want := range cases {
		got, ok := mapEventTypeStatus(eventType)
		if !ok || got != want {
			t.Fatalf("mapEventTypeStatus(%q) want %s got %s ok=%v", eventType, want, got, ok)
		}
	}
	if _, ok := mapEventTypeStatus("invoice.paid"); ok {
		t.Fatalf("unexpected mapping for unrelated event type")
	}
}
