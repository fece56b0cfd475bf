package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
)

func signPayload(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	secret := "test_key_secret"
	valid := signPayload(secret, "order_123|pay_456")

	t.Run("accepts a valid signature", func(t *testing.T) {
		if !VerifySignature(secret, "order_123", "pay_456", valid) {
			t.Error("expected valid signature to verify")
		}
	})

	t.Run("rejects a tampered payment id", func(t *testing.T) {
		if VerifySignature(secret, "order_123", "pay_999", valid) {
			t.Error("expected tampered payment id to fail")
		}
	})

	t.Run("rejects the wrong secret", func(t *testing.T) {
		if VerifySignature("other_secret", "order_123", "pay_456", valid) {
			t.Error("expected wrong secret to fail")
		}
	})

	t.Run("rejects an empty signature", func(t *testing.T) {
		if VerifySignature(secret, "order_123", "pay_456", "") {
			t.Error("expected empty signature to fail")
		}
	})
}

func newTestClient(baseURL string) *RazorpayClient {
	return NewRazorpayClient(&config.Config{
		External: config.ExternalConfig{
			Razorpay: config.RazorpayConfig{
				KeyID:     "rzp_test_key",
				KeySecret: "test_key_secret",
				BaseURL:   baseURL,
			},
		},
	})
}

func TestRazorpayClient_CreateOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/orders" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "rzp_test_key" || pass != "test_key_secret" {
			t.Error("expected basic auth with the key pair")
		}

		var payload map[string]interface{}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		if payload["currency"] != "INR" {
			t.Errorf("expected INR currency, got %v", payload["currency"])
		}
		if payload["amount"] != float64(129900) {
			t.Errorf("expected amount 129900, got %v", payload["amount"])
		}

		json.NewEncoder(w).Encode(GatewayOrder{
			ID:       "order_test123",
			Amount:   129900,
			Currency: "INR",
			Receipt:  "user-1",
			Status:   "created",
		})
	}))
	defer server.Close()

	client := newTestClient(server.URL)

	gatewayOrder, err := client.CreateOrder(context.Background(), 129900, "user-1")
	if err != nil {
		t.Fatalf("CreateOrder() error = %v", err)
	}
	if gatewayOrder.ID != "order_test123" {
		t.Errorf("expected order id, got %q", gatewayOrder.ID)
	}
	if gatewayOrder.Status != "created" {
		t.Errorf("expected created status, got %q", gatewayOrder.Status)
	}
}

func TestRazorpayClient_CreateOrder_Errors(t *testing.T) {
	t.Run("rejects non-positive amounts", func(t *testing.T) {
		client := newTestClient("http://localhost:0")
		if _, err := client.CreateOrder(context.Background(), 0, "user-1"); err == nil {
			t.Error("expected error for zero amount")
		}
	})

	t.Run("surfaces gateway errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"error":{"description":"Authentication failed"}}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		if _, err := client.CreateOrder(context.Background(), 1000, "user-1"); err == nil {
			t.Error("expected error for gateway failure")
		}
	})
}
