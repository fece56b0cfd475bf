// internal/domain/payment/razorpay.go
package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
)

// RazorpayClient talks to the Razorpay REST API
type RazorpayClient struct {
	keyID     string
	keySecret string
	baseURL   string
	client    *http.Client
}

// NewRazorpayClient creates a Razorpay API client
func NewRazorpayClient(cfg *config.Config) *RazorpayClient {
	return &RazorpayClient{
		keyID:     cfg.External.Razorpay.KeyID,
		keySecret: cfg.External.Razorpay.KeySecret,
		baseURL:   cfg.External.Razorpay.BaseURL,
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// KeyID returns the public key ID for the hosted checkout
func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// GatewayOrder is Razorpay's order object
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}

// CreateOrder creates a gateway order for the given amount in paise
func (c *RazorpayClient) CreateOrder(ctx context.Context, amount int64, receipt string) (*GatewayOrder, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive")
	}

	payload := map[string]interface{}{
		"amount":   amount,
		"currency": "INR",
		"receipt":  receipt,
	}

	var gatewayOrder GatewayOrder
	if err := c.call(ctx, http.MethodPost, "/orders", payload, &gatewayOrder); err != nil {
		return nil, fmt.Errorf("failed to create gateway order: %w", err)
	}

	return &gatewayOrder, nil
}

// VerifySignature checks the HMAC-SHA256 callback signature over
// "<order_id>|<payment_id>" against the key secret.
func (c *RazorpayClient) VerifySignature(orderID, paymentID, signature string) bool {
	return VerifySignature(c.keySecret, orderID, paymentID, signature)
}

// VerifySignature checks a Razorpay payment signature with the given secret
func VerifySignature(secret, orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// call performs an authenticated JSON request against the gateway
func (c *RazorpayClient) call(ctx context.Context, method, path string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read gateway response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, string(data))
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode gateway response: %w", err)
		}
	}

	return nil
}
