// Package gateway talks to the Razorpay payment processor.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
	"github.com/razorpay/razorpay-go/utils"
)

const DefaultBaseURL = "https://api.razorpay.com"

type RazorpayClient struct {
	keyID     string
	keySecret string
	api       *razorpay.Client
}

// NewRazorpayClient returns a client for the account keyID. An empty baseURL means the
// live API.
func NewRazorpayClient(keyID, keySecret, baseURL string) *RazorpayClient {
	api := razorpay.NewClient(keyID, keySecret)
	if baseURL != "" {
		api.Order.Request.BaseURL = strings.TrimRight(baseURL, "/")
	}
	return &RazorpayClient{
		keyID:     keyID,
		keySecret: keySecret,
		api:       api,
	}
}

func (c *RazorpayClient) KeyID() string {
	return c.keyID
}

// VerifyPaymentSignature checks the checkout signature, HMAC-SHA256 of orderID|paymentID
// keyed by the account secret.
func (c *RazorpayClient) VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool {
	signature = strings.ToLower(strings.TrimSpace(signature))
	if c.keySecret == "" || signature == "" {
		return false
	}
	return utils.VerifyPaymentSignature(map[string]interface{}{
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_payment_id": paymentID,
	}, signature, c.keySecret)
}

// CreateOrder opens a processor order for amountMinor and returns its id.
func (c *RazorpayClient) CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error) {
	// the SDK takes no context
	if err := ctx.Err(); err != nil {
		return "", err
	}

	body, err := c.api.Order.Create(map[string]interface{}{
		"amount":   amountMinor,
		"currency": currency,
		"receipt":  receipt,
	}, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay create order: %w", err)
	}

	id, _ := body["id"].(string)
	if id == "" {
		return "", errors.New("razorpay create order: empty order id")
	}
	return id, nil
}
