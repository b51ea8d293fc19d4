package port

import "context"

type SignatureVerifier interface {
	VerifyPaymentSignature(gatewayOrderID, paymentID, signature string) bool
}

type PaymentGateway interface {
	SignatureVerifier
	// CreateOrder registers an amount (minor units) with the processor and returns its order id.
	CreateOrder(ctx context.Context, amountMinor int64, currency, receipt string) (string, error)
	KeyID() string
}
