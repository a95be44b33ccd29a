package clients

import (
	"context"
	"os"

	"github.com/wandergo/tripmarket/logger"
)

// ChargeRequest carries what a gateway needs to take a payment.
type ChargeRequest struct {
	Amount   float64
	Currency string
	Method   string
	Receipt  string
}

// PaymentGateway charges an amount and returns an opaque transaction id.
// The interface exists so controllers can be tested against a fake and so
// the sandbox and razorpay implementations are interchangeable.
type PaymentGateway interface {
	Charge(ctx context.Context, req ChargeRequest) (string, error)
}

// NewGatewayFromEnv picks the gateway implementation: razorpay when
// credentials are configured, otherwise the sandbox gateway that always
// succeeds.
func NewGatewayFromEnv() PaymentGateway {
	keyID := os.Getenv("RAZORPAY_KEY_ID")
	keySecret := os.Getenv("RAZORPAY_KEY_SECRET")
	if keyID != "" && keySecret != "" {
		logger.InfoLogger.Info("Using Razorpay payment gateway")
		return NewRazorpayGateway(keyID, keySecret)
	}
	logger.InfoLogger.Info("Razorpay credentials not set, using sandbox payment gateway")
	return NewSandboxGateway()
}
