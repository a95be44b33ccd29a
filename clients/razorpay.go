package clients

import (
	"context"
	"fmt"
	"math"

	"github.com/razorpay/razorpay-go"
)

// RazorpayGateway implements PaymentGateway on the Razorpay SDK. Selected
// when RAZORPAY_KEY_ID / RAZORPAY_KEY_SECRET are configured.
type RazorpayGateway struct {
	client *razorpay.Client
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (g *RazorpayGateway) Charge(_ context.Context, req ChargeRequest) (string, error) {
	currency := req.Currency
	if currency == "" {
		currency = "USD"
	}

	// Razorpay amounts are in the currency's smallest unit.
	data := map[string]interface{}{
		"amount":   amountInSubunits(req.Amount),
		"currency": currency,
		"receipt":  req.Receipt,
	}

	order, err := g.client.Order.Create(data, nil)
	if err != nil {
		return "", fmt.Errorf("razorpay order create failed: %w", err)
	}

	orderID, ok := order["id"].(string)
	if !ok || orderID == "" {
		return "", fmt.Errorf("razorpay order response missing id")
	}
	return orderID, nil
}

// amountInSubunits converts a major-unit amount to the currency's smallest
// unit. Rounded, not truncated: 99.99 is 9999 subunits, and float noise like
// 29.999999999999996 must not lose a cent.
func amountInSubunits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
