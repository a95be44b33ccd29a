package booking_controller

import "errors"

var (
	ErrPriceMismatch    = errors.New("total price does not match trip price")
	ErrPaymentNotUsable = errors.New("payment is missing, not completed, or belongs to another user")
)
