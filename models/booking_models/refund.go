package booking_models

import (
	"math"
	"time"

	"github.com/wandergo/tripmarket/models/trip_models"
)

// DaysUntil returns the number of whole days between now and the trip's
// start, rounding partial days up. A trip already underway yields a value
// <= 0.
func DaysUntil(tripStart, now time.Time) int {
	return int(math.Ceil(tripStart.Sub(now).Hours() / 24))
}

// RefundAmount computes the refund for cancelling daysUntil days before the
// trip starts. Tiers are evaluated in order, first match wins: inside the
// full-refund window the whole price comes back, inside the half-refund
// window 50%, otherwise nothing.
func RefundAmount(totalPrice float64, daysUntil int, policy trip_models.CancellationPolicy) float64 {
	switch {
	case daysUntil >= policy.FullRefundDays:
		return totalPrice
	case daysUntil >= policy.HalfRefundDays:
		return totalPrice * 0.5
	default:
		return 0
	}
}
