package booking_models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/wandergo/tripmarket/models/trip_models"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("WholeDays", func(t *testing.T) {
		assert.Equal(t, 20, DaysUntil(now.Add(20*24*time.Hour), now))
	})

	t.Run("PartialDayRoundsUp", func(t *testing.T) {
		assert.Equal(t, 3, DaysUntil(now.Add(2*24*time.Hour+6*time.Hour), now))
	})

	t.Run("TripAlreadyStarted", func(t *testing.T) {
		assert.LessOrEqual(t, DaysUntil(now.Add(-48*time.Hour), now), 0)
	})
}

func TestRefundAmount(t *testing.T) {
	policy := trip_models.CancellationPolicy{
		FullRefundDays: 15,
		HalfRefundDays: 7,
		NoRefundDays:   0,
	}

	t.Run("FullRefundWindow", func(t *testing.T) {
		assert.Equal(t, 200.0, RefundAmount(200, 20, policy))
	})

	t.Run("ExactFullBoundary", func(t *testing.T) {
		assert.Equal(t, 200.0, RefundAmount(200, 15, policy))
	})

	t.Run("HalfRefundWindow", func(t *testing.T) {
		assert.Equal(t, 100.0, RefundAmount(200, 10, policy))
	})

	t.Run("ExactHalfBoundary", func(t *testing.T) {
		assert.Equal(t, 100.0, RefundAmount(200, 7, policy))
	})

	t.Run("NoRefund", func(t *testing.T) {
		assert.Equal(t, 0.0, RefundAmount(200, 3, policy))
	})
}

func TestDeriveStatus(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("UpcomingBeforeTripStart", func(t *testing.T) {
		b := &Booking{Status: StatusUpcoming}
		assert.Equal(t, StatusUpcoming, b.DeriveStatus(now.Add(72*time.Hour), now))
	})

	t.Run("PastAfterTripStart", func(t *testing.T) {
		b := &Booking{Status: StatusUpcoming}
		assert.Equal(t, StatusPast, b.DeriveStatus(now.Add(-72*time.Hour), now))
	})

	t.Run("CancelledSticks", func(t *testing.T) {
		b := &Booking{Status: StatusCancelled}
		assert.Equal(t, StatusCancelled, b.DeriveStatus(now.Add(-72*time.Hour), now))
		assert.Equal(t, StatusCancelled, b.DeriveStatus(now.Add(72*time.Hour), now))
	})
}
