package cancel_booking_controller

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/booking_models"
	"github.com/wandergo/tripmarket/utils"
	"github.com/wandergo/tripmarket/utils/mail"
)

// Store is the slice of booking persistence the cancellation workflow
// needs. *booking_controller.DBStore satisfies it.
type Store interface {
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error)
	CancelBooking(ctx context.Context, booking *booking_models.Booking, refundAmount float64) (*booking_models.Booking, error)
}

// CancelBookingController reverses a booking: computes the refund tier from
// the trip's cancellation policy and restores the reserved slots.
type CancelBookingController struct {
	store Store
}

func NewCancelBookingController(store Store) (*CancelBookingController, error) {
	if store == nil {
		return nil, errors.New("booking store cannot be nil")
	}
	return &CancelBookingController{store: store}, nil
}

// cancelBooking performs the cancellation workflow. All checks run before
// any write; the status update and slot restore share one transaction. The
// already-cancelled check runs twice: here against the loaded booking, and
// again inside the store so a concurrent cancel cannot restore slots twice.
func (cb *CancelBookingController) cancelBooking(ctx context.Context, bookingID, userID uuid.UUID) (*booking_models.Booking, error) {
	booking, err := cb.store.GetBooking(ctx, bookingID)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}

	if booking.UserID != userID {
		return nil, ErrBookingNotOwnedByUser
	}
	if booking.Status == booking_models.StatusCancelled {
		return nil, ErrBookingAlreadyCancelled
	}

	daysUntil := booking_models.DaysUntil(booking.Trip.StartDate, time.Now())
	refund := booking_models.RefundAmount(booking.TotalPrice, daysUntil, booking.Trip.CancellationPolicy)

	cancelled, err := cb.store.CancelBooking(ctx, booking, refund)
	if err != nil {
		if errors.Is(err, booking_models.ErrBookingAlreadyCancelled) {
			return nil, ErrBookingAlreadyCancelled
		}
		return nil, err
	}
	return cancelled, nil
}

// CancelBooking handles PUT /bookings/:id/cancel.
func (cb *CancelBookingController) CancelBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Booking not found"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	booking, err := cb.cancelBooking(c.Request.Context(), bookingID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Booking not found"})
		case errors.Is(err, ErrBookingNotOwnedByUser):
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		case errors.Is(err, ErrBookingAlreadyCancelled):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Booking is already cancelled"})
		default:
			logger.ErrorLogger.Errorf("Failed to cancel booking %s: %v", bookingID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		}
		return
	}

	if email := utils.GetEmailFromContext(c); email != "" {
		go mail.SendBookingCancelled(email, booking)
	}

	c.JSON(http.StatusOK, booking)
}
