package booking_controller

import (
	"context"
	"errors"
	"math"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/booking_models"
	"github.com/wandergo/tripmarket/models/payment_models"
	"github.com/wandergo/tripmarket/models/trip_models"
	"github.com/wandergo/tripmarket/utils"
	"github.com/wandergo/tripmarket/utils/mail"
)

// BookingController converts a paid cart line into a persisted booking and
// serves a traveler's booking history.
type BookingController struct {
	store Store
}

func NewBookingController(store Store) (*BookingController, error) {
	if store == nil {
		return nil, errors.New("booking store cannot be nil")
	}
	return &BookingController{store: store}, nil
}

type CreateBookingRequest struct {
	TripID     string  `json:"tripId" binding:"required,uuid"`
	Quantity   int     `json:"quantity" binding:"required,gt=0"`
	TotalPrice float64 `json:"totalPrice" binding:"required,gt=0"`
	PaymentID  string  `json:"paymentId" binding:"required"`
}

// BookTrip runs the booking workflow for one trip line. clientTotal, when
// non-nil, is the price the client computed; it must match the server-side
// trip.price * quantity or the booking is rejected. The slot decrement and
// booking insert happen in one transaction.
func BookTrip(ctx context.Context, store Store, userID, tripID uuid.UUID, quantity int, clientTotal *float64, paymentID string) (*booking_models.Booking, error) {
	trip, err := store.GetTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	totalPrice := trip.Price * float64(quantity)
	if clientTotal != nil && math.Abs(*clientTotal-totalPrice) > 0.009 {
		logger.WarnLogger.Warnf("Rejecting booking for trip %s: client total %.2f, server total %.2f",
			tripID, *clientTotal, totalPrice)
		return nil, ErrPriceMismatch
	}

	payment, err := store.GetPayment(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payment_models.ErrPaymentNotFound) {
			return nil, ErrPaymentNotUsable
		}
		return nil, err
	}
	if payment.UserID != userID || payment.Status != payment_models.StatusCompleted {
		return nil, ErrPaymentNotUsable
	}

	booking, err := booking_models.NewBooking(userID, tripID, quantity, totalPrice, paymentID)
	if err != nil {
		return nil, err
	}

	if _, err := store.CreateBooking(ctx, booking); err != nil {
		return nil, err
	}

	// Re-read for the joined trip with the decremented slot count.
	return store.GetBooking(ctx, booking.ID)
}

// Book handles POST /bookings.
func (bc *BookingController) Book(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields: " + err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	tripID, err := uuid.Parse(req.TripID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid trip id"})
		return
	}

	booking, err := BookTrip(c.Request.Context(), bc.store, userID, tripID, req.Quantity, &req.TotalPrice, req.PaymentID)
	if err != nil {
		switch {
		case errors.Is(err, trip_models.ErrTripNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
		case errors.Is(err, booking_models.ErrInsufficientSlots):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Not enough available slots"})
		case errors.Is(err, ErrPriceMismatch):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Total price does not match trip price"})
		case errors.Is(err, ErrPaymentNotUsable):
			c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid payment reference"})
		default:
			logger.ErrorLogger.Errorf("Booking creation error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		}
		return
	}

	if email := utils.GetEmailFromContext(c); email != "" {
		go mail.SendBookingConfirmation(email, booking)
	}

	c.JSON(http.StatusOK, booking)
}

// GetMyBookings handles GET /bookings/my: the caller's bookings with trips
// joined, newest first.
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	bookings, err := bc.store.GetBookingsByUser(c.Request.Context(), userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, bookings)
}
