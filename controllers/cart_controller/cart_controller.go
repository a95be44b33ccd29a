package cart_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wandergo/tripmarket/cart"
	"github.com/wandergo/tripmarket/controllers/booking_controller"
	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/booking_models"
	"github.com/wandergo/tripmarket/models/trip_models"
	"github.com/wandergo/tripmarket/utils"
	"github.com/wandergo/tripmarket/utils/mail"
)

// CartController exposes the per-user cart and its checkout. Checkout books
// each line sequentially against one payment; there is no all-or-nothing
// guarantee across lines, so per-line results are reported and failed lines
// stay in the cart for retry.
type CartController struct {
	store booking_controller.Store
	carts *cart.Service
}

func NewCartController(store booking_controller.Store, carts *cart.Service) (*CartController, error) {
	if store == nil {
		return nil, errors.New("booking store cannot be nil")
	}
	if carts == nil {
		return nil, errors.New("cart service cannot be nil")
	}
	return &CartController{store: store, carts: carts}, nil
}

type AddItemRequest struct {
	TripID   string `json:"tripId" binding:"required,uuid"`
	Quantity int    `json:"quantity" binding:"required,gt=0"`
}

type CheckoutRequest struct {
	PaymentID string `json:"paymentId" binding:"required"`
}

// LineResult reports the outcome of one checkout line.
type LineResult struct {
	TripID  uuid.UUID               `json:"tripId"`
	Booked  bool                    `json:"booked"`
	Msg     string                  `json:"msg,omitempty"`
	Booking *booking_models.Booking `json:"booking,omitempty"`
}

func cartResponse(c *cart.Cart) gin.H {
	return gin.H{"items": c.Lines, "total": c.Total()}
}

// GetCart handles GET /cart.
func (cc *CartController) GetCart(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	userCart, err := cc.carts.Get(c.Request.Context(), userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to load cart for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(userCart))
}

// AddItem handles POST /cart/items. The line snapshots the trip's current
// name, price, and dates; quantity is not bounded by live availability
// here, checkout enforces it.
func (cc *CartController) AddItem(c *gin.Context) {
	var req AddItemRequest
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

	trip, err := cc.store.GetTrip(c.Request.Context(), tripID)
	if err != nil {
		if errors.Is(err, trip_models.ErrTripNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Trip not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch trip %s: %v", tripID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	userCart, err := cc.carts.AddItem(c.Request.Context(), userID, cart.Line{
		TripID:   trip.ID,
		Name:     trip.Name,
		Price:    trip.Price,
		Dates:    trip.Dates,
		Quantity: req.Quantity,
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to save cart for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(userCart))
}

// RemoveItem handles DELETE /cart/items/:tripId.
func (cc *CartController) RemoveItem(c *gin.Context) {
	tripID, err := uuid.Parse(strings.TrimSpace(c.Param("tripId")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Invalid trip id"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	userCart, err := cc.carts.RemoveItem(c.Request.Context(), userID, tripID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update cart for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, cartResponse(userCart))
}

// ClearCart handles DELETE /cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	if err := cc.carts.Clear(c.Request.Context(), userID); err != nil {
		logger.ErrorLogger.Errorf("Failed to clear cart for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"msg": "Cart cleared"})
}

// Checkout handles POST /cart/checkout: books every cart line against the
// given payment, removing booked lines as it goes. The server recomputes
// each line's price from the trip record, so a stale cart snapshot cannot
// fix the charge.
func (cc *CartController) Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields: " + err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	ctx := c.Request.Context()
	userCart, err := cc.carts.Get(ctx, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to load cart for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}
	if len(userCart.Lines) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Cart is empty"})
		return
	}

	results := make([]LineResult, 0, len(userCart.Lines))
	remaining := &cart.Cart{}
	booked := 0

	for _, line := range userCart.Lines {
		booking, err := booking_controller.BookTrip(ctx, cc.store, userID, line.TripID, line.Quantity, nil, req.PaymentID)
		if err != nil {
			logger.WarnLogger.Warnf("Checkout line failed for trip %s: %v", line.TripID, err)
			remaining.Add(line)
			results = append(results, LineResult{TripID: line.TripID, Booked: false, Msg: checkoutErrorMsg(err)})
			continue
		}

		booked++
		results = append(results, LineResult{TripID: line.TripID, Booked: true, Booking: booking})

		if email := utils.GetEmailFromContext(c); email != "" {
			go mail.SendBookingConfirmation(email, booking)
		}
	}

	if err := cc.carts.Save(ctx, userID, remaining); err != nil {
		logger.ErrorLogger.Errorf("Failed to save cart after checkout for user %s: %v", userID, err)
	}

	status := http.StatusOK
	if booked == 0 {
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"results": results, "booked": booked, "failed": len(results) - booked})
}

func checkoutErrorMsg(err error) string {
	switch {
	case errors.Is(err, trip_models.ErrTripNotFound):
		return "Trip not found"
	case errors.Is(err, booking_models.ErrInsufficientSlots):
		return "Not enough available slots"
	case errors.Is(err, booking_controller.ErrPaymentNotUsable):
		return "Invalid payment reference"
	default:
		return "Server Error"
	}
}
