package payment_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergo/tripmarket/clients"
	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/payment_models"
	"github.com/wandergo/tripmarket/utils"
)

// PaymentController takes checkout charges through the configured gateway
// and records the resulting payments. One payment can fund several bookings
// (multi-line checkout reuses the transaction id).
type PaymentController struct {
	db      *pgxpool.Pool
	gateway clients.PaymentGateway
}

func NewPaymentController(db *pgxpool.Pool, gateway clients.PaymentGateway) (*PaymentController, error) {
	if db == nil {
		return nil, errors.New("database pool cannot be nil")
	}
	if gateway == nil {
		return nil, errors.New("payment gateway cannot be nil")
	}
	return &PaymentController{db: db, gateway: gateway}, nil
}

type ProcessPaymentRequest struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
	CardNumber    string  `json:"cardNumber" binding:"required"`
	CardExpiry    string  `json:"cardExpiry" binding:"required"`
	CardCvc       string  `json:"cardCvc" binding:"required"`
}

// ProcessPayment handles POST /payments/process.
func (pc *PaymentController) ProcessPayment(c *gin.Context) {
	var req ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "Missing required fields: " + err.Error()})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	transactionID, err := pc.gateway.Charge(c.Request.Context(), clients.ChargeRequest{
		Amount:  req.Amount,
		Method:  req.PaymentMethod,
		Receipt: "checkout_" + userID.String(),
	})
	if err != nil {
		logger.ErrorLogger.Errorf("Payment gateway charge failed for user %s: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Payment processing failed"})
		return
	}

	payment, err := payment_models.NewPayment(userID, req.Amount, req.PaymentMethod,
		transactionID, utils.CardFingerprint(req.CardNumber))
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to build payment: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Payment processing failed"})
		return
	}

	saved, err := payment_models.CreatePayment(c.Request.Context(), pc.db, payment)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to record payment %s: %v", transactionID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Payment processing failed"})
		return
	}

	c.JSON(http.StatusOK, saved)
}

// GetPayment handles GET /payments/:id.
func (pc *PaymentController) GetPayment(c *gin.Context) {
	paymentID, err := uuid.Parse(strings.TrimSpace(c.Param("id")))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"msg": "Payment not found"})
		return
	}

	userID, err := utils.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	payment, err := payment_models.GetPaymentByID(c.Request.Context(), pc.db, paymentID)
	if err != nil {
		if errors.Is(err, payment_models.ErrPaymentNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": "Payment not found"})
			return
		}
		logger.ErrorLogger.Errorf("Failed to fetch payment %s: %v", paymentID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "Server Error"})
		return
	}

	if payment.UserID != userID {
		c.JSON(http.StatusUnauthorized, gin.H{"msg": "Not authorized"})
		return
	}

	c.JSON(http.StatusOK, payment)
}
