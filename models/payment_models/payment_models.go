package payment_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergo/tripmarket/logger"
)

var ErrPaymentNotFound = errors.New("payment not found")

const StatusCompleted = "completed"

// Payment is an immutable record of one checkout charge. TransactionID is
// the opaque handle bookings reference; a multi-line checkout reuses one
// payment across several bookings. CardFingerprint is an argon2 digest of
// the card number; the raw PAN is never stored.
type Payment struct {
	ID              uuid.UUID `json:"id"`
	UserID          uuid.UUID `json:"userId"`
	Amount          float64   `json:"amount"`
	PaymentMethod   string    `json:"paymentMethod"`
	Status          string    `json:"status"`
	TransactionID   string    `json:"transactionId"`
	CardFingerprint string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NewPayment creates a completed payment record.
func NewPayment(userID uuid.UUID, amount float64, method, transactionID, cardFingerprint string) (*Payment, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for payment: %w", err)
	}
	return &Payment{
		ID:              id,
		UserID:          userID,
		Amount:          amount,
		PaymentMethod:   method,
		Status:          StatusCompleted,
		TransactionID:   transactionID,
		CardFingerprint: cardFingerprint,
		CreatedAt:       time.Now(),
	}, nil
}

// CreatePayment inserts a payment record.
func CreatePayment(ctx context.Context, db *pgxpool.Pool, payment *Payment) (*Payment, error) {
	logger.InfoLogger.Infof("Recording payment %s for user %s", payment.TransactionID, payment.UserID)

	_, err := db.Exec(ctx, `
		INSERT INTO payments (id, user_id, amount, payment_method, status, transaction_id, card_fingerprint, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		payment.ID, payment.UserID, payment.Amount, payment.PaymentMethod,
		payment.Status, payment.TransactionID, payment.CardFingerprint, payment.CreatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert payment %s: %v", payment.TransactionID, err)
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}
	return payment, nil
}

const paymentColumns = `id, user_id, amount, payment_method, status, transaction_id, card_fingerprint, created_at`

func scanPayment(row pgx.Row) (*Payment, error) {
	p := &Payment{}
	err := row.Scan(
		&p.ID, &p.UserID, &p.Amount, &p.PaymentMethod,
		&p.Status, &p.TransactionID, &p.CardFingerprint, &p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPaymentByID fetches a payment by its record id.
func GetPaymentByID(ctx context.Context, db *pgxpool.Pool, paymentID uuid.UUID) (*Payment, error) {
	row := db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE id = $1`, paymentID)

	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch payment %s: %v", paymentID, err)
		return nil, fmt.Errorf("database error fetching payment: %w", err)
	}
	return payment, nil
}

// GetPaymentByTransactionID fetches a payment by the opaque transaction id
// bookings carry.
func GetPaymentByTransactionID(ctx context.Context, db *pgxpool.Pool, transactionID string) (*Payment, error) {
	row := db.QueryRow(ctx, `SELECT `+paymentColumns+` FROM payments WHERE transaction_id = $1`, transactionID)

	payment, err := scanPayment(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch payment by transaction %s: %v", transactionID, err)
		return nil, fmt.Errorf("database error fetching payment: %w", err)
	}
	return payment, nil
}
