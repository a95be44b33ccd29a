package booking_models

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/trip_models"
)

var (
	ErrBookingNotFound         = errors.New("booking not found")
	ErrBookingAlreadyCancelled = errors.New("booking is already cancelled")
	ErrInsufficientSlots       = errors.New("not enough available slots")
)

// Stored booking statuses. "past" is never stored; it is derived at read
// time from the trip's start date (see DeriveStatus).
const (
	StatusUpcoming  = "upcoming"
	StatusPast      = "past"
	StatusCancelled = "cancelled"
)

// Booking is a user's reservation against a trip. TotalPrice is fixed at
// creation time and never recomputed. RefundAmount is set only on
// cancellation.
type Booking struct {
	ID           uuid.UUID         `json:"id"`
	UserID       uuid.UUID         `json:"userId"`
	TripID       uuid.UUID         `json:"tripId"`
	Quantity     int               `json:"quantity"`
	TotalPrice   float64           `json:"totalPrice"`
	PaymentID    string            `json:"paymentId"`
	Status       string            `json:"status"`
	BookingDate  time.Time         `json:"bookingDate"`
	RefundAmount *float64          `json:"refundAmount,omitempty"`
	Trip         *trip_models.Trip `json:"trip,omitempty"`
}

// NewBooking creates an upcoming booking record.
func NewBooking(userID, tripID uuid.UUID, quantity int, totalPrice float64, paymentID string) (*Booking, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for booking: %w", err)
	}
	return &Booking{
		ID:          id,
		UserID:      userID,
		TripID:      tripID,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		PaymentID:   paymentID,
		Status:      StatusUpcoming,
		BookingDate: time.Now(),
	}, nil
}

// DeriveStatus returns the booking status as of now. A cancelled booking
// stays cancelled; otherwise the status flips from upcoming to past once the
// trip's start date has passed. The stored column only ever holds upcoming
// or cancelled.
func (b *Booking) DeriveStatus(tripStart time.Time, now time.Time) string {
	if b.Status == StatusCancelled {
		return StatusCancelled
	}
	if tripStart.Before(now) {
		return StatusPast
	}
	return StatusUpcoming
}

// CreateBooking inserts the booking and decrements the trip's available
// slots in one transaction. The decrement is conditional on enough slots
// remaining, so two concurrent bookings can never oversell a trip: the
// second one rolls back with ErrInsufficientSlots.
func CreateBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking) (*Booking, error) {
	logger.InfoLogger.Infof("Creating booking for trip %s, quantity %d", booking.TripID, booking.Quantity)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE trips
		SET available_slots = available_slots - $2
		WHERE id = $1 AND available_slots >= $2`,
		booking.TripID, booking.Quantity,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to decrement slots for trip %s: %v", booking.TripID, err)
		return nil, fmt.Errorf("failed to reserve slots: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrInsufficientSlots
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO bookings (id, user_id, trip_id, quantity, total_price, payment_id, status, booking_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		booking.ID, booking.UserID, booking.TripID, booking.Quantity,
		booking.TotalPrice, booking.PaymentID, booking.Status, booking.BookingDate,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert booking for trip %s: %v", booking.TripID, err)
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit booking: %w", err)
	}

	logger.InfoLogger.Infof("Booking %s created for trip %s", booking.ID, booking.TripID)
	return booking, nil
}

const bookingJoinQuery = `
	SELECT
		b.id, b.user_id, b.trip_id, b.quantity, b.total_price, b.payment_id,
		b.status, b.booking_date, b.refund_amount,
		t.id, t.name, t.description, t.location, t.dates, t.start_date,
		t.duration, t.price, t.available_slots, t.difficulty, t.included,
		t.itinerary, t.full_refund_days, t.half_refund_days, t.no_refund_days,
		t.organizer_id, t.status, t.created_at, t.updated_at
	FROM bookings b
	JOIN trips t ON b.trip_id = t.id`

func scanBookingWithTrip(row pgx.Row, now time.Time) (*Booking, error) {
	b := &Booking{}
	t := &trip_models.Trip{}
	err := row.Scan(
		&b.ID, &b.UserID, &b.TripID, &b.Quantity, &b.TotalPrice, &b.PaymentID,
		&b.Status, &b.BookingDate, &b.RefundAmount,
		&t.ID, &t.Name, &t.Description, &t.Location, &t.Dates, &t.StartDate,
		&t.Duration, &t.Price, &t.AvailableSlots, &t.Difficulty, &t.Included,
		&t.Itinerary,
		&t.CancellationPolicy.FullRefundDays,
		&t.CancellationPolicy.HalfRefundDays,
		&t.CancellationPolicy.NoRefundDays,
		&t.OrganizerID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.Trip = t
	b.Status = b.DeriveStatus(t.StartDate, now)
	return b, nil
}

// GetBookingByID fetches a booking with its trip joined.
func GetBookingByID(ctx context.Context, db *pgxpool.Pool, bookingID uuid.UUID) (*Booking, error) {
	row := db.QueryRow(ctx, bookingJoinQuery+` WHERE b.id = $1`, bookingID)

	booking, err := scanBookingWithTrip(row, time.Now())
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch booking %s: %v", bookingID, err)
		return nil, fmt.Errorf("database error fetching booking: %w", err)
	}
	return booking, nil
}

// GetBookingsByUser returns a user's bookings, newest first, trips joined.
func GetBookingsByUser(ctx context.Context, db *pgxpool.Pool, userID uuid.UUID) ([]Booking, error) {
	rows, err := db.Query(ctx, bookingJoinQuery+` WHERE b.user_id = $1 ORDER BY b.booking_date DESC`, userID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch bookings for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}
	defer rows.Close()

	now := time.Now()
	bookings := []Booking{}
	for rows.Next() {
		b, err := scanBookingWithTrip(rows, now)
		if err != nil {
			return nil, fmt.Errorf("failed to scan booking: %w", err)
		}
		bookings = append(bookings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking marks the booking cancelled with the given refund and
// restores its quantity to the trip's available slots, in one transaction.
// The WHERE clause repeats the caller's not-cancelled check so a concurrent
// double-cancel cannot restore slots twice; the loser of that race gets
// ErrBookingAlreadyCancelled.
func CancelBooking(ctx context.Context, db *pgxpool.Pool, booking *Booking, refundAmount float64) (*Booking, error) {
	logger.InfoLogger.Infof("Cancelling booking %s with refund %.2f", booking.ID, refundAmount)

	tx, err := db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	cmdTag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET status = $2, refund_amount = $3
		WHERE id = $1 AND status <> $2`,
		booking.ID, StatusCancelled, refundAmount,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to cancel booking %s: %v", booking.ID, err)
		return nil, fmt.Errorf("failed to cancel booking: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrBookingAlreadyCancelled
	}

	_, err = tx.Exec(ctx, `
		UPDATE trips SET available_slots = available_slots + $2 WHERE id = $1`,
		booking.TripID, booking.Quantity,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to restore slots for trip %s: %v", booking.TripID, err)
		return nil, fmt.Errorf("failed to restore trip slots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit cancellation: %w", err)
	}

	booking.Status = StatusCancelled
	booking.RefundAmount = &refundAmount
	if booking.Trip != nil {
		booking.Trip.AvailableSlots += booking.Quantity
	}
	logger.InfoLogger.Infof("Booking %s cancelled", booking.ID)
	return booking, nil
}
