package booking_controller

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wandergo/tripmarket/models/booking_models"
	"github.com/wandergo/tripmarket/models/payment_models"
	"github.com/wandergo/tripmarket/models/trip_models"
)

// Store is the persistence surface the booking workflow runs against.
// Slot accounting lives behind it: CreateBooking reserves the booking's
// quantity or fails with booking_models.ErrInsufficientSlots, and
// CancelBooking restores it exactly once.
type Store interface {
	GetTrip(ctx context.Context, tripID uuid.UUID) (*trip_models.Trip, error)
	GetPayment(ctx context.Context, transactionID string) (*payment_models.Payment, error)
	CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error)
	GetBooking(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error)
	GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]booking_models.Booking, error)
}

// DBStore implements the booking and cancellation persistence on the
// postgres pool via the model layer.
type DBStore struct {
	db *pgxpool.Pool
}

func NewDBStore(db *pgxpool.Pool) *DBStore {
	return &DBStore{db: db}
}

func (s *DBStore) GetTrip(ctx context.Context, tripID uuid.UUID) (*trip_models.Trip, error) {
	return trip_models.GetTripByID(ctx, s.db, tripID)
}

func (s *DBStore) GetPayment(ctx context.Context, transactionID string) (*payment_models.Payment, error) {
	return payment_models.GetPaymentByTransactionID(ctx, s.db, transactionID)
}

func (s *DBStore) CreateBooking(ctx context.Context, booking *booking_models.Booking) (*booking_models.Booking, error) {
	return booking_models.CreateBooking(ctx, s.db, booking)
}

func (s *DBStore) GetBooking(ctx context.Context, bookingID uuid.UUID) (*booking_models.Booking, error) {
	return booking_models.GetBookingByID(ctx, s.db, bookingID)
}

func (s *DBStore) GetBookingsByUser(ctx context.Context, userID uuid.UUID) ([]booking_models.Booking, error) {
	return booking_models.GetBookingsByUser(ctx, s.db, userID)
}

func (s *DBStore) CancelBooking(ctx context.Context, booking *booking_models.Booking, refundAmount float64) (*booking_models.Booking, error) {
	return booking_models.CancelBooking(ctx, s.db, booking, refundAmount)
}
