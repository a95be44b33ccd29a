package trip_models

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

var ErrTripNotFound = errors.New("trip not found")

// Trip statuses.
const (
	StatusDraft     = "draft"
	StatusActive    = "active"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// CancellationPolicy defines refund windows in days before the trip starts.
type CancellationPolicy struct {
	FullRefundDays int `json:"fullRefundDays"`
	HalfRefundDays int `json:"halfRefundDays"`
	NoRefundDays   int `json:"noRefundDays"`
}

// ItineraryDay is one entry of a trip's day-by-day plan.
type ItineraryDay struct {
	Day         int    `json:"day"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// Trip is an organizer-listed bookable offering. Dates stays a free-text
// display string; StartDate is the authoritative timestamp used for refund
// windows and booking status derivation.
type Trip struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Description        string             `json:"description"`
	Location           string             `json:"location"`
	Dates              string             `json:"dates"`
	StartDate          time.Time          `json:"startDate"`
	Duration           string             `json:"duration"`
	Price              float64            `json:"price"`
	AvailableSlots     int                `json:"availableSlots"`
	Difficulty         string             `json:"difficulty"`
	Included           []string           `json:"included"`
	Itinerary          []ItineraryDay     `json:"itinerary"`
	CancellationPolicy CancellationPolicy `json:"cancellationPolicy"`
	OrganizerID        uuid.UUID          `json:"organizerId"`
	Status             string             `json:"status"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// NewTrip creates a Trip owned by the given organizer. Status starts as
// draft until the organizer publishes it.
func NewTrip(organizerID uuid.UUID) (*Trip, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("failed to generate UUID for trip: %w", err)
	}
	now := time.Now()
	return &Trip{
		ID:          id,
		OrganizerID: organizerID,
		Status:      StatusDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

const tripColumns = `
	id, name, description, location, dates, start_date, duration, price,
	available_slots, difficulty, included, itinerary,
	full_refund_days, half_refund_days, no_refund_days,
	organizer_id, status, created_at, updated_at`

func scanTrip(row pgx.Row) (*Trip, error) {
	t := &Trip{}
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Location, &t.Dates, &t.StartDate,
		&t.Duration, &t.Price, &t.AvailableSlots, &t.Difficulty,
		&t.Included, &t.Itinerary,
		&t.CancellationPolicy.FullRefundDays,
		&t.CancellationPolicy.HalfRefundDays,
		&t.CancellationPolicy.NoRefundDays,
		&t.OrganizerID, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// CreateTrip inserts a new trip record.
func CreateTrip(ctx context.Context, db *pgxpool.Pool, trip *Trip) (*Trip, error) {
	logger.InfoLogger.Infof("Creating trip %q for organizer %s", trip.Name, trip.OrganizerID)

	query := `
		INSERT INTO trips (
			id, name, description, location, dates, start_date, duration, price,
			available_slots, difficulty, included, itinerary,
			full_refund_days, half_refund_days, no_refund_days,
			organizer_id, status, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19
		)`

	_, err := db.Exec(ctx, query,
		trip.ID, trip.Name, trip.Description, trip.Location, trip.Dates,
		trip.StartDate, trip.Duration, trip.Price, trip.AvailableSlots,
		trip.Difficulty, trip.Included, trip.Itinerary,
		trip.CancellationPolicy.FullRefundDays,
		trip.CancellationPolicy.HalfRefundDays,
		trip.CancellationPolicy.NoRefundDays,
		trip.OrganizerID, trip.Status, trip.CreatedAt, trip.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to insert trip %q: %v", trip.Name, err)
		return nil, fmt.Errorf("failed to create trip: %w", err)
	}

	return trip, nil
}

// GetAllTrips returns all trips, newest listing first.
func GetAllTrips(ctx context.Context, db *pgxpool.Pool) ([]Trip, error) {
	rows, err := db.Query(ctx, `SELECT `+tripColumns+` FROM trips ORDER BY created_at DESC`)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to fetch trips: %v", err)
		return nil, fmt.Errorf("failed to fetch trips: %w", err)
	}
	defer rows.Close()

	trips := []Trip{}
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trip: %w", err)
		}
		trips = append(trips, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading trips: %w", err)
	}
	return trips, nil
}

// GetTripByID fetches a single trip.
func GetTripByID(ctx context.Context, db *pgxpool.Pool, tripID uuid.UUID) (*Trip, error) {
	row := db.QueryRow(ctx, `SELECT `+tripColumns+` FROM trips WHERE id = $1`, tripID)

	trip, err := scanTrip(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTripNotFound
		}
		logger.ErrorLogger.Errorf("Failed to fetch trip %s: %v", tripID, err)
		return nil, fmt.Errorf("database error fetching trip: %w", err)
	}
	return trip, nil
}

// UpdateTrip persists the mutable fields of a trip. The controller loads the
// existing record, applies the partial update, and hands the result here.
func UpdateTrip(ctx context.Context, db *pgxpool.Pool, trip *Trip) (*Trip, error) {
	logger.InfoLogger.Infof("Updating trip %s", trip.ID)

	query := `
		UPDATE trips SET
			name = $2, description = $3, location = $4, dates = $5,
			start_date = $6, duration = $7, price = $8, available_slots = $9,
			difficulty = $10, included = $11, itinerary = $12,
			full_refund_days = $13, half_refund_days = $14, no_refund_days = $15,
			status = $16, updated_at = $17
		WHERE id = $1`

	trip.UpdatedAt = time.Now()
	cmdTag, err := db.Exec(ctx, query,
		trip.ID, trip.Name, trip.Description, trip.Location, trip.Dates,
		trip.StartDate, trip.Duration, trip.Price, trip.AvailableSlots,
		trip.Difficulty, trip.Included, trip.Itinerary,
		trip.CancellationPolicy.FullRefundDays,
		trip.CancellationPolicy.HalfRefundDays,
		trip.CancellationPolicy.NoRefundDays,
		trip.Status, trip.UpdatedAt,
	)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to update trip %s: %v", trip.ID, err)
		return nil, fmt.Errorf("failed to update trip: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return nil, ErrTripNotFound
	}
	return trip, nil
}

// DeleteTrip removes a trip record.
func DeleteTrip(ctx context.Context, db *pgxpool.Pool, tripID uuid.UUID) error {
	cmdTag, err := db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, tripID)
	if err != nil {
		logger.ErrorLogger.Errorf("Failed to delete trip %s: %v", tripID, err)
		return fmt.Errorf("failed to delete trip: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return ErrTripNotFound
	}
	logger.InfoLogger.Infof("Trip %s deleted", tripID)
	return nil
}
