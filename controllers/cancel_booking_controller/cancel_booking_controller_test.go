package cancel_booking_controller

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wandergo/tripmarket/logger"
	"github.com/wandergo/tripmarket/models/booking_models"
	"github.com/wandergo/tripmarket/models/trip_models"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Setenv("LOG_DIR", os.TempDir())
	logger.InitLoggers()
	os.Exit(m.Run())
}

// memStore implements Store in memory with the same contract as the
// database layer: cancelling an already-cancelled booking fails with
// booking_models.ErrBookingAlreadyCancelled and never restores slots twice.
type memStore struct {
	trips    map[uuid.UUID]*trip_models.Trip
	bookings map[uuid.UUID]*booking_models.Booking
}

func newMemStore() *memStore {
	return &memStore{
		trips:    make(map[uuid.UUID]*trip_models.Trip),
		bookings: make(map[uuid.UUID]*booking_models.Booking),
	}
}

func (s *memStore) GetBooking(_ context.Context, bookingID uuid.UUID) (*booking_models.Booking, error) {
	b, ok := s.bookings[bookingID]
	if !ok {
		return nil, booking_models.ErrBookingNotFound
	}
	cp := *b
	trip := *s.trips[b.TripID]
	cp.Trip = &trip
	cp.Status = cp.DeriveStatus(trip.StartDate, time.Now())
	return &cp, nil
}

func (s *memStore) CancelBooking(_ context.Context, booking *booking_models.Booking, refundAmount float64) (*booking_models.Booking, error) {
	stored, ok := s.bookings[booking.ID]
	if !ok {
		return nil, booking_models.ErrBookingNotFound
	}
	if stored.Status == booking_models.StatusCancelled {
		return nil, booking_models.ErrBookingAlreadyCancelled
	}
	stored.Status = booking_models.StatusCancelled
	stored.RefundAmount = &refundAmount
	s.trips[stored.TripID].AvailableSlots += stored.Quantity
	return s.GetBooking(context.Background(), booking.ID)
}

// seedBooking stores a trip starting startsIn from now with the standard
// 15/7 refund windows, plus an upcoming booking against it.
func seedBooking(s *memStore, userID uuid.UUID, totalPrice float64, quantity int, startsIn time.Duration) *booking_models.Booking {
	trip := &trip_models.Trip{
		ID:             uuid.New(),
		Name:           "Sahara Desert Expedition",
		StartDate:      time.Now().Add(startsIn),
		Price:          totalPrice / float64(quantity),
		AvailableSlots: 10 - quantity,
		CancellationPolicy: trip_models.CancellationPolicy{
			FullRefundDays: 15,
			HalfRefundDays: 7,
			NoRefundDays:   0,
		},
		OrganizerID: uuid.New(),
		Status:      trip_models.StatusActive,
	}
	s.trips[trip.ID] = trip

	booking := &booking_models.Booking{
		ID:          uuid.New(),
		UserID:      userID,
		TripID:      trip.ID,
		Quantity:    quantity,
		TotalPrice:  totalPrice,
		PaymentID:   "pay_" + uuid.New().String(),
		Status:      booking_models.StatusUpcoming,
		BookingDate: time.Now(),
	}
	s.bookings[booking.ID] = booking
	return booking
}

func newCancelRouter(store Store, userID string) *gin.Engine {
	r := gin.New()
	cc := &CancelBookingController{store: store}
	r.PUT("/bookings/:id/cancel", func(c *gin.Context) {
		if userID != "" {
			c.Set("user_id", userID)
		}
		cc.CancelBooking(c)
	})
	return r
}

func putCancel(r *gin.Engine, bookingID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/bookings/"+bookingID+"/cancel", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCancelRefundTiers(t *testing.T) {
	cases := []struct {
		name     string
		startsIn time.Duration
		refund   float64
	}{
		{"FullRefundFarOut", 30 * 24 * time.Hour, 400},
		{"HalfRefundInsideWindow", 10 * 24 * time.Hour, 200},
		{"NoRefundLastMinute", 2 * 24 * time.Hour, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			store := newMemStore()
			userID := uuid.New()
			booking := seedBooking(store, userID, 400, 2, tc.startsIn)
			slotsBefore := store.trips[booking.TripID].AvailableSlots
			r := newCancelRouter(store, userID.String())

			w := putCancel(r, booking.ID.String())
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			var cancelled booking_models.Booking
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cancelled))
			assert.Equal(t, booking_models.StatusCancelled, cancelled.Status)
			require.NotNil(t, cancelled.RefundAmount)
			assert.Equal(t, tc.refund, *cancelled.RefundAmount)
			assert.Equal(t, slotsBefore+booking.Quantity, store.trips[booking.TripID].AvailableSlots,
				"cancellation must return the booked quantity to the trip")
		})
	}
}

func TestCancelTwiceRestoresSlotsOnce(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	booking := seedBooking(store, userID, 400, 2, 30*24*time.Hour)
	slotsBefore := store.trips[booking.TripID].AvailableSlots
	r := newCancelRouter(store, userID.String())

	w := putCancel(r, booking.ID.String())
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = putCancel(r, booking.ID.String())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Booking is already cancelled")
	assert.Equal(t, slotsBefore+booking.Quantity, store.trips[booking.TripID].AvailableSlots,
		"second cancel must not restore slots again")
}

// racingStore loses the write race: the booking looks upcoming on read but
// another cancel lands first.
type racingStore struct {
	*memStore
}

func (s *racingStore) CancelBooking(ctx context.Context, booking *booking_models.Booking, refundAmount float64) (*booking_models.Booking, error) {
	s.bookings[booking.ID].Status = booking_models.StatusCancelled
	return nil, booking_models.ErrBookingAlreadyCancelled
}

func TestCancelLostRaceMapsToAlreadyCancelled(t *testing.T) {
	store := newMemStore()
	userID := uuid.New()
	booking := seedBooking(store, userID, 400, 2, 30*24*time.Hour)
	r := newCancelRouter(&racingStore{store}, userID.String())

	w := putCancel(r, booking.ID.String())
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Booking is already cancelled")
}

func TestCancelRejectsOtherUsersBooking(t *testing.T) {
	store := newMemStore()
	booking := seedBooking(store, uuid.New(), 400, 2, 30*24*time.Hour)
	slotsBefore := store.trips[booking.TripID].AvailableSlots
	r := newCancelRouter(store, uuid.New().String())

	w := putCancel(r, booking.ID.String())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, booking_models.StatusUpcoming, store.bookings[booking.ID].Status)
	assert.Equal(t, slotsBefore, store.trips[booking.TripID].AvailableSlots)
}

func TestCancelUnknownBooking(t *testing.T) {
	r := newCancelRouter(newMemStore(), uuid.New().String())

	assert.Equal(t, http.StatusNotFound, putCancel(r, uuid.New().String()).Code)
	assert.Equal(t, http.StatusNotFound, putCancel(r, "not-a-uuid").Code)
}
