// Package cart holds a traveler's pre-checkout trip selections. The cart
// lives server-side, keyed by user, behind an explicit Store with load/save
// at operation boundaries; redis backs it in production.
package cart

import (
	"context"

	"github.com/google/uuid"
)

// Line is one cart entry: a trip reference with a denormalized snapshot of
// the fields the cart needs to render and total.
type Line struct {
	TripID   uuid.UUID `json:"tripId"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Dates    string    `json:"dates"`
	Quantity int       `json:"quantity"`
}

// Cart is an ordered collection of lines, one per trip.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges by trip identity: adding a trip already in the cart sums the
// quantities instead of appending a duplicate line.
func (c *Cart) Add(line Line) {
	for i := range c.Lines {
		if c.Lines[i].TripID == line.TripID {
			c.Lines[i].Quantity += line.Quantity
			return
		}
	}
	c.Lines = append(c.Lines, line)
}

// Remove drops the line for the given trip, if present.
func (c *Cart) Remove(tripID uuid.UUID) {
	for i := range c.Lines {
		if c.Lines[i].TripID == tripID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total is the sum of price times quantity over all lines.
func (c *Cart) Total() float64 {
	var total float64
	for _, line := range c.Lines {
		total += line.Price * float64(line.Quantity)
	}
	return total
}

// Store persists carts between requests. Load returns an empty cart for
// users without one.
type Store interface {
	Load(ctx context.Context, userID uuid.UUID) (*Cart, error)
	Save(ctx context.Context, userID uuid.UUID, cart *Cart) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// Service wraps a Store with the cart operations the controllers use.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Get loads the user's cart.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (*Cart, error) {
	return s.store.Load(ctx, userID)
}

// AddItem merges the line into the user's cart and persists it.
func (s *Service) AddItem(ctx context.Context, userID uuid.UUID, line Line) (*Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Add(line)
	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// RemoveItem drops the trip's line and persists the cart.
func (s *Service) RemoveItem(ctx context.Context, userID uuid.UUID, tripID uuid.UUID) (*Cart, error) {
	c, err := s.store.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	c.Remove(tripID)
	if err := s.store.Save(ctx, userID, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Clear discards the user's cart entirely.
func (s *Service) Clear(ctx context.Context, userID uuid.UUID) error {
	return s.store.Delete(ctx, userID)
}

// Save persists a cart the caller has mutated directly (checkout removes
// booked lines as it goes).
func (s *Service) Save(ctx context.Context, userID uuid.UUID, c *Cart) error {
	return s.store.Save(ctx, userID, c)
}
