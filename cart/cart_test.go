package cart

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddMergesByTrip(t *testing.T) {
	tripA := uuid.New()
	c := &Cart{}

	c.Add(Line{TripID: tripA, Name: "Alps Trek", Price: 100, Quantity: 1})
	c.Add(Line{TripID: tripA, Name: "Alps Trek", Price: 100, Quantity: 2})

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 3, c.Lines[0].Quantity)
}

func TestCartAddDifferentTrips(t *testing.T) {
	c := &Cart{}
	c.Add(Line{TripID: uuid.New(), Price: 100, Quantity: 1})
	c.Add(Line{TripID: uuid.New(), Price: 250, Quantity: 2})

	require.Len(t, c.Lines, 2)
	assert.Equal(t, 600.0, c.Total())
}

func TestCartRemove(t *testing.T) {
	tripA := uuid.New()
	tripB := uuid.New()
	c := &Cart{}
	c.Add(Line{TripID: tripA, Quantity: 1})
	c.Add(Line{TripID: tripB, Quantity: 1})

	c.Remove(tripA)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, tripB, c.Lines[0].TripID)

	// Removing a trip that is not in the cart is a no-op.
	c.Remove(uuid.New())
	assert.Len(t, c.Lines, 1)
}

func TestCartClear(t *testing.T) {
	c := &Cart{}
	c.Add(Line{TripID: uuid.New(), Quantity: 2})
	c.Clear()

	assert.Empty(t, c.Lines)
	assert.Equal(t, 0.0, c.Total())
}

func TestServiceAddItemPersists(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	userID := uuid.New()
	tripA := uuid.New()

	_, err := svc.AddItem(ctx, userID, Line{TripID: tripA, Name: "Coastal Ride", Price: 80, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, userID, Line{TripID: tripA, Name: "Coastal Ride", Price: 80, Quantity: 2})
	require.NoError(t, err)

	loaded, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	require.Len(t, loaded.Lines, 1)
	assert.Equal(t, 3, loaded.Lines[0].Quantity)
	assert.Equal(t, 240.0, loaded.Total())
}

func TestServiceCartsAreIsolatedPerUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	alice := uuid.New()
	bob := uuid.New()

	_, err := svc.AddItem(ctx, alice, Line{TripID: uuid.New(), Quantity: 1})
	require.NoError(t, err)

	bobCart, err := svc.Get(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, bobCart.Lines)
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc := NewService(NewMemoryStore())
	userID := uuid.New()

	_, err := svc.AddItem(ctx, userID, Line{TripID: uuid.New(), Quantity: 1})
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, userID))

	loaded, err := svc.Get(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, loaded.Lines)
}

func TestMemoryStoreCopiesOnLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	userID := uuid.New()
	tripA := uuid.New()

	require.NoError(t, store.Save(ctx, userID, &Cart{Lines: []Line{{TripID: tripA, Quantity: 1}}}))

	first, err := store.Load(ctx, userID)
	require.NoError(t, err)
	first.Lines[0].Quantity = 99

	second, err := store.Load(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, 1, second.Lines[0].Quantity)
}
