package bookingRepo

import (
	"context"
	"testing"

	"hairbook/database/docstore"
	"hairbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClaimID(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "shop-1_01-06-2025_10:00", ClaimID("shop-1", "01-06-2025 10:00"))
}

func TestBookingRepo_ClaimLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewBookingRepo(store)

	first := &models.Booking{ID: "b1", ShopID: "s1", CustomerID: "c1", Date: "01-06-2025 10:00"}
	require.NoError(t, repo.Create(ctx, first))
	assert.Equal(t, 1, store.Count(SlotClaimsCollection))

	second := &models.Booking{ID: "b2", ShopID: "s1", CustomerID: "c2", Date: "01-06-2025 10:00"}
	err := repo.Create(ctx, second)
	assert.ErrorIs(t, err, docstore.ErrAlreadyExists)
	assert.Equal(t, 1, store.Count(BookingsCollection))

	moved := *first
	moved.Date = "01-06-2025 11:00"
	require.NoError(t, repo.Replace(ctx, &moved, first))
	_, err = store.Get(ctx, SlotClaimsCollection, ClaimID("s1", "01-06-2025 10:00"))
	assert.ErrorIs(t, err, docstore.ErrNotFound)
	_, err = store.Get(ctx, SlotClaimsCollection, ClaimID("s1", "01-06-2025 11:00"))
	require.NoError(t, err)

	// the freed slot can be taken again
	require.NoError(t, repo.Create(ctx, second))

	got, err := repo.GetAtSlot(ctx, "s1", "01-06-2025 11:00")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].ID)

	require.NoError(t, repo.Delete(ctx, &moved))
	assert.Equal(t, 1, store.Count(SlotClaimsCollection))
	assert.Equal(t, 1, store.Count(BookingsCollection))
}

func TestBookingRepo_StaleWritesAreRejected(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewBookingRepo(store)

	original := &models.Booking{ID: "b1", ShopID: "s1", CustomerID: "c1", Date: "01-06-2025 10:00"}
	require.NoError(t, repo.Create(ctx, original))

	toEleven := *original
	toEleven.Date = "01-06-2025 11:00"
	require.NoError(t, repo.Replace(ctx, &toEleven, original))

	// A second update that still believes the booking sits at 10:00.
	toTwelve := *original
	toTwelve.Date = "01-06-2025 12:00"
	err := repo.Replace(ctx, &toTwelve, original)
	assert.ErrorIs(t, err, docstore.ErrPreconditionFailed)

	// A delete built from the same stale read.
	err = repo.Delete(ctx, original)
	assert.ErrorIs(t, err, docstore.ErrPreconditionFailed)

	assert.Equal(t, 1, store.Count(BookingsCollection))
	assert.Equal(t, 1, store.Count(SlotClaimsCollection))
	_, err = store.Get(ctx, SlotClaimsCollection, ClaimID("s1", "01-06-2025 11:00"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, &toEleven))
	assert.Equal(t, 0, store.Count(BookingsCollection))
	assert.Equal(t, 0, store.Count(SlotClaimsCollection))
}

func TestBookingRepo_ClaimOfAnotherBookingIsKept(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	repo := NewBookingRepo(store)

	b := &models.Booking{ID: "b1", ShopID: "s1", Date: "01-06-2025 10:00"}
	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, store.Set(ctx, SlotClaimsCollection, ClaimID("s1", "01-06-2025 10:00"),
		models.SlotClaim{ShopID: "s1", Date: "01-06-2025 10:00", BookingID: "someone-else"}))

	err := repo.Delete(ctx, b)
	assert.ErrorIs(t, err, docstore.ErrPreconditionFailed)
	assert.Equal(t, 1, store.Count(SlotClaimsCollection))
	assert.Equal(t, 1, store.Count(BookingsCollection))
}
