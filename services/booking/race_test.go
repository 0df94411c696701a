package booking

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"hairbook/database/docstore"
	bookingRepo "hairbook/database/repository/booking"
	"hairbook/models"
	"hairbook/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// interleavedBookings runs between once right after the first booking load, so the
// caller goes on with a copy that is already out of date.
type interleavedBookings struct {
	bookingRepo.BookingRepository
	once    sync.Once
	between func()
}

func (r *interleavedBookings) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	b, err := r.BookingRepository.GetByID(ctx, id)
	r.once.Do(r.between)
	return b, err
}

// interleaved returns a scheduler sharing f's store whose first booking read is followed by between.
func (f *fixture) interleaved(between func()) *Scheduler {
	s := *f.scheduler
	s.Bookings = &interleavedBookings{BookingRepository: f.bookings, between: between}
	return &s
}

func (f *fixture) requireClaimsMatchBookings(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	claims, err := f.store.Query(ctx, bookingRepo.SlotClaimsCollection)
	require.NoError(t, err)
	require.Equal(t, f.store.Count(bookingRepo.BookingsCollection), len(claims))
	for _, snap := range claims {
		var claim models.SlotClaim
		require.NoError(t, snap.DataTo(&claim))
		b, err := f.bookings.GetByID(ctx, claim.BookingID)
		require.NoError(t, err, "claim %s points at a missing booking", snap.ID())
		assert.Equal(t, bookingRepo.ClaimID(b.ShopID, b.Date), snap.ID())
	}
}

func TestUpdateBooking_LosesToEarlierUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	late := f.interleaved(func() {
		_, err := f.scheduler.UpdateBooking(ctx, "cust1", b.ID, request("08-06-2025 10:00"))
		require.NoError(t, err)
	})
	_, err = late.UpdateBooking(ctx, "cust1", b.ID, request("01-06-2025 11:00"))
	assert.ErrorIs(t, err, ErrBookingChanged)
	assert.True(t, utils.IsKind(err, utils.KindConflict))

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "08-06-2025 10:00", stored.Date)
	f.requireClaimsMatchBookings(t)

	for _, date := range []string{"01-06-2025 10:00", "01-06-2025 11:00"} {
		_, err := f.scheduler.CreateBooking(ctx, "cust2", request(date))
		assert.NoError(t, err, date)
	}
}

func TestUpdateBooking_AfterConcurrentDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	late := f.interleaved(func() {
		require.NoError(t, f.scheduler.DeleteBooking(ctx, "cust1", b.ID))
	})
	_, err = late.UpdateBooking(ctx, "cust1", b.ID, request("01-06-2025 11:00"))
	assert.ErrorIs(t, err, ErrBookingChanged)

	// the deleted booking is not brought back and holds no slot
	assert.Equal(t, 0, f.store.Count(bookingRepo.BookingsCollection))
	assert.Equal(t, 0, f.store.Count(bookingRepo.SlotClaimsCollection))
}

func TestDeleteBooking_AfterConcurrentUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	late := f.interleaved(func() {
		_, err := f.scheduler.UpdateBooking(ctx, "cust1", b.ID, request("01-06-2025 11:00"))
		require.NoError(t, err)
	})
	require.NoError(t, late.DeleteBooking(ctx, "cust1", b.ID))

	assert.Equal(t, 0, f.store.Count(bookingRepo.BookingsCollection))
	assert.Equal(t, 0, f.store.Count(bookingRepo.SlotClaimsCollection))
	for _, date := range []string{"01-06-2025 10:00", "01-06-2025 11:00"} {
		_, err := f.scheduler.CreateBooking(ctx, "cust2", request(date))
		assert.NoError(t, err, date)
	}
}

func TestDeleteBookingAsOwner_AfterConcurrentDelete(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	late := f.interleaved(func() {
		require.NoError(t, f.scheduler.DeleteBooking(ctx, "cust1", b.ID))
	})
	assert.NoError(t, late.DeleteBookingAsOwner(ctx, "ownerA", "shopA", b.ID))
	assert.Equal(t, 0, f.store.Count(bookingRepo.SlotClaimsCollection))
}

func TestUpdateBooking_ConcurrentMovesKeepOneClaim(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	targets := []string{"01-06-2025 11:00"}
	for _, day := range []int{8, 15, 22, 29} {
		targets = append(targets,
			fmt.Sprintf("%02d-06-2025 10:00", day),
			fmt.Sprintf("%02d-06-2025 11:00", day))
	}

	var wg sync.WaitGroup
	errs := make(chan error, len(targets))
	for _, date := range targets {
		wg.Add(1)
		go func(date string) {
			defer wg.Done()
			_, err := f.scheduler.UpdateBooking(ctx, "cust1", b.ID, request(date))
			errs <- err
		}(date)
	}
	wg.Wait()
	close(errs)

	wins := 0
	for err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, ErrBookingChanged)
	}
	assert.GreaterOrEqual(t, wins, 1)

	assert.Equal(t, 1, f.store.Count(bookingRepo.BookingsCollection))
	f.requireClaimsMatchBookings(t)

	stored, err := f.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	for _, date := range append(targets, "01-06-2025 10:00") {
		if date == stored.Date {
			continue
		}
		_, err := f.scheduler.CreateBooking(ctx, "cust2", request(date))
		assert.NoError(t, err, date)
	}
}

func TestDeleteShop_AfterConcurrentMove(t *testing.T) {
	t.Parallel()
	f := newFixture(t)
	ctx := context.Background()

	b, err := f.scheduler.CreateBooking(ctx, "cust1", request("01-06-2025 10:00"))
	require.NoError(t, err)

	// A booking moved after the cascade read it makes the whole batch fail.
	moved := *b
	moved.Date = "01-06-2025 11:00"
	require.NoError(t, f.bookings.Replace(ctx, &moved, b))
	stale := []docstore.Write{}
	stale = append(stale, f.bookings.DeleteWrites(b)...)
	stale = append(stale, f.shops.DeleteWrite("shopA"))
	assert.ErrorIs(t, f.store.Batch(ctx, stale), docstore.ErrPreconditionFailed)

	_, err = f.shops.GetByID(ctx, "shopA")
	require.NoError(t, err)
	f.requireClaimsMatchBookings(t)

	require.NoError(t, f.scheduler.DeleteShop(ctx, "ownerA", "shopA"))
	assert.Equal(t, 0, f.store.Count(bookingRepo.SlotClaimsCollection))
}
