package bookingRepo

import (
	"context"
	"fmt"
	"strings"

	"hairbook/database/docstore"
	"hairbook/models"
)

// StoreBookingRepo implements BookingRepository over a Document Store.
type StoreBookingRepo struct {
	store docstore.Store
}

func NewBookingRepo(store docstore.Store) BookingRepository {
	return &StoreBookingRepo{store: store}
}

// ClaimID derives the slot claim document ID of a (shop, date) pair.
func ClaimID(shopID, date string) string {
	return shopID + "_" + strings.ReplaceAll(date, " ", "_")
}

func claimOf(booking *models.Booking) models.SlotClaim {
	return models.SlotClaim{ShopID: booking.ShopID, Date: booking.Date, BookingID: booking.ID}
}

func decodeBooking(snap docstore.Snapshot) (*models.Booking, error) {
	var booking models.Booking
	if err := snap.DataTo(&booking); err != nil {
		return nil, fmt.Errorf("failed to decode booking %s: %w", snap.ID(), err)
	}
	booking.ID = snap.ID()
	return &booking, nil
}

func (r *StoreBookingRepo) query(ctx context.Context, filters ...docstore.Filter) ([]models.Booking, error) {
	snaps, err := r.store.Query(ctx, BookingsCollection, filters...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bookings: %w", err)
	}
	bookings := make([]models.Booking, 0, len(snaps))
	for _, snap := range snaps {
		booking, err := decodeBooking(snap)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, *booking)
	}
	return bookings, nil
}

func (r *StoreBookingRepo) GetByID(ctx context.Context, id string) (*models.Booking, error) {
	snap, err := r.store.Get(ctx, BookingsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch booking with id %s: %w", id, err)
	}
	return decodeBooking(snap)
}

func (r *StoreBookingRepo) GetByShop(ctx context.Context, shopID string) ([]models.Booking, error) {
	return r.query(ctx, docstore.Where("shopId", shopID))
}

func (r *StoreBookingRepo) GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error) {
	return r.query(ctx, docstore.Where("customerId", customerID))
}

func (r *StoreBookingRepo) GetAtSlot(ctx context.Context, shopID, date string) ([]models.Booking, error) {
	return r.query(ctx, docstore.Where("shopId", shopID), docstore.Where("date", date))
}

func (r *StoreBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	err := r.store.Batch(ctx, []docstore.Write{
		docstore.CreateOp(SlotClaimsCollection, ClaimID(booking.ShopID, booking.Date), claimOf(booking)),
		docstore.CreateOp(BookingsCollection, booking.ID, booking),
	})
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

// unchanged holds only while the stored booking still sits in the shop and slot the caller read.
func unchanged(booking *models.Booking) docstore.Write {
	return docstore.CheckOp(BookingsCollection, booking.ID, map[string]any{
		"shopId": booking.ShopID,
		"date":   booking.Date,
	})
}

// ownsClaim holds only while the slot claim still points at the booking.
func ownsClaim(booking *models.Booking) docstore.Write {
	return docstore.CheckOp(SlotClaimsCollection, ClaimID(booking.ShopID, booking.Date), map[string]any{
		"bookingId": booking.ID,
	})
}

func (r *StoreBookingRepo) Replace(ctx context.Context, booking *models.Booking, previous *models.Booking) error {
	writes := []docstore.Write{unchanged(previous)}
	oldClaim := ClaimID(previous.ShopID, previous.Date)
	newClaim := ClaimID(booking.ShopID, booking.Date)
	if oldClaim != newClaim {
		writes = append(writes,
			ownsClaim(previous),
			docstore.CreateOp(SlotClaimsCollection, newClaim, claimOf(booking)),
			docstore.DeleteOp(SlotClaimsCollection, oldClaim),
		)
	}
	writes = append(writes, docstore.SetOp(BookingsCollection, booking.ID, booking))

	if err := r.store.Batch(ctx, writes); err != nil {
		return fmt.Errorf("failed to update booking with id %s: %w", booking.ID, err)
	}
	return nil
}

func (r *StoreBookingRepo) Delete(ctx context.Context, booking *models.Booking) error {
	if err := r.store.Batch(ctx, r.DeleteWrites(booking)); err != nil {
		return fmt.Errorf("failed to delete booking with id %s: %w", booking.ID, err)
	}
	return nil
}

func (r *StoreBookingRepo) DeleteWrites(booking *models.Booking) []docstore.Write {
	return []docstore.Write{
		unchanged(booking),
		ownsClaim(booking),
		docstore.DeleteOp(BookingsCollection, booking.ID),
		docstore.DeleteOp(SlotClaimsCollection, ClaimID(booking.ShopID, booking.Date)),
	}
}
