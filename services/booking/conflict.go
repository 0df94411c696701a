package booking

import (
	"context"

	bookingRepo "hairbook/database/repository/booking"
	"hairbook/utils"
)

// ConflictDetector finds bookings occupying an exact (shop, date) slot.
// Dates are compared as canonical strings; there is no duration overlap.
type ConflictDetector struct {
	Bookings bookingRepo.BookingRepository
}

// HasConflict reports whether a booking other than excludingID holds the slot.
func (d *ConflictDetector) HasConflict(ctx context.Context, shopID, date, excludingID string) (bool, error) {
	bookings, err := d.Bookings.GetAtSlot(ctx, shopID, date)
	if err != nil {
		return false, utils.Internal("failed to check booking conflicts", err)
	}
	for _, b := range bookings {
		if b.ID != excludingID {
			return true, nil
		}
	}
	return false, nil
}
