package bookingRepo

import (
	"context"

	"hairbook/database/docstore"
	"hairbook/models"
)

const (
	BookingsCollection   = "Bookings"
	SlotClaimsCollection = "SlotClaims"
)

// BookingRepository defines methods for booking data access.
// Every write keeps the slot claim of a booking in step with the booking itself. Writes that start from
// a booking read earlier fail with docstore.ErrPreconditionFailed when that booking has since moved or gone.
type BookingRepository interface {
	GetByID(ctx context.Context, id string) (*models.Booking, error)
	GetByShop(ctx context.Context, shopID string) ([]models.Booking, error)
	GetByCustomer(ctx context.Context, customerID string) ([]models.Booking, error)
	// GetAtSlot returns the bookings of a shop at an exact date string.
	GetAtSlot(ctx context.Context, shopID, date string) ([]models.Booking, error)
	// Create claims the slot and inserts the booking atomically.
	// A taken slot wraps docstore.ErrAlreadyExists.
	Create(ctx context.Context, booking *models.Booking) error
	// Replace overwrites a booking; when the slot moved, the new slot is claimed and the old one released.
	Replace(ctx context.Context, booking *models.Booking, previous *models.Booking) error
	// Delete removes a booking and releases its slot.
	Delete(ctx context.Context, booking *models.Booking) error
	// DeleteWrites are the batch writes that remove a booking and its claim.
	DeleteWrites(booking *models.Booking) []docstore.Write
}
