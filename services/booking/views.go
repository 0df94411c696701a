package booking

import (
	"context"
	"errors"
	"sort"
	"time"

	"hairbook/database/docstore"
	"hairbook/models"
	"hairbook/services/access"
	"hairbook/services/schedule"
	"hairbook/utils"

	"go.uber.org/zap"
)

var ErrNoUpcomingBooking = utils.NewError(utils.KindNotFound, "No upcoming booking found")

type timedBooking struct {
	booking models.Booking
	at      time.Time
}

// sortByInstant drops bookings whose date does not parse and orders the rest by instant.
func (s *Scheduler) sortByInstant(bookings []models.Booking) []timedBooking {
	timed := make([]timedBooking, 0, len(bookings))
	for _, b := range bookings {
		at, err := schedule.ParseDate(b.Date, s.Location)
		if err != nil {
			s.logger.Warn("Skipping booking with unparseable date", zap.String("bookingId", b.ID), zap.String("date", b.Date))
			continue
		}
		timed = append(timed, timedBooking{booking: b, at: at})
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].at.Before(timed[j].at) })
	return timed
}

func upcoming(timed []timedBooking, now time.Time) []models.Booking {
	out := make([]models.Booking, 0, len(timed))
	for _, tb := range timed {
		if !tb.at.Before(now) {
			out = append(out, tb.booking)
		}
	}
	return out
}

func unwrap(timed []timedBooking) []models.Booking {
	out := make([]models.Booking, 0, len(timed))
	for _, tb := range timed {
		out = append(out, tb.booking)
	}
	return out
}

// CustomerBookings lists every booking of a customer, earliest first.
func (s *Scheduler) CustomerBookings(ctx context.Context, customerID string) ([]models.Booking, error) {
	bookings, err := s.Bookings.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, utils.Internal("failed to load bookings", err)
	}
	return unwrap(s.sortByInstant(bookings)), nil
}

// ClosestCustomerBooking returns the customer's next booking at or after now.
func (s *Scheduler) ClosestCustomerBooking(ctx context.Context, customerID string) (*models.Booking, error) {
	bookings, err := s.Bookings.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, utils.Internal("failed to load bookings", err)
	}
	next := upcoming(s.sortByInstant(bookings), s.now())
	if len(next) == 0 {
		return nil, ErrNoUpcomingBooking
	}
	return &next[0], nil
}

// ShopBookings lists the upcoming bookings of an owned shop, earliest first.
func (s *Scheduler) ShopBookings(ctx context.Context, ownerID, shopID string) ([]models.Booking, error) {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return nil, err
	}
	bookings, err := s.Bookings.GetByShop(ctx, shopID)
	if err != nil {
		return nil, utils.Internal("failed to load bookings", err)
	}
	return upcoming(s.sortByInstant(bookings), s.now()), nil
}

// ClosestOwnerBooking returns the next booking across every shop of the owner.
func (s *Scheduler) ClosestOwnerBooking(ctx context.Context, ownerID string) (*models.Booking, error) {
	shops, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.Internal("failed to load shops", err)
	}
	var all []models.Booking
	for _, shop := range shops {
		bookings, err := s.Bookings.GetByShop(ctx, shop.ID)
		if err != nil {
			return nil, utils.Internal("failed to load bookings", err)
		}
		all = append(all, bookings...)
	}
	next := upcoming(s.sortByInstant(all), s.now())
	if len(next) == 0 {
		return nil, ErrNoUpcomingBooking
	}
	return &next[0], nil
}

// ListAvailability reports, for each hour the shop offers on the given day's weekday,
// whether it is still free. On a closed weekday every hour reads as taken.
func (s *Scheduler) ListAvailability(ctx context.Context, shopID, day string) ([]models.SlotAvailability, error) {
	if shopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	date, err := schedule.ParseDay(day, s.Location)
	if err != nil {
		return nil, err
	}
	shop, err := s.Shops.GetByID(ctx, shopID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, access.ErrShopNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load shop", err)
	}

	weekday := shop.Day(date.Weekday())
	slots := make([]models.SlotAvailability, len(weekday.Hours))
	if !weekday.Open {
		for i, h := range weekday.Hours {
			slots[i] = models.SlotAvailability{Hour: h}
		}
		return slots, nil
	}

	bookings, err := s.Bookings.GetByShop(ctx, shopID)
	if err != nil {
		return nil, utils.Internal("failed to load bookings", err)
	}
	taken := make(map[string]bool, len(bookings))
	for _, b := range bookings {
		taken[b.Date] = true
	}

	for i, h := range weekday.Hours {
		at, err := schedule.At(date, h)
		if err != nil {
			slots[i] = models.SlotAvailability{Hour: h}
			continue
		}
		slots[i] = models.SlotAvailability{Hour: h, Available: !taken[schedule.FormatDate(at)]}
	}
	return slots, nil
}
