package booking

import (
	"context"
	"errors"
	"time"

	"hairbook/database/docstore"
	bookingRepo "hairbook/database/repository/booking"
	reviewRepo "hairbook/database/repository/review"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/models"
	"hairbook/services/access"
	"hairbook/services/schedule"
	"hairbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidService  = utils.NewError(utils.KindValidation, "Service does not belong to this shop")
	ErrSlotTaken       = utils.NewError(utils.KindConflict, "This time slot is already booked")
	ErrBookingNotFound = utils.NewError(utils.KindNotFound, "Booking not found")
	ErrNotBookingOwner = utils.NewError(utils.KindUnauthorized, "You are not authorized to modify this booking")
	ErrBookingChanged  = utils.NewError(utils.KindConflict, "Booking was changed by another request, please retry")
)

// deleteAttempts bounds how often a delete reloads a booking that moved under it.
const deleteAttempts = 3

// Scheduler owns the booking lifecycle.
type Scheduler struct {
	Store     docstore.Store
	Shops     shopRepo.ShopRepository
	Services  shopRepo.ServiceRepository
	Bookings  bookingRepo.BookingRepository
	Reviews   reviewRepo.ReviewRepository
	Guard     *access.Guard
	Conflicts *ConflictDetector
	Location  *time.Location
	Now       func() time.Time
	logger    *zap.Logger
}

// NewScheduler wires a Scheduler with the wall clock.
func NewScheduler(
	store docstore.Store,
	shops shopRepo.ShopRepository,
	services shopRepo.ServiceRepository,
	bookings bookingRepo.BookingRepository,
	reviews reviewRepo.ReviewRepository,
	guard *access.Guard,
	loc *time.Location,
) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		Store:     store,
		Shops:     shops,
		Services:  services,
		Bookings:  bookings,
		Reviews:   reviews,
		Guard:     guard,
		Conflicts: &ConflictDetector{Bookings: bookings},
		Location:  loc,
		Now:       time.Now,
		logger:    utils.GetLogger(),
	}
}

func (s *Scheduler) now() time.Time {
	return s.Now().In(s.Location)
}

// validate runs the fail-fast pipeline: service validity, shop existence, date and hour, conflict.
func (s *Scheduler) validate(ctx context.Context, req models.BookingRequest, excludingID string) (*models.Shop, error) {
	service, err := s.Services.GetByID(ctx, req.ServiceID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrInvalidService
	}
	if err != nil {
		return nil, utils.Internal("failed to load service", err)
	}
	if service.ShopID != req.ShopID {
		return nil, ErrInvalidService
	}

	shop, err := s.Shops.GetByID(ctx, req.ShopID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, access.ErrShopNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load shop", err)
	}

	instant, err := schedule.ParseDate(req.Date, s.Location)
	if err != nil {
		return nil, err
	}
	if err := schedule.Check(shop, instant, s.now()); err != nil {
		return nil, err
	}

	taken, err := s.Conflicts.HasConflict(ctx, req.ShopID, req.Date, excludingID)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, ErrSlotTaken
	}
	return shop, nil
}

func snapshotDisplay(shop *models.Shop, display models.BookingDisplay) models.BookingDisplay {
	if display.ShopName == "" {
		display.ShopName = shop.Name
	}
	return display
}

// CreateBooking validates the request and stores a new booking with a fresh ID.
// Losing a concurrent race for the same slot reports ErrSlotTaken.
func (s *Scheduler) CreateBooking(ctx context.Context, customerID string, req models.BookingRequest) (*models.Booking, error) {
	shop, err := s.validate(ctx, req, "")
	if err != nil {
		return nil, err
	}

	now := s.Now()
	booking := &models.Booking{
		ID:         uuid.New().String(),
		ShopID:     req.ShopID,
		ServiceID:  req.ServiceID,
		CustomerID: customerID,
		Date:       req.Date,
		Display:    snapshotDisplay(shop, req.Display),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Bookings.Create(ctx, booking); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return nil, ErrSlotTaken
		}
		return nil, utils.Internal("failed to create booking", err)
	}
	s.logger.Info("Booking created",
		zap.String("bookingId", booking.ID), zap.String("shopId", booking.ShopID), zap.String("date", booking.Date))
	return booking, nil
}

func (s *Scheduler) load(ctx context.Context, bookingID string) (*models.Booking, error) {
	if bookingID == "" {
		return nil, utils.NewError(utils.KindValidation, "bookingId is required")
	}
	booking, err := s.Bookings.GetByID(ctx, bookingID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load booking", err)
	}
	return booking, nil
}

// UpdateBooking re-validates the new fields, ignoring the booking's own slot, then overwrites it.
func (s *Scheduler) UpdateBooking(ctx context.Context, requesterID, bookingID string, req models.BookingRequest) (*models.Booking, error) {
	current, err := s.load(ctx, bookingID)
	if err != nil {
		return nil, err
	}
	if current.CustomerID != requesterID {
		return nil, ErrNotBookingOwner
	}

	shop, err := s.validate(ctx, req, bookingID)
	if err != nil {
		return nil, err
	}

	updated := *current
	updated.ShopID = req.ShopID
	updated.ServiceID = req.ServiceID
	updated.Date = req.Date
	updated.Display = snapshotDisplay(shop, req.Display)
	updated.UpdatedAt = s.Now()

	if err := s.Bookings.Replace(ctx, &updated, current); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return nil, ErrSlotTaken
		}
		if errors.Is(err, docstore.ErrPreconditionFailed) {
			return nil, ErrBookingChanged
		}
		return nil, utils.Internal("failed to update booking", err)
	}
	return &updated, nil
}

// DeleteBooking removes a booking on behalf of the customer who made it.
func (s *Scheduler) DeleteBooking(ctx context.Context, requesterID, bookingID string) error {
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if booking.CustomerID != requesterID {
		return ErrNotBookingOwner
	}
	return s.remove(ctx, booking, func(b *models.Booking) error {
		if b.CustomerID != requesterID {
			return ErrNotBookingOwner
		}
		return nil
	})
}

// remove deletes the booking with its slot claim. When a concurrent update moved the booking
// after it was read, it is reloaded, re-checked with allowed and deleted again.
func (s *Scheduler) remove(ctx context.Context, booking *models.Booking, allowed func(*models.Booking) error) error {
	for attempt := 1; ; attempt++ {
		err := s.Bookings.Delete(ctx, booking)
		if err == nil {
			return nil
		}
		if !errors.Is(err, docstore.ErrPreconditionFailed) {
			return utils.Internal("failed to delete booking", err)
		}
		if attempt == deleteAttempts {
			return ErrBookingChanged
		}
		s.logger.Debug("Booking moved while deleting, reloading",
			zap.String("bookingId", booking.ID), zap.Int("attempt", attempt))

		booking, err = s.load(ctx, booking.ID)
		if errors.Is(err, ErrBookingNotFound) {
			// Someone else deleted it first.
			return nil
		}
		if err != nil {
			return err
		}
		if err := allowed(booking); err != nil {
			return err
		}
	}
}

// DeleteBookingAsOwner removes a booking of one of the owner's shops. When shopID is empty
// the booking's own shop is checked.
func (s *Scheduler) DeleteBookingAsOwner(ctx context.Context, ownerID, shopID, bookingID string) error {
	if shopID != "" {
		if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
			return err
		}
	}
	booking, err := s.load(ctx, bookingID)
	if err != nil {
		return err
	}
	if shopID == "" {
		if _, err := s.Guard.RequireShopOwner(ctx, booking.ShopID, ownerID); err != nil {
			return err
		}
	} else if booking.ShopID != shopID {
		return ErrBookingNotFound
	}
	return s.remove(ctx, booking, func(b *models.Booking) error {
		if shopID != "" && b.ShopID != shopID {
			return ErrBookingNotFound
		}
		_, err := s.Guard.RequireShopOwner(ctx, b.ShopID, ownerID)
		return err
	})
}
