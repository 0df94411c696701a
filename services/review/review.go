// Package review implements the customer review lifecycle and keeps shop ratings in step with it.
package review

import (
	"context"
	"errors"
	"sort"
	"time"

	"hairbook/database/docstore"
	bookingRepo "hairbook/database/repository/booking"
	reviewRepo "hairbook/database/repository/review"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/models"
	"hairbook/services/access"
	"hairbook/services/schedule"
	"hairbook/utils"
)

var (
	ErrInvalidRating   = utils.NewError(utils.KindValidation, "Rating must be between 1 and 5")
	ErrAlreadyReviewed = utils.NewError(utils.KindForbidden, "You have already reviewed this shop")
	ErrNoPastBooking   = utils.NewError(utils.KindForbidden, "You can only review a shop after a past booking")
	ErrReviewNotFound  = utils.NewError(utils.KindNotFound, "Review not found")
	ErrNotReviewAuthor = utils.NewError(utils.KindUnauthorized, "You are not authorized to modify this review")
)

// RatingTrigger is notified after every change to a shop's reviews.
type RatingTrigger interface {
	Trigger(ctx context.Context, shopID string)
}

// Service manages reviews.
type Service struct {
	Reviews  reviewRepo.ReviewRepository
	Shops    shopRepo.ShopRepository
	Bookings bookingRepo.BookingRepository
	Guard    *access.Guard
	Rating   RatingTrigger
	// RequirePastBooking makes a booking dated strictly before now a precondition for posting.
	RequirePastBooking bool
	Location           *time.Location
	Now                func() time.Time
}

func NewService(
	reviews reviewRepo.ReviewRepository,
	shops shopRepo.ShopRepository,
	bookings bookingRepo.BookingRepository,
	guard *access.Guard,
	rating RatingTrigger,
	requirePastBooking bool,
	loc *time.Location,
) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		Reviews:            reviews,
		Shops:              shops,
		Bookings:           bookings,
		Guard:              guard,
		Rating:             rating,
		RequirePastBooking: requirePastBooking,
		Location:           loc,
		Now:                time.Now,
	}
}

func validRating(r int) bool {
	return r >= 1 && r <= 5
}

func (s *Service) hasPastBooking(ctx context.Context, customerID, shopID string) (bool, error) {
	bookings, err := s.Bookings.GetByCustomer(ctx, customerID)
	if err != nil {
		return false, utils.Internal("failed to load bookings", err)
	}
	now := s.Now()
	for _, b := range bookings {
		if b.ShopID != shopID {
			continue
		}
		at, err := schedule.ParseDate(b.Date, s.Location)
		if err != nil {
			continue
		}
		if at.Before(now) {
			return true, nil
		}
	}
	return false, nil
}

// Post stores the customer's only review of a shop and refreshes the shop rating.
func (s *Service) Post(ctx context.Context, identity models.Identity, input models.ReviewInput) (*models.Review, error) {
	if input.ShopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	if !validRating(input.Rating) {
		return nil, ErrInvalidRating
	}
	if _, err := s.Shops.GetByID(ctx, input.ShopID); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, access.ErrShopNotFound
		}
		return nil, utils.Internal("failed to load shop", err)
	}

	if _, err := s.Reviews.GetByID(ctx, reviewRepo.ReviewID(input.ShopID, identity.UserID)); err == nil {
		return nil, ErrAlreadyReviewed
	} else if !errors.Is(err, docstore.ErrNotFound) {
		return nil, utils.Internal("failed to load review", err)
	}

	if s.RequirePastBooking {
		ok, err := s.hasPastBooking(ctx, identity.UserID, input.ShopID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNoPastBooking
		}
	}

	now := s.Now()
	review := &models.Review{
		ShopID:     input.ShopID,
		CustomerID: identity.UserID,
		Rating:     input.Rating,
		Body:       input.Body,
		FirstName:  input.FirstName,
		LastName:   input.LastName,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.Reviews.Create(ctx, review); err != nil {
		if errors.Is(err, docstore.ErrAlreadyExists) {
			return nil, ErrAlreadyReviewed
		}
		return nil, utils.Internal("failed to create review", err)
	}
	s.Rating.Trigger(ctx, review.ShopID)
	return review, nil
}

func (s *Service) loadOwn(ctx context.Context, requesterID, reviewID string) (*models.Review, error) {
	if reviewID == "" {
		return nil, utils.NewError(utils.KindValidation, "reviewId is required")
	}
	review, err := s.Reviews.GetByID(ctx, reviewID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load review", err)
	}
	if review.CustomerID != requesterID {
		return nil, ErrNotReviewAuthor
	}
	return review, nil
}

// Update changes the rating and text of the requester's own review.
func (s *Service) Update(ctx context.Context, requesterID, reviewID string, input models.ReviewInput) (*models.Review, error) {
	review, err := s.loadOwn(ctx, requesterID, reviewID)
	if err != nil {
		return nil, err
	}
	if !validRating(input.Rating) {
		return nil, ErrInvalidRating
	}
	review.Rating = input.Rating
	review.Body = input.Body
	if input.FirstName != "" {
		review.FirstName = input.FirstName
	}
	if input.LastName != "" {
		review.LastName = input.LastName
	}
	review.UpdatedAt = s.Now()

	if err := s.Reviews.Update(ctx, review); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, utils.Internal("failed to update review", err)
	}
	s.Rating.Trigger(ctx, review.ShopID)
	return review, nil
}

// Delete removes the requester's own review.
func (s *Service) Delete(ctx context.Context, requesterID, reviewID string) error {
	review, err := s.loadOwn(ctx, requesterID, reviewID)
	if err != nil {
		return err
	}
	if err := s.Reviews.Delete(ctx, review.ID); err != nil {
		return utils.Internal("failed to delete review", err)
	}
	s.Rating.Trigger(ctx, review.ShopID)
	return nil
}

func newestFirst(reviews []models.Review) []models.Review {
	sort.SliceStable(reviews, func(i, j int) bool { return reviews[i].CreatedAt.After(reviews[j].CreatedAt) })
	return reviews
}

func (s *Service) ListMine(ctx context.Context, customerID string) ([]models.Review, error) {
	reviews, err := s.Reviews.GetByCustomer(ctx, customerID)
	if err != nil {
		return nil, utils.Internal("failed to load reviews", err)
	}
	return newestFirst(reviews), nil
}

func (s *Service) ListForShop(ctx context.Context, shopID string) ([]models.Review, error) {
	if shopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	reviews, err := s.Reviews.GetByShop(ctx, shopID)
	if err != nil {
		return nil, utils.Internal("failed to load reviews", err)
	}
	return newestFirst(reviews), nil
}

// ListForOwnedShop is ListForShop behind the ownership check.
func (s *Service) ListForOwnedShop(ctx context.Context, ownerID, shopID string) ([]models.Review, error) {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return nil, err
	}
	return s.ListForShop(ctx, shopID)
}
