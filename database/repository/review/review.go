package reviewRepo

import (
	"context"
	"fmt"

	"hairbook/database/docstore"
	"hairbook/models"
)

const ReviewsCollection = "Reviews"

// ReviewRepository defines methods for review data access.
type ReviewRepository interface {
	// Create inserts a review; a second review of the same shop by the same customer wraps docstore.ErrAlreadyExists.
	Create(ctx context.Context, review *models.Review) error
	GetByID(ctx context.Context, id string) (*models.Review, error)
	GetByShop(ctx context.Context, shopID string) ([]models.Review, error)
	GetByCustomer(ctx context.Context, customerID string) ([]models.Review, error)
	// Update writes the editable fields of an existing review; a missing review wraps docstore.ErrNotFound.
	Update(ctx context.Context, review *models.Review) error
	Delete(ctx context.Context, id string) error
	DeleteWrite(id string) docstore.Write
}

// ReviewID is the document ID of a customer's review of a shop.
func ReviewID(shopID, customerID string) string {
	return shopID + "_" + customerID
}

// StoreReviewRepo implements ReviewRepository over a Document Store.
type StoreReviewRepo struct {
	store docstore.Store
}

func NewReviewRepo(store docstore.Store) ReviewRepository {
	return &StoreReviewRepo{store: store}
}

func decodeReview(snap docstore.Snapshot) (*models.Review, error) {
	var review models.Review
	if err := snap.DataTo(&review); err != nil {
		return nil, fmt.Errorf("failed to decode review %s: %w", snap.ID(), err)
	}
	review.ID = snap.ID()
	return &review, nil
}

func (r *StoreReviewRepo) query(ctx context.Context, filter docstore.Filter) ([]models.Review, error) {
	snaps, err := r.store.Query(ctx, ReviewsCollection, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	reviews := make([]models.Review, 0, len(snaps))
	for _, snap := range snaps {
		review, err := decodeReview(snap)
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, *review)
	}
	return reviews, nil
}

func (r *StoreReviewRepo) Create(ctx context.Context, review *models.Review) error {
	review.ID = ReviewID(review.ShopID, review.CustomerID)
	if err := r.store.Create(ctx, ReviewsCollection, review.ID, review); err != nil {
		return fmt.Errorf("failed to create review: %w", err)
	}
	return nil
}

func (r *StoreReviewRepo) GetByID(ctx context.Context, id string) (*models.Review, error) {
	snap, err := r.store.Get(ctx, ReviewsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch review with id %s: %w", id, err)
	}
	return decodeReview(snap)
}

func (r *StoreReviewRepo) GetByShop(ctx context.Context, shopID string) ([]models.Review, error) {
	return r.query(ctx, docstore.Where("shopId", shopID))
}

func (r *StoreReviewRepo) GetByCustomer(ctx context.Context, customerID string) ([]models.Review, error) {
	return r.query(ctx, docstore.Where("customerId", customerID))
}

func (r *StoreReviewRepo) Update(ctx context.Context, review *models.Review) error {
	err := r.store.Update(ctx, ReviewsCollection, review.ID, map[string]any{
		"rating":    review.Rating,
		"review":    review.Body,
		"firstName": review.FirstName,
		"lastName":  review.LastName,
		"updatedAt": review.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update review with id %s: %w", review.ID, err)
	}
	return nil
}

func (r *StoreReviewRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, ReviewsCollection, id); err != nil {
		return fmt.Errorf("failed to delete review with id %s: %w", id, err)
	}
	return nil
}

func (r *StoreReviewRepo) DeleteWrite(id string) docstore.Write {
	return docstore.DeleteOp(ReviewsCollection, id)
}
