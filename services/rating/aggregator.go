// Package rating keeps each shop's rating equal to the mean of its reviews.
package rating

import (
	"context"
	"errors"
	"math"

	"hairbook/database/docstore"
	reviewRepo "hairbook/database/repository/review"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/utils"

	"go.uber.org/zap"
)

// DefaultRating is the rating of a shop without reviews.
const DefaultRating = 5.0

// RecomputeQueue defers recomputes to a background worker.
type RecomputeQueue interface {
	EnqueueRecompute(ctx context.Context, shopID string) error
}

// Aggregator recomputes shop ratings from scratch on every call.
type Aggregator struct {
	Reviews reviewRepo.ReviewRepository
	Shops   shopRepo.ShopRepository
	// Queue is optional; when set, Trigger enqueues instead of recomputing inline.
	Queue  RecomputeQueue
	logger *zap.Logger
}

func NewAggregator(reviews reviewRepo.ReviewRepository, shops shopRepo.ShopRepository, queue RecomputeQueue) *Aggregator {
	return &Aggregator{Reviews: reviews, Shops: shops, Queue: queue, logger: utils.GetLogger()}
}

// Mean is the arithmetic mean of ratings, or DefaultRating when there are none.
func Mean(ratings []int) float64 {
	if len(ratings) == 0 {
		return DefaultRating
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	mean := float64(sum) / float64(len(ratings))
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return DefaultRating
	}
	return mean
}

// Recompute reads every review of the shop and writes the mean onto it.
func (a *Aggregator) Recompute(ctx context.Context, shopID string) (float64, error) {
	reviews, err := a.Reviews.GetByShop(ctx, shopID)
	if err != nil {
		return 0, utils.Internal("failed to load reviews", err)
	}
	ratings := make([]int, 0, len(reviews))
	for _, r := range reviews {
		ratings = append(ratings, r.Rating)
	}
	value := Mean(ratings)

	if err := a.Shops.SetRating(ctx, shopID, value); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return 0, utils.WrapError(utils.KindNotFound, "Shop not found", err)
		}
		return 0, utils.Internal("failed to store rating", err)
	}
	return value, nil
}

// Trigger brings the shop's rating up to date. Failures are logged and never returned:
// the next review mutation recomputes from scratch anyway.
func (a *Aggregator) Trigger(ctx context.Context, shopID string) {
	if a.Queue != nil {
		err := a.Queue.EnqueueRecompute(ctx, shopID)
		if err == nil {
			return
		}
		a.logger.Warn("Failed to enqueue rating recompute, recomputing inline",
			zap.String("shopId", shopID), zap.Error(err))
	}
	if _, err := a.Recompute(ctx, shopID); err != nil {
		a.logger.Error("Rating recompute failed", zap.String("shopId", shopID), zap.Error(err))
	}
}
