package booking

import (
	"context"
	"errors"

	"hairbook/database/docstore"
	"hairbook/utils"

	"go.uber.org/zap"
)

// DeleteShop removes an owned shop together with its reviews, bookings, slot claims and services
// in a single atomic batch.
func (s *Scheduler) DeleteShop(ctx context.Context, ownerID, shopID string) error {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return err
	}

	reviews, err := s.Reviews.GetByShop(ctx, shopID)
	if err != nil {
		return utils.Internal("failed to load reviews", err)
	}
	bookings, err := s.Bookings.GetByShop(ctx, shopID)
	if err != nil {
		return utils.Internal("failed to load bookings", err)
	}
	services, err := s.Services.GetByShop(ctx, shopID)
	if err != nil {
		return utils.Internal("failed to load services", err)
	}

	writes := make([]docstore.Write, 0, len(reviews)+4*len(bookings)+len(services)+1)
	for _, r := range reviews {
		writes = append(writes, s.Reviews.DeleteWrite(r.ID))
	}
	for i := range bookings {
		writes = append(writes, s.Bookings.DeleteWrites(&bookings[i])...)
	}
	for _, svc := range services {
		writes = append(writes, s.Services.DeleteWrite(svc.ID))
	}
	writes = append(writes, s.Shops.DeleteWrite(shopID))

	if err := s.Store.Batch(ctx, writes); err != nil {
		if errors.Is(err, docstore.ErrPreconditionFailed) {
			return utils.WrapError(utils.KindConflict, "Shop changed while it was being deleted, please retry", err)
		}
		return utils.Internal("failed to delete shop", err)
	}
	s.logger.Info("Shop deleted",
		zap.String("shopId", shopID),
		zap.Int("reviews", len(reviews)),
		zap.Int("bookings", len(bookings)),
		zap.Int("services", len(services)))
	return nil
}
