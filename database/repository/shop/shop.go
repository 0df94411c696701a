package shopRepo

import (
	"context"
	"fmt"

	"hairbook/database/docstore"
	"hairbook/models"
)

// StoreShopRepo implements ShopRepository over a Document Store.
type StoreShopRepo struct {
	store docstore.Store
}

func NewShopRepo(store docstore.Store) ShopRepository {
	return &StoreShopRepo{store: store}
}

func decodeShop(snap docstore.Snapshot) (*models.Shop, error) {
	var shop models.Shop
	if err := snap.DataTo(&shop); err != nil {
		return nil, fmt.Errorf("failed to decode shop %s: %w", snap.ID(), err)
	}
	shop.ID = snap.ID()
	return &shop, nil
}

func decodeShops(snaps []docstore.Snapshot) ([]models.Shop, error) {
	shops := make([]models.Shop, 0, len(snaps))
	for _, snap := range snaps {
		shop, err := decodeShop(snap)
		if err != nil {
			return nil, err
		}
		shops = append(shops, *shop)
	}
	return shops, nil
}

func (r *StoreShopRepo) Create(ctx context.Context, shop *models.Shop) error {
	if err := r.store.Create(ctx, ShopsCollection, shop.ID, shop); err != nil {
		return fmt.Errorf("failed to create shop: %w", err)
	}
	return nil
}

func (r *StoreShopRepo) GetByID(ctx context.Context, id string) (*models.Shop, error) {
	snap, err := r.store.Get(ctx, ShopsCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shop with id %s: %w", id, err)
	}
	return decodeShop(snap)
}

func (r *StoreShopRepo) GetByOwner(ctx context.Context, ownerID string) ([]models.Shop, error) {
	snaps, err := r.store.Query(ctx, ShopsCollection, docstore.Where("ownerId", ownerID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shops of owner %s: %w", ownerID, err)
	}
	return decodeShops(snaps)
}

func (r *StoreShopRepo) GetAll(ctx context.Context) ([]models.Shop, error) {
	snaps, err := r.store.Query(ctx, ShopsCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch shops: %w", err)
	}
	return decodeShops(snaps)
}

func (r *StoreShopRepo) Update(ctx context.Context, shop *models.Shop) error {
	err := r.store.Update(ctx, ShopsCollection, shop.ID, map[string]any{
		"name":        shop.Name,
		"phoneNumber": shop.PhoneNumber,
		"week":        shop.Week,
		"updatedAt":   shop.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("failed to update shop with id %s: %w", shop.ID, err)
	}
	return nil
}

func (r *StoreShopRepo) SetRating(ctx context.Context, id string, rating float64) error {
	if err := r.store.Update(ctx, ShopsCollection, id, map[string]any{"rating": rating}); err != nil {
		return fmt.Errorf("failed to set rating of shop %s: %w", id, err)
	}
	return nil
}

func (r *StoreShopRepo) DeleteWrite(id string) docstore.Write {
	return docstore.DeleteOp(ShopsCollection, id)
}
