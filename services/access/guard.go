// Package access answers ownership questions for shop-scoped operations.
package access

import (
	"context"
	"errors"

	"hairbook/database/docstore"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/models"
	"hairbook/utils"
)

var (
	ErrShopNotFound = utils.NewError(utils.KindNotFound, "Shop not found")
	ErrNotShopOwner = utils.NewError(utils.KindForbidden, "You are not authorized to access this shop")
)

// Guard checks that a requester owns a shop.
type Guard struct {
	Shops shopRepo.ShopRepository
}

func NewGuard(shops shopRepo.ShopRepository) *Guard {
	return &Guard{Shops: shops}
}

// RequireShopOwner loads the shop and returns it only when ownerID owns it.
func (g *Guard) RequireShopOwner(ctx context.Context, shopID, ownerID string) (*models.Shop, error) {
	if shopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	shop, err := g.Shops.GetByID(ctx, shopID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrShopNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load shop", err)
	}
	if shop.OwnerID != ownerID {
		return nil, ErrNotShopOwner
	}
	return shop, nil
}
