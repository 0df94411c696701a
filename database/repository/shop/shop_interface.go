package shopRepo

import (
	"context"

	"hairbook/database/docstore"
	"hairbook/models"
)

const (
	ShopsCollection    = "Shops"
	ServicesCollection = "Services"
)

// ShopRepository defines methods for shop data access.
type ShopRepository interface {
	// Create inserts a new shop; the ID must already be set.
	Create(ctx context.Context, shop *models.Shop) error
	// GetByID retrieves a shop by its ID. A missing shop wraps docstore.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Shop, error)
	// GetByOwner retrieves every shop of an owner.
	GetByOwner(ctx context.Context, ownerID string) ([]models.Shop, error)
	// GetAll retrieves all shops.
	GetAll(ctx context.Context) ([]models.Shop, error)
	// Update writes the owner-editable fields of an existing shop and leaves the rating alone.
	// A missing shop reports docstore.ErrNotFound.
	Update(ctx context.Context, shop *models.Shop) error
	// SetRating writes only the rating field.
	SetRating(ctx context.Context, id string, rating float64) error
	// DeleteWrite is the batch write that removes a shop.
	DeleteWrite(id string) docstore.Write
}

// ServiceRepository defines methods for service data access.
type ServiceRepository interface {
	Create(ctx context.Context, service *models.Service) error
	GetByID(ctx context.Context, id string) (*models.Service, error)
	GetByShop(ctx context.Context, shopID string) ([]models.Service, error)
	// Update writes name, price and duration; a missing service reports docstore.ErrNotFound.
	Update(ctx context.Context, service *models.Service) error
	Delete(ctx context.Context, id string) error
	// DeleteWrite is the batch write that removes a service.
	DeleteWrite(id string) docstore.Write
}
