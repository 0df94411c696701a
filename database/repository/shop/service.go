package shopRepo

import (
	"context"
	"fmt"

	"hairbook/database/docstore"
	"hairbook/models"
)

// StoreServiceRepo implements ServiceRepository over a Document Store.
type StoreServiceRepo struct {
	store docstore.Store
}

func NewServiceRepo(store docstore.Store) ServiceRepository {
	return &StoreServiceRepo{store: store}
}

func decodeService(snap docstore.Snapshot) (*models.Service, error) {
	var service models.Service
	if err := snap.DataTo(&service); err != nil {
		return nil, fmt.Errorf("failed to decode service %s: %w", snap.ID(), err)
	}
	service.ID = snap.ID()
	return &service, nil
}

func (r *StoreServiceRepo) Create(ctx context.Context, service *models.Service) error {
	if err := r.store.Create(ctx, ServicesCollection, service.ID, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

func (r *StoreServiceRepo) GetByID(ctx context.Context, id string) (*models.Service, error) {
	snap, err := r.store.Get(ctx, ServicesCollection, id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch service with id %s: %w", id, err)
	}
	return decodeService(snap)
}

func (r *StoreServiceRepo) GetByShop(ctx context.Context, shopID string) ([]models.Service, error) {
	snaps, err := r.store.Query(ctx, ServicesCollection, docstore.Where("shopId", shopID))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch services of shop %s: %w", shopID, err)
	}
	services := make([]models.Service, 0, len(snaps))
	for _, snap := range snaps {
		service, err := decodeService(snap)
		if err != nil {
			return nil, err
		}
		services = append(services, *service)
	}
	return services, nil
}

func (r *StoreServiceRepo) Update(ctx context.Context, service *models.Service) error {
	err := r.store.Update(ctx, ServicesCollection, service.ID, map[string]any{
		"name":     service.Name,
		"price":    service.Price,
		"duration": service.Duration,
	})
	if err != nil {
		return fmt.Errorf("failed to update service with id %s: %w", service.ID, err)
	}
	return nil
}

func (r *StoreServiceRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, ServicesCollection, id); err != nil {
		return fmt.Errorf("failed to delete service with id %s: %w", id, err)
	}
	return nil
}

func (r *StoreServiceRepo) DeleteWrite(id string) docstore.Write {
	return docstore.DeleteOp(ServicesCollection, id)
}
