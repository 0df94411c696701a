// Package shop manages shops and their service catalogue.
package shop

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"hairbook/database/docstore"
	shopRepo "hairbook/database/repository/shop"
	"hairbook/models"
	"hairbook/services/access"
	"hairbook/services/rating"
	"hairbook/services/schedule"
	"hairbook/utils"

	"github.com/google/uuid"
)

var ErrServiceNotFound = utils.NewError(utils.KindNotFound, "Service not found")

// Service implements the owner catalogue operations and the shared read-only lookups.
type Service struct {
	Shops    shopRepo.ShopRepository
	Services shopRepo.ServiceRepository
	Guard    *access.Guard
	Now      func() time.Time
}

func NewService(shops shopRepo.ShopRepository, services shopRepo.ServiceRepository, guard *access.Guard) *Service {
	return &Service{Shops: shops, Services: services, Guard: guard, Now: time.Now}
}

func validateShopInput(input models.ShopInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return utils.NewError(utils.KindValidation, "Shop name is required")
	}
	return schedule.ValidateWeek(input.Week)
}

func validateServiceInput(input models.ServiceInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return utils.NewError(utils.KindValidation, "Service name is required")
	}
	if input.Price < 0 || input.Duration < 0 {
		return utils.NewError(utils.KindValidation, "Price and duration must not be negative")
	}
	return nil
}

func byName(shops []models.Shop) []models.Shop {
	sort.SliceStable(shops, func(i, j int) bool { return shops[i].Name < shops[j].Name })
	return shops
}

// CreateShop registers a new shop for the owner with the default rating.
func (s *Service) CreateShop(ctx context.Context, ownerID string, input models.ShopInput) (*models.Shop, error) {
	if err := validateShopInput(input); err != nil {
		return nil, err
	}
	now := s.Now()
	shop := &models.Shop{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(input.Name),
		PhoneNumber: input.PhoneNumber,
		Week:        input.Week,
		Rating:      rating.DefaultRating,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Shops.Create(ctx, shop); err != nil {
		return nil, utils.Internal("failed to create shop", err)
	}
	return shop, nil
}

func (s *Service) ListMyShops(ctx context.Context, ownerID string) ([]models.Shop, error) {
	shops, err := s.Shops.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, utils.Internal("failed to load shops", err)
	}
	return byName(shops), nil
}

func (s *Service) GetMyShop(ctx context.Context, ownerID, shopID string) (*models.Shop, error) {
	return s.Guard.RequireShopOwner(ctx, shopID, ownerID)
}

// UpdateShop writes the name, phone number and week. Rating and ownership are not editable,
// and a shop deleted meanwhile stays deleted.
func (s *Service) UpdateShop(ctx context.Context, ownerID, shopID string, input models.ShopInput) (*models.Shop, error) {
	shop, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID)
	if err != nil {
		return nil, err
	}
	if err := validateShopInput(input); err != nil {
		return nil, err
	}
	shop.Name = strings.TrimSpace(input.Name)
	shop.PhoneNumber = input.PhoneNumber
	shop.Week = input.Week
	shop.UpdatedAt = s.Now()
	if err := s.Shops.Update(ctx, shop); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, access.ErrShopNotFound
		}
		return nil, utils.Internal("failed to update shop", err)
	}
	return shop, nil
}

func (s *Service) CreateService(ctx context.Context, ownerID, shopID string, input models.ServiceInput) (*models.Service, error) {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return nil, err
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	service := &models.Service{
		ID:        uuid.New().String(),
		ShopID:    shopID,
		Name:      strings.TrimSpace(input.Name),
		Price:     input.Price,
		Duration:  input.Duration,
		CreatedAt: s.Now(),
	}
	if err := s.Services.Create(ctx, service); err != nil {
		return nil, utils.Internal("failed to create service", err)
	}
	return service, nil
}

// ownedService loads a service only if it belongs to a shop the owner holds.
func (s *Service) ownedService(ctx context.Context, ownerID, shopID, serviceID string) (*models.Service, error) {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return nil, err
	}
	service, err := s.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if service.ShopID != shopID {
		return nil, ErrServiceNotFound
	}
	return service, nil
}

func (s *Service) UpdateService(ctx context.Context, ownerID, shopID, serviceID string, input models.ServiceInput) (*models.Service, error) {
	service, err := s.ownedService(ctx, ownerID, shopID, serviceID)
	if err != nil {
		return nil, err
	}
	if err := validateServiceInput(input); err != nil {
		return nil, err
	}
	service.Name = strings.TrimSpace(input.Name)
	service.Price = input.Price
	service.Duration = input.Duration
	if err := s.Services.Update(ctx, service); err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, utils.Internal("failed to update service", err)
	}
	return service, nil
}

// DeleteService removes a service. Bookings that reference it are left as they are.
func (s *Service) DeleteService(ctx context.Context, ownerID, shopID, serviceID string) error {
	service, err := s.ownedService(ctx, ownerID, shopID, serviceID)
	if err != nil {
		return err
	}
	if err := s.Services.Delete(ctx, service.ID); err != nil {
		return utils.Internal("failed to delete service", err)
	}
	return nil
}

func (s *Service) ListServices(ctx context.Context, ownerID, shopID string) ([]models.Service, error) {
	if _, err := s.Guard.RequireShopOwner(ctx, shopID, ownerID); err != nil {
		return nil, err
	}
	return s.ListShopServices(ctx, shopID)
}

func (s *Service) GetShop(ctx context.Context, shopID string) (*models.Shop, error) {
	if shopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	shop, err := s.Shops.GetByID(ctx, shopID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, access.ErrShopNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load shop", err)
	}
	return shop, nil
}

func (s *Service) ListShops(ctx context.Context) ([]models.Shop, error) {
	shops, err := s.Shops.GetAll(ctx)
	if err != nil {
		return nil, utils.Internal("failed to load shops", err)
	}
	return byName(shops), nil
}

func (s *Service) GetService(ctx context.Context, serviceID string) (*models.Service, error) {
	if serviceID == "" {
		return nil, utils.NewError(utils.KindValidation, "serviceId is required")
	}
	service, err := s.Services.GetByID(ctx, serviceID)
	if errors.Is(err, docstore.ErrNotFound) {
		return nil, ErrServiceNotFound
	}
	if err != nil {
		return nil, utils.Internal("failed to load service", err)
	}
	return service, nil
}

func (s *Service) ListShopServices(ctx context.Context, shopID string) ([]models.Service, error) {
	if shopID == "" {
		return nil, utils.NewError(utils.KindValidation, "shopId is required")
	}
	services, err := s.Services.GetByShop(ctx, shopID)
	if err != nil {
		return nil, utils.Internal("failed to load services", err)
	}
	sort.SliceStable(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}
