package repository

import (
	"context"

	"hairbook/database/docstore"
	bookingRepo "hairbook/database/repository/booking"
	reviewRepo "hairbook/database/repository/review"
	revocationRepo "hairbook/database/repository/revocation"
	shopRepo "hairbook/database/repository/shop"
	userRepo "hairbook/database/repository/user"
)

// Re-export the repository interfaces and constructors.
type (
	ShopRepository       = shopRepo.ShopRepository
	ServiceRepository    = shopRepo.ServiceRepository
	BookingRepository    = bookingRepo.BookingRepository
	ReviewRepository     = reviewRepo.ReviewRepository
	UserRepository       = userRepo.UserRepository
	RevocationRepository = revocationRepo.RevocationRepository
)

var (
	NewShopRepo       = shopRepo.NewShopRepo
	NewServiceRepo    = shopRepo.NewServiceRepo
	NewBookingRepo    = bookingRepo.NewBookingRepo
	NewReviewRepo     = reviewRepo.NewReviewRepo
	NewUserRepo       = userRepo.NewUserRepo
	NewRevocationRepo = revocationRepo.NewRevocationRepo
)

// Repositories bundles every repository over one Document Store.
type Repositories struct {
	Store       docstore.Store
	Shops       ShopRepository
	Services    ServiceRepository
	Bookings    BookingRepository
	Reviews     ReviewRepository
	Users       UserRepository
	Revocations RevocationRepository
}

func New(store docstore.Store) *Repositories {
	return &Repositories{
		Store:       store,
		Shops:       NewShopRepo(store),
		Services:    NewServiceRepo(store),
		Bookings:    NewBookingRepo(store),
		Reviews:     NewReviewRepo(store),
		Users:       NewUserRepo(store),
		Revocations: NewRevocationRepo(store),
	}
}

// indexer is implemented by backends that need secondary indexes for equality queries.
type indexer interface {
	EnsureIndexes(ctx context.Context, collection string, fields ...string) error
}

// queryIndexes lists the fields every repository filters on.
var queryIndexes = map[string][]string{
	shopRepo.ShopsCollection:       {"ownerId"},
	shopRepo.ServicesCollection:    {"shopId"},
	bookingRepo.BookingsCollection: {"shopId", "customerId", "date"},
	reviewRepo.ReviewsCollection:   {"shopId", "customerId"},
	userRepo.UsersCollection:       {"email"},
}

// EnsureIndexes creates the query indexes when the backend supports them.
func EnsureIndexes(ctx context.Context, store docstore.Store) error {
	idx, ok := store.(indexer)
	if !ok {
		return nil
	}
	for collection, fields := range queryIndexes {
		if err := idx.EnsureIndexes(ctx, collection, fields...); err != nil {
			return err
		}
	}
	return nil
}
