package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the authentication middleware into one struct.
type HandlerBundle struct {
	Authenticate gin.HandlerFunc

	// Auth endpoints
	LoginHandler      gin.HandlerFunc
	SignUpHandler     gin.HandlerFunc
	SignOutHandler    gin.HandlerFunc
	GetDetailsHandler gin.HandlerFunc

	// Customer booking endpoints
	BookHaircutHandler    gin.HandlerFunc
	UpdateBookingHandler  gin.HandlerFunc
	DeleteBookingHandler  gin.HandlerFunc
	UserBookingsHandler   gin.HandlerFunc
	ClosestBookingHandler gin.HandlerFunc
	AvailabilityHandler   gin.HandlerFunc

	// Customer review endpoints
	PostReviewHandler   gin.HandlerFunc
	UpdateReviewHandler gin.HandlerFunc
	DeleteReviewHandler gin.HandlerFunc
	MyReviewsHandler    gin.HandlerFunc

	// Owner endpoints
	CreateShopHandler          gin.HandlerFunc
	GetMyShopsHandler          gin.HandlerFunc
	GetMyShopHandler           gin.HandlerFunc
	UpdateShopHandler          gin.HandlerFunc
	DeleteShopHandler          gin.HandlerFunc
	OwnerReviewsHandler        gin.HandlerFunc
	OwnerBookingsHandler       gin.HandlerFunc
	OwnerClosestBookingHandler gin.HandlerFunc
	OwnerDeleteBookingHandler  gin.HandlerFunc
	CreateServiceHandler       gin.HandlerFunc
	UpdateServiceHandler       gin.HandlerFunc
	DeleteServiceHandler       gin.HandlerFunc
	OwnerServicesHandler       gin.HandlerFunc

	// Shared endpoints
	GetAllShopsHandler    gin.HandlerFunc
	GetShopByIDHandler    gin.HandlerFunc
	GetServiceByIDHandler gin.HandlerFunc
	GetServicesHandler    gin.HandlerFunc
	GetReviewsHandler     gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the individual handlers.
func NewHandlerBundle(authenticate gin.HandlerFunc, a *AuthHandler, b *BookingHandler, r *ReviewHandler, o *OwnerHandler, s *SharedHandler) *HandlerBundle {
	return &HandlerBundle{
		Authenticate: authenticate,

		LoginHandler:      a.LoginHandler,
		SignUpHandler:     a.SignUpHandler,
		SignOutHandler:    a.SignOutHandler,
		GetDetailsHandler: a.GetDetailsHandler,

		BookHaircutHandler:    b.BookHaircutHandler,
		UpdateBookingHandler:  b.UpdateBookingHandler,
		DeleteBookingHandler:  b.DeleteBookingHandler,
		UserBookingsHandler:   b.UserBookingsHandler,
		ClosestBookingHandler: b.ClosestBookingHandler,
		AvailabilityHandler:   b.AvailabilityHandler,

		PostReviewHandler:   r.PostReviewHandler,
		UpdateReviewHandler: r.UpdateReviewHandler,
		DeleteReviewHandler: r.DeleteReviewHandler,
		MyReviewsHandler:    r.MyReviewsHandler,

		CreateShopHandler:          o.CreateShopHandler,
		GetMyShopsHandler:          o.GetMyShopsHandler,
		GetMyShopHandler:           o.GetShopHandler,
		UpdateShopHandler:          o.UpdateShopHandler,
		DeleteShopHandler:          o.DeleteShopHandler,
		OwnerReviewsHandler:        o.GetReviewsHandler,
		OwnerBookingsHandler:       o.MyBookingsHandler,
		OwnerClosestBookingHandler: o.ClosestBookingHandler,
		OwnerDeleteBookingHandler:  o.DeleteBookingHandler,
		CreateServiceHandler:       o.CreateServiceHandler,
		UpdateServiceHandler:       o.UpdateServiceHandler,
		DeleteServiceHandler:       o.DeleteServiceHandler,
		OwnerServicesHandler:       o.GetServicesHandler,

		GetAllShopsHandler:    s.GetAllShopsHandler,
		GetShopByIDHandler:    s.GetShopByIDHandler,
		GetServiceByIDHandler: s.GetServiceByIDHandler,
		GetServicesHandler:    s.GetServicesHandler,
		GetReviewsHandler:     s.GetReviewsHandler,
	}
}
