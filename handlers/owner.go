package handlers

import (
	"net/http"

	"hairbook/models"
	"hairbook/services/booking"
	"hairbook/services/review"
	"hairbook/services/shop"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// OwnerHandler serves the owner namespace. Every shop-scoped call is ownership-checked in the services.
type OwnerHandler struct {
	Shops     *shop.Service
	Scheduler *booking.Scheduler
	Reviews   *review.Service
}

func NewOwnerHandler(shops *shop.Service, scheduler *booking.Scheduler, reviews *review.Service) *OwnerHandler {
	return &OwnerHandler{Shops: shops, Scheduler: scheduler, Reviews: reviews}
}

func (h *OwnerHandler) CreateShopHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ShopInput
	if !bindJSON(c, &input) {
		return
	}
	created, err := h.Shops.CreateShop(c.Request.Context(), identity.UserID, input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Shop created successfully", "shop": created})
}

func (h *OwnerHandler) GetMyShopsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	shops, err := h.Shops.ListMyShops(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

func (h *OwnerHandler) GetShopHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	found, err := h.Shops.GetMyShop(c.Request.Context(), identity.UserID, c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": found})
}

func (h *OwnerHandler) UpdateShopHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ShopInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.Shops.UpdateShop(c.Request.Context(), identity.UserID, c.Query("shopId"), input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop updated successfully", "shop": updated})
}

// DeleteShopHandler removes the shop with all of its services, bookings and reviews.
func (h *OwnerHandler) DeleteShopHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	if err := h.Scheduler.DeleteShop(c.Request.Context(), identity.UserID, c.Query("shopId")); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Shop deleted successfully"})
}

func (h *OwnerHandler) GetReviewsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	reviews, err := h.Reviews.ListForOwnedShop(c.Request.Context(), identity.UserID, c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}

func (h *OwnerHandler) MyBookingsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	bookings, err := h.Scheduler.ShopBookings(c.Request.Context(), identity.UserID, c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *OwnerHandler) ClosestBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	next, err := h.Scheduler.ClosestOwnerBooking(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": next})
}

func (h *OwnerHandler) DeleteBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	err := h.Scheduler.DeleteBookingAsOwner(c.Request.Context(), identity.UserID, c.Query("shopId"), c.Query("bookingId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func (h *OwnerHandler) CreateServiceHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ServiceInput
	if !bindJSON(c, &input) {
		return
	}
	created, err := h.Shops.CreateService(c.Request.Context(), identity.UserID, c.Query("shopId"), input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Service created successfully", "service": created})
}

func (h *OwnerHandler) UpdateServiceHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ServiceInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.Shops.UpdateService(c.Request.Context(), identity.UserID, c.Query("shopId"), c.Query("serviceId"), input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service updated successfully", "service": updated})
}

func (h *OwnerHandler) DeleteServiceHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	if err := h.Shops.DeleteService(c.Request.Context(), identity.UserID, c.Query("shopId"), c.Query("serviceId")); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

func (h *OwnerHandler) GetServicesHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	services, err := h.Shops.ListServices(c.Request.Context(), identity.UserID, c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}
