package handlers

import (
	"net/http"

	"hairbook/services/review"
	"hairbook/services/shop"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// SharedHandler serves read-only lookups open to every signed-in role.
type SharedHandler struct {
	Shops   *shop.Service
	Reviews *review.Service
}

func NewSharedHandler(shops *shop.Service, reviews *review.Service) *SharedHandler {
	return &SharedHandler{Shops: shops, Reviews: reviews}
}

func (h *SharedHandler) GetAllShopsHandler(c *gin.Context) {
	shops, err := h.Shops.ListShops(c.Request.Context())
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shops": shops})
}

func (h *SharedHandler) GetShopByIDHandler(c *gin.Context) {
	found, err := h.Shops.GetShop(c.Request.Context(), c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"shop": found})
}

func (h *SharedHandler) GetServiceByIDHandler(c *gin.Context) {
	found, err := h.Shops.GetService(c.Request.Context(), c.Query("serviceId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"service": found})
}

func (h *SharedHandler) GetServicesHandler(c *gin.Context) {
	services, err := h.Shops.ListShopServices(c.Request.Context(), c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"services": services})
}

func (h *SharedHandler) GetReviewsHandler(c *gin.Context) {
	reviews, err := h.Reviews.ListForShop(c.Request.Context(), c.Query("shopId"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
