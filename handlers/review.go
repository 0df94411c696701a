package handlers

import (
	"net/http"

	"hairbook/models"
	"hairbook/services/review"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	Reviews *review.Service
}

func NewReviewHandler(reviews *review.Service) *ReviewHandler {
	return &ReviewHandler{Reviews: reviews}
}

func (h *ReviewHandler) PostReviewHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	created, err := h.Reviews.Post(c.Request.Context(), identity, input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review posted successfully", "review": created})
}

func (h *ReviewHandler) UpdateReviewHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var input models.ReviewInput
	if !bindJSON(c, &input) {
		return
	}
	updated, err := h.Reviews.Update(c.Request.Context(), identity.UserID, c.Query("reviewId"), input)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": updated})
}

func (h *ReviewHandler) DeleteReviewHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	if err := h.Reviews.Delete(c.Request.Context(), identity.UserID, c.Query("reviewId")); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review deleted successfully"})
}

func (h *ReviewHandler) MyReviewsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	reviews, err := h.Reviews.ListMine(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"reviews": reviews})
}
