package handlers

import (
	"net/http"

	"hairbook/models"
	"hairbook/services/booking"
	"hairbook/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler serves the customer booking endpoints.
type BookingHandler struct {
	Scheduler *booking.Scheduler
}

func NewBookingHandler(scheduler *booking.Scheduler) *BookingHandler {
	return &BookingHandler{Scheduler: scheduler}
}

func (h *BookingHandler) BookHaircutHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Scheduler.CreateBooking(c.Request.Context(), identity.UserID, req)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking created successfully", "booking": created})
}

func (h *BookingHandler) UpdateBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	var req models.BookingRequest
	if !bindJSON(c, &req) {
		return
	}
	updated, err := h.Scheduler.UpdateBooking(c.Request.Context(), identity.UserID, c.Query("bookingId"), req)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": updated})
}

func (h *BookingHandler) DeleteBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	if err := h.Scheduler.DeleteBooking(c.Request.Context(), identity.UserID, c.Query("bookingId")); err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func (h *BookingHandler) UserBookingsHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	bookings, err := h.Scheduler.CustomerBookings(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (h *BookingHandler) ClosestBookingHandler(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	next, err := h.Scheduler.ClosestCustomerBooking(c.Request.Context(), identity.UserID)
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"booking": next})
}

// AvailabilityHandler answers with one flag per configured hour of the day; true means free.
func (h *BookingHandler) AvailabilityHandler(c *gin.Context) {
	slots, err := h.Scheduler.ListAvailability(c.Request.Context(), c.Query("shopId"), c.Query("date"))
	if err != nil {
		utils.RespondError(c, getLogger(c), err)
		return
	}
	flags := make([]bool, len(slots))
	for i, s := range slots {
		flags[i] = s.Available
	}
	c.JSON(http.StatusOK, gin.H{"availability": flags, "slots": slots})
}
