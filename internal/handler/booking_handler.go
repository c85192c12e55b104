package handler

import (
	"net/http"

	"culturalstay/internal/models"
	"culturalstay/internal/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	service *services.BookingService
}

func NewBookingHandler(service *services.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) List(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	q := services.BookingListQuery{
		Status: c.Query("status"),
		Type:   c.Query("type"),
	}

	bookings, err := h.service.ListBookings(c.Request.Context(), userID, q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

func (h *BookingHandler) GetByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetBooking(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (h *BookingHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.CreateBookingInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	booking, err := h.service.CreateBooking(c.Request.Context(), userID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, userID, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking status updated successfully", "booking": booking})
}

func (h *BookingHandler) Cancel(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Reason string `json:"reason"`
	}
	_ = c.ShouldBindJSON(&body) // reason опционален

	booking, err := h.service.CancelBooking(c.Request.Context(), id, userID, body.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled successfully", "booking": booking})
}

func (h *BookingHandler) AddMessage(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Message string `json:"message"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	communication, err := h.service.AddMessage(c.Request.Context(), id, userID, body.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Message added successfully", "communication": communication})
}
