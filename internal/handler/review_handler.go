package handler

import (
	"net/http"
	"strconv"

	"culturalstay/internal/services"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	service *services.ReviewService
}

func NewReviewHandler(service *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{service: service}
}

func (h *ReviewHandler) GetHostReviews(c *gin.Context) {
	hostUserID, ok := pathID(c, "hostId")
	if !ok {
		return
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	result, err := h.service.GetHostReviews(c.Request.Context(), hostUserID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) GetUserReviews(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	result, err := h.service.GetUserReviews(c.Request.Context(), userID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var in services.CreateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	review, err := h.service.CreateReview(c.Request.Context(), userID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Review created successfully", "review": review})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var in services.UpdateReviewInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	review, err := h.service.UpdateReview(c.Request.Context(), id, userID, &in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Review updated successfully", "review": review})
}

func (h *ReviewHandler) AddResponse(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Comment string `json:"comment" binding:"required,min=10,max=500"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	resp, err := h.service.AddResponse(c.Request.Context(), id, userID, body.Comment)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Response added successfully", "response": resp})
}

func (h *ReviewHandler) MarkHelpful(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	helpful, added, err := h.service.MarkHelpful(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	message := "Review marked as helpful"
	if !added {
		message = "Helpful mark removed"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "helpful": helpful})
}
