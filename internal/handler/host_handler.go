package handler

import (
	"net/http"
	"strconv"

	"culturalstay/internal/models"
	"culturalstay/internal/services"

	"github.com/gin-gonic/gin"
)

type HostHandler struct {
	service *services.HostService
}

func NewHostHandler(service *services.HostService) *HostHandler {
	return &HostHandler{service: service}
}

// Search is public: only approved hosts are returned.
func (h *HostHandler) Search(c *gin.Context) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	q := services.HostSearchQuery{
		Location:   c.Query("location"),
		PriceMin:   c.Query("priceMin"),
		PriceMax:   c.Query("priceMax"),
		Experience: c.Query("experience"),
		Rating:     c.Query("rating"),
		Verified:   c.Query("verified"),
		Superhost:  c.Query("superhost"),
		Page:       page,
		Limit:      limit,
	}

	result, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hosts": result.Hosts, "pagination": result.Pagination})
}

func (h *HostHandler) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	host, err := h.service.GetHost(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, host)
}

func (h *HostHandler) Create(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}

	var host models.Host
	if err := c.ShouldBindJSON(&host); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	if err := h.service.CreateHost(c.Request.Context(), userID, &host); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Host profile created successfully", "host": host})
}

func (h *HostHandler) Update(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var updated models.Host
	if err := c.ShouldBindJSON(&updated); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	host, err := h.service.UpdateHost(c.Request.Context(), id, userID, &updated)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, host)
}

func (h *HostHandler) UpdateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var body struct {
		Status models.HostStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	host, err := h.service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Host status updated successfully", "host": host})
}

func (h *HostHandler) UploadPhotos(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid multipart form"})
		return
	}
	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "No files uploaded"})
		return
	}

	photos, err := h.service.UploadPhotos(c.Request.Context(), id, userID, files)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Photos uploaded successfully", "photos": photos})
}

func (h *HostHandler) AddExperience(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var exp models.Experience
	if err := c.ShouldBindJSON(&exp); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	experiences, err := h.service.AddExperience(c.Request.Context(), id, userID, exp)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Experience added successfully", "experiences": experiences})
}

func (h *HostHandler) UpdateAvailability(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var av models.Availability
	if err := c.ShouldBindJSON(&av); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid input"})
		return
	}

	availability, err := h.service.UpdateAvailability(c.Request.Context(), id, userID, av)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Availability updated successfully", "availability": availability})
}
