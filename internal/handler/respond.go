package handler

import (
	"errors"
	"log"
	"net/http"

	"culturalstay/internal/models"
	"culturalstay/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// respondError переводит ошибки сервисного слоя в HTTP-ответы:
// 400 — валидация и конфликты состояния, 403 — не участник,
// 404 — нет документа, 500 — всё прочее (текст наружу не уходит).
func respondError(c *gin.Context, err error) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, gin.H{"errors": utils.ParseErrors(err)})
		return
	}

	switch {
	case errors.Is(err, models.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"message": "Not found"})
	case errors.Is(err, models.ErrNotAuthorized):
		c.JSON(http.StatusForbidden, gin.H{"message": "Not authorized"})
	case errors.Is(err, models.ErrValidation),
		errors.Is(err, models.ErrInvalidID),
		errors.Is(err, models.ErrDatesTaken),
		errors.Is(err, models.ErrHostUnavailable),
		errors.Is(err, models.ErrDuplicateReview),
		errors.Is(err, models.ErrDuplicateHost),
		errors.Is(err, models.ErrResponseExists),
		errors.Is(err, models.ErrCancelWindow),
		errors.Is(err, models.ErrReviewLocked),
		errors.Is(err, models.ErrNotCompleted):
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	default:
		log.Printf("Server error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
	}
}

func callerID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.GetString("userID"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return id, true
}

func pathID(c *gin.Context, param string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(param))
	if err != nil {
		respondError(c, models.ErrInvalidID)
		return primitive.NilObjectID, false
	}
	return id, true
}
