package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/middleware"
	"github.com/harentsoaR/health-record-api/internal/storage"
	"github.com/harentsoaR/health-record-api/internal/store"
)

// respondError maps a domain error to one JSON response. Anything unknown is
// logged with the request id and reported as a generic 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, store.ErrDuplicateEmail):
		c.JSON(http.StatusBadRequest, gin.H{"error": "User already exists"})
	case errors.Is(err, store.ErrDuplicateEntry):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Page already saved"})
	case errors.Is(err, storage.ErrNotImage):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile image must be an image file"})
	case errors.Is(err, storage.ErrTooLarge):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Profile image is too large"})
	default:
		log.Printf("[%s] %s %s: %v", c.GetString(middleware.RequestIDKey), c.Request.Method, c.FullPath(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// currentUserID reads the id set by AuthMiddleware.
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	userID, err := primitive.ObjectIDFromHex(c.GetString(middleware.UserIDKey))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid token"})
		return primitive.NilObjectID, false
	}
	return userID, true
}

// entryID parses the :id path parameter of a delete route.
func entryID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return primitive.NilObjectID, false
	}
	return id, true
}
