package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/models"
)

type SavePageRequest struct {
	Title           string `json:"title"`
	InformationType string `json:"informationType"`
	PageData        bson.M `json:"pageData"`
}

// SavePage bookmarks a page. A page whose pageData.url is already saved is rejected.
func (h *Handler) SavePage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req SavePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.PageData == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "pageData is required"})
		return
	}

	page := models.SavedPage{
		ID:              primitive.NewObjectID(),
		Title:           req.Title,
		InformationType: req.InformationType,
		Content:         req.PageData,
		SavedAt:         h.timestamp(),
	}
	if err := h.DB.AddSavedPage(c.Request.Context(), userID, page); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Page saved successfully", "page": page})
}

func (h *Handler) GetSavedPages(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	pages, err := h.DB.SavedPages(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newestFirst(pages, func(p models.SavedPage) time.Time { return p.SavedAt }))
}

// DeleteSavedPage is idempotent; "removed" tells whether anything matched.
func (h *Handler) DeleteSavedPage(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	pageID, ok := entryID(c)
	if !ok {
		return
	}

	removed, err := h.DB.RemoveSavedPage(c.Request.Context(), userID, pageID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Saved page deleted successfully", "removed": removed})
}
