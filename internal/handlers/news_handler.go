package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/models"
)

type AddNewsRequest struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	Date   string `json:"date"`
	URL    string `json:"url"`
}

func (h *Handler) AddNews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddNewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	item := models.NewsItem{
		ID:      primitive.NewObjectID(),
		Title:   req.Title,
		Source:  req.Source,
		Date:    req.Date,
		URL:     req.URL,
		AddedAt: h.timestamp(),
	}
	if err := h.DB.AddNews(c.Request.Context(), userID, item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "News added to history", "news": item})
}

func (h *Handler) GetNews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.DB.News(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newestFirst(items, func(n models.NewsItem) time.Time { return n.AddedAt }))
}

func (h *Handler) DeleteNews(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	itemID, ok := entryID(c)
	if !ok {
		return
	}

	removed, err := h.DB.RemoveNews(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "News item deleted successfully", "removed": removed})
}
