package handlers

import (
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/health-record-api/internal/models"
)

type AddAppointmentRequest struct {
	Doctor string `json:"doctor"`
	Type   string `json:"type"`
	Date   string `json:"date"`
	Status string `json:"status"`
}

// --- ADD APPOINTMENT (with optional SMS confirmation) ---
func (h *Handler) AddAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req AddAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	status := strings.TrimSpace(req.Status)
	if status == "" {
		status = models.DefaultAppointmentStatus
	}
	apt := models.Appointment{
		ID:      primitive.NewObjectID(),
		Doctor:  req.Doctor,
		Type:    req.Type,
		Date:    req.Date,
		Status:  status,
		AddedAt: h.timestamp(),
	}

	ctx := c.Request.Context()
	if err := h.DB.AddAppointment(ctx, userID, apt); err != nil {
		respondError(c, err)
		return
	}

	if h.NotificationSvc != nil {
		user, err := h.DB.FindByID(ctx, userID)
		if err != nil {
			log.Printf("AddAppointment: skipping SMS, could not load user %s: %v", userID.Hex(), err)
		} else {
			h.NotificationSvc.SendAppointmentConfirmationSMS(&user, &apt)
		}
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Appointment added successfully", "appointment": apt})
}

func (h *Handler) GetAppointments(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	appointments, err := h.DB.Appointments(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newestFirst(appointments, func(a models.Appointment) time.Time { return a.AddedAt }))
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	aptID, ok := entryID(c)
	if !ok {
		return
	}

	removed, err := h.DB.RemoveAppointment(c.Request.Context(), userID, aptID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Appointment deleted successfully", "removed": removed})
}
