package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/harentsoaR/health-record-api/internal/models"
)

// ProfileImageField is the multipart field carrying the profile picture.
const ProfileImageField = "profileImage"

// GetUserProfile returns the authenticated user's document without the password.
func (h *Handler) GetUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.DB.FindByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateUserProfile applies only the submitted fields, plus an optional image.
func (h *Handler) UpdateUserProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var update models.ProfileUpdate
	if c.ContentType() == binding.MIMEJSON {
		if err := c.ShouldBindJSON(&update); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		update.ProfileImg = nil
	} else {
		update = profileUpdateFromForm(c)
	}

	for name, field := range map[string]*string{"fullName": update.FullName, "email": update.Email} {
		if field != nil && strings.TrimSpace(*field) == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": name + " cannot be empty"})
			return
		}
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		update.Email = &email
	}

	ctx := c.Request.Context()
	if c.ContentType() == binding.MIMEMultipartPOSTForm {
		if file, err := c.FormFile(ProfileImageField); err == nil {
			ref, err := h.Images.SaveProfileImage(ctx, file)
			if err != nil {
				respondError(c, err)
				return
			}
			update.ProfileImg = &ref
		}
	}

	if update.IsEmpty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	user, err := h.DB.UpdateProfile(ctx, userID, update)
	if err != nil {
		if update.ProfileImg != nil {
			h.discardImage(ctx, *update.ProfileImg)
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// profileUpdateFromForm marks a field present only when its key was submitted.
func profileUpdateFromForm(c *gin.Context) models.ProfileUpdate {
	var update models.ProfileUpdate
	for _, name := range models.ProfileFields {
		if value, ok := c.GetPostForm(name); ok {
			*update.Field(name) = &value
		}
	}
	return update
}

func (h *Handler) discardImage(ctx context.Context, ref string) {
	if err := h.Images.RemoveProfileImage(context.WithoutCancel(ctx), ref); err != nil {
		log.Printf("UpdateUserProfile: failed to remove orphaned image %s: %v", ref, err)
	}
}
