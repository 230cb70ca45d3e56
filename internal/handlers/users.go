package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/util"
)

// GetMe returns the authenticated user's profile
// GET /api/users/me
func (h *Handlers) GetMe(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMeRequest is the editable subset of a user profile
type UpdateMeRequest struct {
	DisplayName          *string                      `json:"display_name" binding:"omitempty,max=255"`
	NotificationSettings *models.NotificationSettings `json:"notification_settings"`
}

// UpdateMe updates the authenticated user's profile
// PATCH /api/users/me
func (h *Handlers) UpdateMe(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid profile payload", err.Error())
		return
	}

	// Struct updates with an explicit column list so the settings
	// field goes through its JSON serializer.
	var columns []string
	if req.DisplayName != nil {
		user.DisplayName = req.DisplayName
		columns = append(columns, "display_name")
	}
	if req.NotificationSettings != nil {
		user.NotificationSettings = req.NotificationSettings
		columns = append(columns, "notification_settings")
	}
	if len(columns) == 0 {
		c.JSON(http.StatusOK, user)
		return
	}

	if err := h.db.Model(user).Select(columns).Updates(user).Error; err != nil {
		util.RespondInternalError(c, "failed to update profile")
		return
	}

	c.JSON(http.StatusOK, user)
}
