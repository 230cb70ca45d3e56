package handlers

import (
	"github.com/tunewave/backend/internal/auth"
	"github.com/tunewave/backend/internal/logger"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/recommendations"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	db     *gorm.DB
	auth   *auth.Service
	engine *recommendations.Engine
}

// NewHandlers creates a new handlers instance
func NewHandlers(db *gorm.DB, authService *auth.Service, engine *recommendations.Engine) *Handlers {
	return &Handlers{
		db:     db,
		auth:   authService,
		engine: engine,
	}
}

// recordActivity writes a user activity row. Best-effort: failures are
// logged and never propagate to the request.
func (h *Handlers) recordActivity(userID uint, action string, details map[string]interface{}) {
	activity := models.UserActivity{
		UserID:  userID,
		Action:  action,
		Details: details,
	}
	if err := h.db.Create(&activity).Error; err != nil {
		logger.Log.Warn("failed to record user activity",
			logger.WithUserID(userID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}
