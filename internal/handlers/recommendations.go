package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/logger"
	"github.com/tunewave/backend/internal/recommendations"
	"github.com/tunewave/backend/internal/util"
	"go.uber.org/zap"
)

// GetRecommendations returns personalized tracks for the caller.
// refresh=true forces a recompute even when the cached list is fresh.
// GET /api/recommendations?limit=&refresh=
func (h *Handlers) GetRecommendations(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	limit, _ := util.ParseLimitOffset(c, 25, 100)
	forceRefresh := util.ParseBoolQuery(c, "refresh")

	tracks, err := h.engine.Compute(c.Request.Context(), user.ID, limit, forceRefresh)
	if err != nil {
		logger.Log.Error("recommendation compute failed",
			logger.WithUserID(user.ID),
			zap.String("cache_key", recommendations.CacheKeyForUser(user.ID)),
			zap.Error(err),
		)
		util.RespondInternalError(c, "failed to compute recommendations")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"recommendations": tracks,
		"count":           len(tracks),
		"refreshed":       forceRefresh,
	})
}
