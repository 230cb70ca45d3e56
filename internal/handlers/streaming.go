package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/util"
	"gorm.io/gorm"
)

// StartPlayback records the start of a listen. The resulting playback
// event immediately feeds the recommendation seed queries.
// POST /api/stream/:id/start
func (h *Handlers) StartPlayback(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	trackID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid track id")
		return
	}

	var track models.Track
	err := h.db.First(&track, trackID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "track")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to start playback")
		return
	}

	event := models.PlaybackEvent{
		UserID:   user.ID,
		TrackID:  track.ID,
		PlayedAt: time.Now().UTC(),
	}
	if err := h.db.Create(&event).Error; err != nil {
		util.RespondInternalError(c, "failed to record playback")
		return
	}

	h.recordActivity(user.ID, "playback_started", map[string]interface{}{
		"track_id": track.ID,
	})

	c.JSON(http.StatusCreated, gin.H{
		"event_id":  event.ID,
		"track_id":  track.ID,
		"played_at": event.PlayedAt,
		"audio_url": track.AudioURL,
	})
}

// StopPlaybackRequest reports how long the listen lasted
type StopPlaybackRequest struct {
	EventID         uint `json:"event_id" binding:"required"`
	DurationSeconds int  `json:"duration_seconds" binding:"min=0"`
}

// StopPlayback closes out a playback event with its listened duration
// POST /api/stream/stop
func (h *Handlers) StopPlayback(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req StopPlaybackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid playback payload", err.Error())
		return
	}

	result := h.db.Model(&models.PlaybackEvent{}).
		Where("id = ? AND user_id = ?", req.EventID, user.ID).
		Update("duration_seconds", req.DurationSeconds)
	if result.Error != nil {
		util.RespondInternalError(c, "failed to update playback")
		return
	}
	if result.RowsAffected == 0 {
		util.RespondNotFound(c, "playback event")
		return
	}

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// GetPlaybackHistory returns the user's recent listens, newest first
// GET /api/stream/history?limit=&offset=
func (h *Handlers) GetPlaybackHistory(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	limit, offset := util.ParseLimitOffset(c, 50, 200)

	var events []models.PlaybackEvent
	err := h.db.Preload("Track").Preload("Track.Artist").
		Where("user_id = ?", userID).
		Order("played_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&events).Error
	if err != nil {
		util.RespondInternalError(c, "failed to load playback history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events": events,
		"count":  len(events),
	})
}
