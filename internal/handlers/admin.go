package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/logger"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/util"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// auditAdminAction writes an audit log row. Best-effort: failures are
// logged and never fail the request.
func (h *Handlers) auditAdminAction(adminID uint, action, targetType, targetID string, details map[string]interface{}) {
	entry := models.AdminAuditLog{
		AdminUserID: &adminID,
		Action:      action,
		TargetType:  &targetType,
		TargetID:    &targetID,
		Details:     details,
	}
	if err := h.db.Create(&entry).Error; err != nil {
		logger.Log.Warn("failed to write admin audit log",
			logger.WithUserID(adminID),
			zap.String("action", action),
			zap.Error(err),
		)
	}
}

// AdminListUsers lists all accounts
// GET /api/admin/users?limit=&offset=
func (h *Handlers) AdminListUsers(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)

	var users []models.User
	err := h.db.Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list users")
		return
	}

	var total int64
	if err := h.db.Model(&models.User{}).Count(&total).Error; err != nil {
		util.RespondInternalError(c, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": users,
		"count": len(users),
		"total": total,
	})
}

// AdminSetUserActiveRequest toggles an account on or off
type AdminSetUserActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}

// AdminSetUserActive enables or disables an account
// PATCH /api/admin/users/:id/active
func (h *Handlers) AdminSetUserActive(c *gin.Context) {
	admin, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	userID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid user id")
		return
	}

	var req AdminSetUserActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid payload", err.Error())
		return
	}

	result := h.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("is_active", *req.IsActive)
	if result.Error != nil {
		util.RespondInternalError(c, "failed to update user")
		return
	}
	if result.RowsAffected == 0 {
		util.RespondNotFound(c, "user")
		return
	}

	h.auditAdminAction(admin.ID, "user_set_active", "user",
		strconv.FormatUint(uint64(userID), 10),
		map[string]interface{}{"is_active": *req.IsActive})

	c.JSON(http.StatusOK, gin.H{"updated": true})
}

// CreateArtistRequest is the admin payload for a new artist
type CreateArtistRequest struct {
	Name string  `json:"name" binding:"required,max=255"`
	Bio  *string `json:"bio"`
}

// AdminCreateArtist adds an artist to the catalog
// POST /api/admin/artists
func (h *Handlers) AdminCreateArtist(c *gin.Context) {
	admin, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req CreateArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid artist payload", err.Error())
		return
	}

	artist := models.Artist{Name: req.Name, Bio: req.Bio}
	if err := h.db.Create(&artist).Error; err != nil {
		util.RespondConflict(c, "artist")
		return
	}

	h.auditAdminAction(admin.ID, "artist_created", "artist",
		strconv.FormatUint(uint64(artist.ID), 10), nil)

	c.JSON(http.StatusCreated, artist)
}

// CreateTrackRequest is the admin payload for a new track
type CreateTrackRequest struct {
	Title           string  `json:"title" binding:"required,max=255"`
	ArtistID        uint    `json:"artist_id" binding:"required"`
	AlbumID         *uint   `json:"album_id"`
	Genre           *string `json:"genre" binding:"omitempty,max=100"`
	DurationSeconds int     `json:"duration_seconds" binding:"required,min=1"`
	AudioURL        *string `json:"audio_url" binding:"omitempty,max=2048"`
}

// AdminCreateTrack adds a track to the catalog
// POST /api/admin/tracks
func (h *Handlers) AdminCreateTrack(c *gin.Context) {
	admin, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req CreateTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid track payload", err.Error())
		return
	}

	var artist models.Artist
	err := h.db.First(&artist, req.ArtistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "artist")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to create track")
		return
	}

	track := models.Track{
		Title:           req.Title,
		ArtistID:        req.ArtistID,
		AlbumID:         req.AlbumID,
		Genre:           req.Genre,
		DurationSeconds: req.DurationSeconds,
		AudioURL:        req.AudioURL,
	}
	if err := h.db.Create(&track).Error; err != nil {
		util.RespondInternalError(c, "failed to create track")
		return
	}

	h.auditAdminAction(admin.ID, "track_created", "track",
		strconv.FormatUint(uint64(track.ID), 10),
		map[string]interface{}{"artist_id": req.ArtistID})

	c.JSON(http.StatusCreated, track)
}

// AdminDeleteTrack removes a track from the catalog. Cached
// recommendation rows referencing it are filtered out at read time.
// DELETE /api/admin/tracks/:id
func (h *Handlers) AdminDeleteTrack(c *gin.Context) {
	admin, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	trackID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid track id")
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("track_id = ?", trackID).
			Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&models.Track{}, trackID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "track")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to delete track")
		return
	}

	h.auditAdminAction(admin.ID, "track_deleted", "track",
		strconv.FormatUint(uint64(trackID), 10), nil)

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AdminListAuditLogs returns recent admin actions, newest first
// GET /api/admin/audit-logs?limit=&offset=
func (h *Handlers) AdminListAuditLogs(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)

	var logs []models.AdminAuditLog
	err := h.db.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&logs).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list audit logs")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":  logs,
		"count": len(logs),
	})
}
