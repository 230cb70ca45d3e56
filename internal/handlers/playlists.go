package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/util"
	"gorm.io/gorm"
)

// CreatePlaylistRequest is the payload for creating a playlist
type CreatePlaylistRequest struct {
	Name        string  `json:"name" binding:"required,max=255"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

// CreatePlaylist creates a playlist owned by the authenticated user
// POST /api/playlists
func (h *Handlers) CreatePlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req CreatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid playlist payload", err.Error())
		return
	}

	var existing models.Playlist
	err := h.db.Where("owner_user_id = ? AND name = ?", user.ID, req.Name).
		First(&existing).Error
	if err == nil {
		util.RespondConflict(c, "playlist name")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondInternalError(c, "failed to create playlist")
		return
	}

	playlist := models.Playlist{
		OwnerUserID: user.ID,
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	}
	if err := h.db.Create(&playlist).Error; err != nil {
		util.RespondInternalError(c, "failed to create playlist")
		return
	}

	h.recordActivity(user.ID, "playlist_created", map[string]interface{}{
		"playlist_id": playlist.ID,
	})
	c.JSON(http.StatusCreated, playlist)
}

// ListPlaylists returns the authenticated user's playlists
// GET /api/playlists
func (h *Handlers) ListPlaylists(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var playlists []models.Playlist
	err := h.db.Where("owner_user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&playlists).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list playlists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlists": playlists,
		"count":     len(playlists),
	})
}

// loadPlaylistForRead fetches a playlist the user may view: their own
// or any public one. Responds on failure and returns ok=false.
func (h *Handlers) loadPlaylistForRead(c *gin.Context, userID uint) (*models.Playlist, bool) {
	playlistID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid playlist id")
		return nil, false
	}

	var playlist models.Playlist
	err := h.db.First(&playlist, playlistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "playlist")
		return nil, false
	} else if err != nil {
		util.RespondInternalError(c, "failed to load playlist")
		return nil, false
	}

	if playlist.OwnerUserID != userID && !playlist.IsPublic {
		// Hide private playlists entirely rather than confirm they exist.
		util.RespondNotFound(c, "playlist")
		return nil, false
	}
	return &playlist, true
}

// loadPlaylistForWrite fetches a playlist only if the user owns it
func (h *Handlers) loadPlaylistForWrite(c *gin.Context, userID uint) (*models.Playlist, bool) {
	playlist, ok := h.loadPlaylistForRead(c, userID)
	if !ok {
		return nil, false
	}
	if playlist.OwnerUserID != userID {
		util.RespondForbidden(c, "only the owner can modify a playlist")
		return nil, false
	}
	return playlist, true
}

// GetPlaylist returns a playlist and its tracks in position order
// GET /api/playlists/:id
func (h *Handlers) GetPlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	playlist, ok := h.loadPlaylistForRead(c, user.ID)
	if !ok {
		return
	}

	var entries []models.PlaylistTrack
	err := h.db.Preload("Track").Preload("Track.Artist").
		Where("playlist_id = ?", playlist.ID).
		Order("position ASC, id ASC").
		Find(&entries).Error
	if err != nil {
		util.RespondInternalError(c, "failed to load playlist tracks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"playlist": playlist,
		"tracks":   entries,
	})
}

// UpdatePlaylistRequest is the editable subset of a playlist
type UpdatePlaylistRequest struct {
	Name        *string `json:"name" binding:"omitempty,max=255"`
	Description *string `json:"description"`
	IsPublic    *bool   `json:"is_public"`
}

// UpdatePlaylist updates playlist metadata
// PATCH /api/playlists/:id
func (h *Handlers) UpdatePlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	playlist, ok := h.loadPlaylistForWrite(c, user.ID)
	if !ok {
		return
	}

	var req UpdatePlaylistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid playlist payload", err.Error())
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = req.Description
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if len(updates) == 0 {
		c.JSON(http.StatusOK, playlist)
		return
	}

	if err := h.db.Model(playlist).Updates(updates).Error; err != nil {
		util.RespondInternalError(c, "failed to update playlist")
		return
	}

	c.JSON(http.StatusOK, playlist)
}

// DeletePlaylist removes a playlist and its track links
// DELETE /api/playlists/:id
func (h *Handlers) DeletePlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	playlist, ok := h.loadPlaylistForWrite(c, user.ID)
	if !ok {
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("playlist_id = ?", playlist.ID).
			Delete(&models.PlaylistTrack{}).Error; err != nil {
			return err
		}
		return tx.Delete(playlist).Error
	})
	if err != nil {
		util.RespondInternalError(c, "failed to delete playlist")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

// AddTrackRequest names the track to append to a playlist
type AddTrackRequest struct {
	TrackID uint `json:"track_id" binding:"required"`
}

// AddTrackToPlaylist appends a track at the end of a playlist
// POST /api/playlists/:id/tracks
func (h *Handlers) AddTrackToPlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	playlist, ok := h.loadPlaylistForWrite(c, user.ID)
	if !ok {
		return
	}

	var req AddTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid track payload", err.Error())
		return
	}

	var track models.Track
	err := h.db.First(&track, req.TrackID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "track")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to add track")
		return
	}

	var entry models.PlaylistTrack
	err = h.db.Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ? AND track_id = ?", playlist.ID, track.ID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return gorm.ErrDuplicatedKey
		}

		var maxPosition int
		row := tx.Model(&models.PlaylistTrack{}).
			Where("playlist_id = ?", playlist.ID).
			Select("COALESCE(MAX(position), 0)").
			Row()
		if err := row.Scan(&maxPosition); err != nil {
			return err
		}

		entry = models.PlaylistTrack{
			PlaylistID: playlist.ID,
			TrackID:    track.ID,
			Position:   maxPosition + 1,
		}
		return tx.Create(&entry).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		util.RespondConflict(c, "playlist track")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to add track")
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// RemoveTrackFromPlaylist removes a track from a playlist
// DELETE /api/playlists/:id/tracks/:trackID
func (h *Handlers) RemoveTrackFromPlaylist(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	playlist, ok := h.loadPlaylistForWrite(c, user.ID)
	if !ok {
		return
	}

	trackID, ok := util.ParseUintParam(c, "trackID")
	if !ok {
		util.RespondBadRequest(c, "invalid track id")
		return
	}

	result := h.db.Where("playlist_id = ? AND track_id = ?", playlist.ID, trackID).
		Delete(&models.PlaylistTrack{})
	if result.Error != nil {
		util.RespondInternalError(c, "failed to remove track")
		return
	}
	if result.RowsAffected == 0 {
		util.RespondNotFound(c, "playlist track")
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
