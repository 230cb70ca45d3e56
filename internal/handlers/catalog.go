package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/util"
	"gorm.io/gorm"
)

// SearchTracks lists catalog tracks with optional filters
// GET /api/tracks?q=&genre=&artist_id=&limit=&offset=
func (h *Handlers) SearchTracks(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 25, 100)

	query := h.db.Model(&models.Track{}).Preload("Artist")

	if q := c.Query("q"); q != "" {
		query = query.Where("LOWER(title) LIKE LOWER(?)", "%"+q+"%")
	}
	if genre := c.Query("genre"); genre != "" {
		query = query.Where("LOWER(genre) = LOWER(?)", genre)
	}
	if rawArtist := c.Query("artist_id"); rawArtist != "" {
		artistID, err := strconv.ParseUint(rawArtist, 10, 32)
		if err != nil {
			util.RespondBadRequest(c, "artist_id must be a positive integer")
			return
		}
		query = query.Where("artist_id = ?", uint(artistID))
	}

	var tracks []models.Track
	err := query.Order("created_at DESC, id DESC").
		Limit(limit).Offset(offset).
		Find(&tracks).Error
	if err != nil {
		util.RespondInternalError(c, "failed to search tracks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tracks": tracks,
		"count":  len(tracks),
		"limit":  limit,
		"offset": offset,
	})
}

// GetTrack returns a single track with its artist and album
// GET /api/tracks/:id
func (h *Handlers) GetTrack(c *gin.Context) {
	trackID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid track id")
		return
	}

	var track models.Track
	err := h.db.Preload("Artist").Preload("Album").First(&track, trackID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "track")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to load track")
		return
	}

	c.JSON(http.StatusOK, track)
}

// ListArtists lists artists alphabetically
// GET /api/artists?limit=&offset=
func (h *Handlers) ListArtists(c *gin.Context) {
	limit, offset := util.ParseLimitOffset(c, 50, 200)

	var artists []models.Artist
	err := h.db.Order("name ASC").Limit(limit).Offset(offset).Find(&artists).Error
	if err != nil {
		util.RespondInternalError(c, "failed to list artists")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artists": artists,
		"count":   len(artists),
	})
}

// GetArtist returns an artist with their tracks, newest first
// GET /api/artists/:id
func (h *Handlers) GetArtist(c *gin.Context) {
	artistID, ok := util.ParseUintParam(c, "id")
	if !ok {
		util.RespondBadRequest(c, "invalid artist id")
		return
	}

	var artist models.Artist
	err := h.db.First(&artist, artistID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondNotFound(c, "artist")
		return
	} else if err != nil {
		util.RespondInternalError(c, "failed to load artist")
		return
	}

	var tracks []models.Track
	err = h.db.Where("artist_id = ?", artistID).
		Order("created_at DESC, id DESC").
		Find(&tracks).Error
	if err != nil {
		util.RespondInternalError(c, "failed to load artist tracks")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"artist": artist,
		"tracks": tracks,
	})
}
