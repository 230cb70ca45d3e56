package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunewave/backend/internal/models"
)

func TestStartAndStopPlayback(t *testing.T) {
	env := setupTest(t)
	token, user := env.registerUser(t, "listener@example.com")

	artist := env.createArtist(t, "Stream Artist")
	track := env.createTrack(t, "Stream Track", artist.ID, nil)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/stream/%d/start", track.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decodeJSON(t, w)
	eventID := uint(body["event_id"].(float64))

	w = env.request(t, http.MethodPost, "/api/stream/stop", token, gin.H{
		"event_id":         eventID,
		"duration_seconds": 142,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var event models.PlaybackEvent
	require.NoError(t, env.db.First(&event, eventID).Error)
	assert.Equal(t, user.ID, event.UserID)
	assert.Equal(t, 142, event.DurationSeconds)
}

func TestStartPlaybackUnknownTrack(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	w := env.request(t, http.MethodPost, "/api/stream/99999/start", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestStopPlaybackOnlyOwnEvents(t *testing.T) {
	env := setupTest(t)
	ownerToken, _ := env.registerUser(t, "owner@example.com")
	otherToken, _ := env.registerUser(t, "other@example.com")

	artist := env.createArtist(t, "Artist")
	track := env.createTrack(t, "Track", artist.ID, nil)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/stream/%d/start", track.ID), ownerToken, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	eventID := uint(decodeJSON(t, w)["event_id"].(float64))

	w = env.request(t, http.MethodPost, "/api/stream/stop", otherToken, gin.H{
		"event_id":         eventID,
		"duration_seconds": 10,
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaybackHistoryNewestFirst(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	artist := env.createArtist(t, "Artist")
	first := env.createTrack(t, "First", artist.ID, nil)
	second := env.createTrack(t, "Second", artist.ID, nil)

	w := env.request(t, http.MethodPost, fmt.Sprintf("/api/stream/%d/start", first.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	w = env.request(t, http.MethodPost, fmt.Sprintf("/api/stream/%d/start", second.ID), token, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = env.request(t, http.MethodGet, "/api/stream/history", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	events := body["events"].([]interface{})
	require.Len(t, events, 2)
	newest := events[0].(map[string]interface{})
	assert.Equal(t, float64(second.ID), newest["track_id"])
}
