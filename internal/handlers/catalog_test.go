package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchTracksByTitle(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	artist := env.createArtist(t, "Artist")
	env.createTrack(t, "Summer Nights", artist.ID, nil)
	env.createTrack(t, "Winter Days", artist.ID, nil)

	w := env.request(t, http.MethodGet, "/api/tracks?q=summer", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	assert.Equal(t, float64(1), body["count"])
	assert.Contains(t, w.Body.String(), "Summer Nights")
}

func TestSearchTracksByGenre(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	artist := env.createArtist(t, "Artist")
	jazz := "Jazz"
	rock := "Rock"
	env.createTrack(t, "Jazz Tune", artist.ID, &jazz)
	env.createTrack(t, "Rock Tune", artist.ID, &rock)

	// Genre filter ignores case.
	w := env.request(t, http.MethodGet, "/api/tracks?genre=jazz", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jazz Tune")
	assert.NotContains(t, w.Body.String(), "Rock Tune")
}

func TestGetTrackNotFound(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	w := env.request(t, http.MethodGet, "/api/tracks/12345", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetArtistWithTracks(t *testing.T) {
	env := setupTest(t)
	token, _ := env.registerUser(t, "listener@example.com")

	artist := env.createArtist(t, "Catalog Artist")
	env.createTrack(t, "One", artist.ID, nil)
	env.createTrack(t, "Two", artist.ID, nil)

	w := env.request(t, http.MethodGet, fmt.Sprintf("/api/artists/%d", artist.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeJSON(t, w)
	tracks := body["tracks"].([]interface{})
	assert.Len(t, tracks, 2)
}
