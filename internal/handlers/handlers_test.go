package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/tunewave/backend/internal/auth"
	"github.com/tunewave/backend/internal/config"
	"github.com/tunewave/backend/internal/models"
	"github.com/tunewave/backend/internal/recommendations"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
	h      *Handlers
}

func setupTest(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Album{},
		&models.Track{},
		&models.Playlist{},
		&models.PlaylistTrack{},
		&models.PlaybackEvent{},
		&models.RecommendationCache{},
		&models.UserActivity{},
		&models.AdminAuditLog{},
	)
	require.NoError(t, err)

	authService := auth.NewService(db, []byte("test-secret-key-for-tests-only"), time.Hour)
	engine := recommendations.NewEngine(db, config.DefaultRecommendationConfig())
	h := NewHandlers(db, authService, engine)

	router := gin.New()
	api := router.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		protected := api.Group("")
		protected.Use(h.AuthMiddleware())
		{
			protected.GET("/users/me", h.GetMe)
			protected.PATCH("/users/me", h.UpdateMe)

			protected.GET("/tracks", h.SearchTracks)
			protected.GET("/tracks/:id", h.GetTrack)
			protected.GET("/artists", h.ListArtists)
			protected.GET("/artists/:id", h.GetArtist)

			protected.POST("/playlists", h.CreatePlaylist)
			protected.GET("/playlists", h.ListPlaylists)
			protected.GET("/playlists/:id", h.GetPlaylist)
			protected.PATCH("/playlists/:id", h.UpdatePlaylist)
			protected.DELETE("/playlists/:id", h.DeletePlaylist)
			protected.POST("/playlists/:id/tracks", h.AddTrackToPlaylist)
			protected.DELETE("/playlists/:id/tracks/:trackID", h.RemoveTrackFromPlaylist)

			protected.POST("/stream/:id/start", h.StartPlayback)
			protected.POST("/stream/stop", h.StopPlayback)
			protected.GET("/stream/history", h.GetPlaybackHistory)

			protected.GET("/recommendations", h.GetRecommendations)

			admin := protected.Group("/admin")
			admin.Use(h.AdminMiddleware())
			{
				admin.GET("/users", h.AdminListUsers)
				admin.PATCH("/users/:id/active", h.AdminSetUserActive)
				admin.POST("/artists", h.AdminCreateArtist)
				admin.POST("/tracks", h.AdminCreateTrack)
				admin.DELETE("/tracks/:id", h.AdminDeleteTrack)
				admin.GET("/audit-logs", h.AdminListAuditLogs)
			}
		}
	}

	return &testEnv{router: router, db: db, h: h}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// registerUser creates an account through the API and returns its token
func (e *testEnv) registerUser(t *testing.T, email string) (string, models.User) {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": "supersecret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp auth.AuthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token, resp.User
}

// registerAdmin creates an account and promotes it directly in the DB
func (e *testEnv) registerAdmin(t *testing.T, email string) (string, models.User) {
	t.Helper()

	_, user := e.registerUser(t, email)
	require.NoError(t, e.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_admin", true).Error)

	// Re-issue the token so claims carry the admin flag.
	require.NoError(t, e.db.First(&user, user.ID).Error)
	resp, err := e.h.auth.GenerateTokenForUser(&user)
	require.NoError(t, err)
	return resp.Token, user
}

func (e *testEnv) createArtist(t *testing.T, name string) models.Artist {
	t.Helper()
	artist := models.Artist{Name: name}
	require.NoError(t, e.db.Create(&artist).Error)
	return artist
}

func (e *testEnv) createTrack(t *testing.T, title string, artistID uint, genre *string) models.Track {
	t.Helper()
	track := models.Track{
		Title:           title,
		ArtistID:        artistID,
		Genre:           genre,
		DurationSeconds: 200,
	}
	require.NoError(t, e.db.Create(&track).Error)
	return track
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}
