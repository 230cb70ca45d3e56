package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunewave/backend/internal/models"
)

func TestRegisterAndLogin(t *testing.T) {
	env := setupTest(t)

	token, user := env.registerUser(t, "listener@example.com")
	assert.NotEmpty(t, token)
	assert.Equal(t, "listener@example.com", user.Email)
	assert.False(t, user.IsAdmin)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "listener@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	env := setupTest(t)

	env.registerUser(t, "dupe@example.com")
	w := env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "dupe@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	// Email uniqueness ignores case.
	w = env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "DUPE@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	env := setupTest(t)

	w := env.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    "short@example.com",
		"password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginWrongPassword(t *testing.T) {
	env := setupTest(t)

	env.registerUser(t, "user@example.com")
	w := env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "user@example.com",
		"password": "wrongpassword",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginDisabledAccount(t *testing.T) {
	env := setupTest(t)

	_, user := env.registerUser(t, "disabled@example.com")
	require.NoError(t, env.db.Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("is_active", false).Error)

	w := env.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    "disabled@example.com",
		"password": "supersecret1",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := setupTest(t)

	w := env.request(t, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = env.request(t, http.MethodGet, "/api/users/me", "not-a-real-token", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGetMe(t *testing.T) {
	env := setupTest(t)

	token, user := env.registerUser(t, "me@example.com")
	w := env.request(t, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, float64(user.ID), body["id"])
	assert.Equal(t, "me@example.com", body["email"])
	// Password hash must never serialize.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestUpdateMe(t *testing.T) {
	env := setupTest(t)

	token, user := env.registerUser(t, "update@example.com")
	w := env.request(t, http.MethodPatch, "/api/users/me", token, gin.H{
		"display_name": "DJ Example",
		"notification_settings": gin.H{
			"weekly_digest": true,
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeJSON(t, w)
	assert.Equal(t, "DJ Example", body["display_name"])

	// Settings must round-trip through the database, not just echo.
	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.NotificationSettings)
	assert.True(t, stored.NotificationSettings.WeeklyDigest)
	assert.False(t, stored.NotificationSettings.EmailOnNewRelease)
}

func TestUpdateMeSettingsOnly(t *testing.T) {
	env := setupTest(t)

	token, user := env.registerUser(t, "settings@example.com")
	w := env.request(t, http.MethodPatch, "/api/users/me", token, gin.H{
		"notification_settings": gin.H{
			"email_on_new_release": true,
			"weekly_digest":        true,
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.User
	require.NoError(t, env.db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.NotificationSettings)
	assert.True(t, stored.NotificationSettings.EmailOnNewRelease)
	assert.True(t, stored.NotificationSettings.WeeklyDigest)
	// Display name untouched by a settings-only update.
	assert.Nil(t, stored.DisplayName)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	env := setupTest(t)

	token, _ := env.registerUser(t, "pleb@example.com")
	w := env.request(t, http.MethodGet, "/api/admin/users", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	adminToken, _ := env.registerAdmin(t, "admin@example.com")
	w = env.request(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
