package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tunewave/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupService(t *testing.T, ttl time.Duration) *Service {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))

	return NewService(db, []byte("test-secret-key-for-tests-only"), ttl)
}

func TestRegisterHashesPassword(t *testing.T) {
	svc := setupService(t, time.Hour)

	resp, err := svc.Register(RegisterRequest{
		Email:    "new@example.com",
		Password: "supersecret1",
	})
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.NotEqual(t, "supersecret1", resp.User.PasswordHash)
	assert.True(t, resp.User.IsActive)
	assert.False(t, resp.User.IsAdmin)
}

func TestRegisterDuplicateIsCaseInsensitive(t *testing.T) {
	svc := setupService(t, time.Hour)

	_, err := svc.Register(RegisterRequest{Email: "dupe@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	_, err = svc.Register(RegisterRequest{Email: "DUPE@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestLogin(t *testing.T) {
	svc := setupService(t, time.Hour)

	_, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	resp, err := svc.Login(LoginRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)

	_, err = svc.Login(LoginRequest{Email: "user@example.com", Password: "wrong-password"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(LoginRequest{Email: "missing@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	svc := setupService(t, time.Hour)

	resp, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	user, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, user.ID)
	assert.Equal(t, "user@example.com", user.Email)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	svc := setupService(t, time.Hour)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	// Negative TTL falls back to the default in NewService, so build
	// the expiry directly through a service with a tiny TTL.
	svc := setupService(t, time.Millisecond)

	resp, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	_, err = svc.ValidateToken(resp.Token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsDisabledUser(t *testing.T) {
	svc := setupService(t, time.Hour)

	resp, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err = svc.ValidateToken(resp.Token)
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestLoginDisabledUser(t *testing.T) {
	svc := setupService(t, time.Hour)

	resp, err := svc.Register(RegisterRequest{Email: "user@example.com", Password: "supersecret1"})
	require.NoError(t, err)

	require.NoError(t, svc.db.Model(&models.User{}).
		Where("id = ?", resp.User.ID).
		Update("is_active", false).Error)

	_, err = svc.Login(LoginRequest{Email: "user@example.com", Password: "supersecret1"})
	assert.ErrorIs(t, err, ErrUserDisabled)
}
