package database

import (
	"fmt"
	"time"

	"github.com/tunewave/backend/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB holds the database connection
var DB *gorm.DB

// Initialize creates and configures the database connection
func Initialize(databaseURL, environment string) error {
	// Configure GORM logger
	gormLogger := logger.Default
	if environment == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{
		Logger: gormLogger,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Configure connection pool
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	DB = db
	return nil
}

// Migrate runs auto-migration for all models
func Migrate() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	err := DB.AutoMigrate(
		&models.User{},
		&models.Artist{},
		&models.Album{},
		&models.Track{},
		&models.Playlist{},
		&models.PlaylistTrack{},
		&models.PlaybackEvent{},
		&models.UserActivity{},
		&models.AdminAuditLog{},
		&models.RecommendationCache{},
	)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	if err := createIndexes(); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}

// createIndexes creates performance indexes
func createIndexes() error {
	// User indexes
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_users_email_lower ON users (LOWER(email))")

	// Catalog indexes for search and seeded-candidate queries
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_tracks_genre_lower ON tracks (LOWER(genre)) WHERE genre IS NOT NULL")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_tracks_artist_created ON tracks (artist_id, created_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_tracks_created ON tracks (created_at DESC)")

	// Playback aggregation indexes (seed extraction, popularity)
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_playback_user_played ON playback_events (user_id, played_at DESC)")
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_playback_track ON playback_events (track_id)")

	// Playlist indexes
	DB.Exec("CREATE INDEX IF NOT EXISTS idx_playlist_tracks_position ON playlist_tracks (playlist_id, position)")

	return nil
}

// Close closes the database connection
func Close() error {
	if DB == nil {
		return nil
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

// Health checks database connectivity
func Health() error {
	if DB == nil {
		return fmt.Errorf("database not initialized")
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}

	return sqlDB.Ping()
}
