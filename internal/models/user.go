package models

import (
	"time"
)

// NotificationSettings stores per-user notification preferences
type NotificationSettings struct {
	EmailOnNewRelease   bool `json:"email_on_new_release"`
	EmailOnPlaylistPush bool `json:"email_on_playlist_push"`
	WeeklyDigest        bool `json:"weekly_digest"`
}

// User represents a platform listener account
type User struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Email        string  `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string  `gorm:"size:255;not null" json:"-"`
	DisplayName  *string `gorm:"size:255" json:"display_name"`
	IsActive     bool    `gorm:"default:true" json:"is_active"`
	IsAdmin      bool    `gorm:"default:false" json:"is_admin"`

	NotificationSettings *NotificationSettings `gorm:"type:jsonb;serializer:json" json:"notification_settings"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Playlists []Playlist      `gorm:"foreignKey:OwnerUserID" json:"-"`
	Playback  []PlaybackEvent `gorm:"foreignKey:UserID" json:"-"`
}
