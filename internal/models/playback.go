package models

import (
	"time"
)

// PlaybackEvent records a single playback start or stop for a user and
// track. The recommendation engine only reads these rows in aggregate.
type PlaybackEvent struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	UserID          uint      `gorm:"not null;index:idx_playback_user_played" json:"user_id"`
	TrackID         uint      `gorm:"not null;index" json:"track_id"`
	PlayedAt        time.Time `gorm:"not null;index:idx_playback_user_played" json:"played_at"`
	DurationSeconds int       `gorm:"not null;default:0" json:"duration_seconds"`

	User  User  `gorm:"foreignKey:UserID" json:"-"`
	Track Track `gorm:"foreignKey:TrackID" json:"-"`
}
