package models

import (
	"time"
)

// Playlist is a user-owned, ordered collection of tracks
type Playlist struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	OwnerUserID uint    `gorm:"not null;index;uniqueIndex:idx_playlists_owner_name" json:"owner_user_id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex:idx_playlists_owner_name" json:"name"`
	Description *string `gorm:"type:text" json:"description"`
	CoverImage  *string `gorm:"size:1024" json:"cover_image"`
	IsPublic    bool    `gorm:"default:false;index" json:"is_public"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Owner  User            `gorm:"foreignKey:OwnerUserID" json:"-"`
	Tracks []PlaylistTrack `gorm:"foreignKey:PlaylistID" json:"-"`
}

// PlaylistTrack links a track into a playlist at a position
type PlaylistTrack struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	PlaylistID uint `gorm:"not null;index;uniqueIndex:idx_playlist_track" json:"playlist_id"`
	TrackID    uint `gorm:"not null;index;uniqueIndex:idx_playlist_track" json:"track_id"`
	Position   int  `gorm:"not null;default:0" json:"position"`

	AddedAt time.Time `gorm:"autoCreateTime" json:"added_at"`

	Playlist Playlist `gorm:"foreignKey:PlaylistID" json:"-"`
	Track    Track    `gorm:"foreignKey:TrackID" json:"-"`
}
