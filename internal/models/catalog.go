package models

import (
	"time"
)

// Artist represents a music artist
type Artist struct {
	ID   uint    `gorm:"primaryKey" json:"id"`
	Name string  `gorm:"uniqueIndex;size:255;not null" json:"name"`
	Bio  *string `gorm:"type:text" json:"bio"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Albums []Album `gorm:"foreignKey:ArtistID" json:"-"`
	Tracks []Track `gorm:"foreignKey:ArtistID" json:"-"`
}

// Album contains one or more tracks and belongs to an artist
type Album struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Title       string  `gorm:"size:255;not null;index;uniqueIndex:idx_albums_title_artist" json:"title"`
	ArtistID    uint    `gorm:"not null;uniqueIndex:idx_albums_title_artist" json:"artist_id"`
	ReleaseYear *int    `json:"release_year"`
	CoverImage  *string `gorm:"size:1024" json:"cover_image"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Artist Artist  `gorm:"foreignKey:ArtistID" json:"-"`
	Tracks []Track `gorm:"foreignKey:AlbumID" json:"-"`
}

// Track is a song belonging to an artist and optionally an album.
// Existence in this table is authoritative: recommendation results are
// always re-checked against it before being returned.
type Track struct {
	ID              uint    `gorm:"primaryKey" json:"id"`
	Title           string  `gorm:"size:255;not null;index" json:"title"`
	ArtistID        uint    `gorm:"not null;index" json:"artist_id"`
	AlbumID         *uint   `gorm:"index" json:"album_id"`
	Genre           *string `gorm:"size:100;index" json:"genre"`
	DurationSeconds int     `gorm:"not null" json:"duration_seconds"`
	AudioURL        *string `gorm:"size:2048" json:"audio_url"`

	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Artist Artist `gorm:"foreignKey:ArtistID" json:"-"`
	Album  *Album `gorm:"foreignKey:AlbumID" json:"-"`
}
