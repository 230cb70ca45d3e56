package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/tunewave/backend/internal/logger"
	"github.com/tunewave/backend/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var genres = []string{
	"Rock", "Pop", "Jazz", "Hip-Hop", "Electronic",
	"Classical", "Folk", "Ambient", "Metal", "Soul",
}

// Seeder handles database seeding operations
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	_ = gofakeit.Seed(time.Now().UnixNano())
	return &Seeder{db: db}
}

// SeedDev populates the development database with realistic data:
// listener accounts, a catalog, playlists, and enough playback history
// for the recommendation engine to produce interesting results.
func (s *Seeder) SeedDev() error {
	logger.Log.Info("Creating users...")
	users, err := s.seedUsers(50)
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	logger.Log.Info("Creating catalog...")
	tracks, err := s.seedCatalog(30, 400)
	if err != nil {
		return fmt.Errorf("failed to seed catalog: %w", err)
	}

	logger.Log.Info("Creating playlists...")
	if err := s.seedPlaylists(users, tracks); err != nil {
		return fmt.Errorf("failed to seed playlists: %w", err)
	}

	logger.Log.Info("Creating playback history...")
	if err := s.seedPlaybackHistory(users, tracks); err != nil {
		return fmt.Errorf("failed to seed playback history: %w", err)
	}

	logger.Log.Info("Seeding complete",
		zap.Int("users", len(users)),
		zap.Int("tracks", len(tracks)),
	)
	return nil
}

func (s *Seeder) seedUsers(count int) ([]models.User, error) {
	// One shared hash keeps seeding fast; these are throwaway accounts.
	hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, count)
	for i := 0; i < count; i++ {
		name := gofakeit.Name()
		user := models.User{
			Email:        fmt.Sprintf("listener%d@%s", i, gofakeit.DomainName()),
			PasswordHash: string(hashed),
			DisplayName:  &name,
			IsActive:     true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

func (s *Seeder) seedCatalog(artistCount, trackCount int) ([]models.Track, error) {
	artists := make([]models.Artist, 0, artistCount)
	for i := 0; i < artistCount; i++ {
		bio := gofakeit.Sentence(12)
		artist := models.Artist{
			Name: fmt.Sprintf("%s %s", gofakeit.AdjectiveDescriptive(), gofakeit.NounCollectiveThing()),
			Bio:  &bio,
		}
		if err := s.db.Create(&artist).Error; err != nil {
			return nil, err
		}
		artists = append(artists, artist)
	}

	albums := make([]models.Album, 0, artistCount*2)
	for _, artist := range artists {
		for j := 0; j < 2; j++ {
			year := gofakeit.Number(1990, 2025)
			album := models.Album{
				Title:       gofakeit.BookTitle(),
				ArtistID:    artist.ID,
				ReleaseYear: &year,
			}
			if err := s.db.Create(&album).Error; err != nil {
				return nil, err
			}
			albums = append(albums, album)
		}
	}

	tracks := make([]models.Track, 0, trackCount)
	for i := 0; i < trackCount; i++ {
		album := albums[rand.Intn(len(albums))]
		genre := genres[rand.Intn(len(genres))]
		audioURL := fmt.Sprintf("https://cdn.tunewave.example/audio/%s.mp3", gofakeit.UUID())
		track := models.Track{
			Title:           gofakeit.Song().Name,
			ArtistID:        album.ArtistID,
			AlbumID:         &album.ID,
			Genre:           &genre,
			DurationSeconds: gofakeit.Number(90, 420),
			AudioURL:        &audioURL,
			// Spread creation dates so recency ordering is visible.
			CreatedAt: time.Now().UTC().AddDate(0, 0, -rand.Intn(365)),
		}
		if err := s.db.Create(&track).Error; err != nil {
			return nil, err
		}
		tracks = append(tracks, track)
	}
	return tracks, nil
}

func (s *Seeder) seedPlaylists(users []models.User, tracks []models.Track) error {
	for _, user := range users {
		if rand.Intn(3) == 0 {
			continue
		}
		playlist := models.Playlist{
			OwnerUserID: user.ID,
			Name:        gofakeit.HipsterWord() + " mix",
			IsPublic:    rand.Intn(2) == 0,
		}
		if err := s.db.Create(&playlist).Error; err != nil {
			return err
		}

		seen := map[uint]struct{}{}
		for position := 1; position <= rand.Intn(15)+5; position++ {
			track := tracks[rand.Intn(len(tracks))]
			if _, dup := seen[track.ID]; dup {
				continue
			}
			seen[track.ID] = struct{}{}
			entry := models.PlaylistTrack{
				PlaylistID: playlist.ID,
				TrackID:    track.ID,
				Position:   position,
			}
			if err := s.db.Create(&entry).Error; err != nil {
				return err
			}
		}
	}
	return nil
}

// seedPlaybackHistory gives each user a handful of favorite tracks
// played repeatedly plus some random listens, mostly inside the last
// month so the seed extraction window picks them up.
func (s *Seeder) seedPlaybackHistory(users []models.User, tracks []models.Track) error {
	for _, user := range users {
		favorites := make([]models.Track, 0, 5)
		for i := 0; i < 5; i++ {
			favorites = append(favorites, tracks[rand.Intn(len(tracks))])
		}

		events := make([]models.PlaybackEvent, 0, 80)
		for i := 0; i < rand.Intn(40)+20; i++ {
			track := favorites[rand.Intn(len(favorites))]
			if rand.Intn(4) == 0 {
				track = tracks[rand.Intn(len(tracks))]
			}
			playedAt := time.Now().UTC().Add(-time.Duration(rand.Intn(28*24)) * time.Hour)
			if rand.Intn(10) == 0 {
				// A few stale listens outside the window.
				playedAt = playedAt.AddDate(0, -3, 0)
			}
			events = append(events, models.PlaybackEvent{
				UserID:          user.ID,
				TrackID:         track.ID,
				PlayedAt:        playedAt,
				DurationSeconds: gofakeit.Number(10, track.DurationSeconds),
			})
		}
		if err := s.db.CreateInBatches(events, 100).Error; err != nil {
			return err
		}
	}
	return nil
}
