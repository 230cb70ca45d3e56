package recommendations

import (
	"context"
	"fmt"
	"time"

	"github.com/tunewave/backend/internal/models"
)

// extractSeeds derives the user's taste profile from recent playback:
// the most-played artist ids and genres inside the history window,
// ranked by play count with a stable secondary order so repeated runs
// over identical history return identical seeds. Tracks with no genre
// contribute to artist counts but never to genre counts.
func (e *Engine) extractSeeds(ctx context.Context, userID uint) (artistIDs []uint, genres []string, err error) {
	since := time.Now().UTC().AddDate(0, 0, -e.cfg.RecentWindowDays)

	var artistRows []struct {
		ArtistID uint
		Plays    int64
	}
	err = e.db.WithContext(ctx).
		Model(&models.PlaybackEvent{}).
		Select("tracks.artist_id AS artist_id, COUNT(playback_events.id) AS plays").
		Joins("JOIN tracks ON tracks.id = playback_events.track_id").
		Where("playback_events.user_id = ? AND playback_events.played_at >= ?", userID, since).
		Group("tracks.artist_id").
		Order("plays DESC, tracks.artist_id ASC").
		Limit(e.cfg.MaxSeeds).
		Scan(&artistRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract artist seeds: %w", err)
	}

	var genreRows []struct {
		Genre string
		Plays int64
	}
	err = e.db.WithContext(ctx).
		Model(&models.PlaybackEvent{}).
		Select("tracks.genre AS genre, COUNT(playback_events.id) AS plays").
		Joins("JOIN tracks ON tracks.id = playback_events.track_id").
		Where("playback_events.user_id = ? AND playback_events.played_at >= ?", userID, since).
		Where("tracks.genre IS NOT NULL AND tracks.genre <> ''").
		Group("tracks.genre").
		Order("plays DESC, tracks.genre ASC").
		Limit(e.cfg.MaxSeeds).
		Scan(&genreRows).Error
	if err != nil {
		return nil, nil, fmt.Errorf("failed to extract genre seeds: %w", err)
	}

	artistIDs = make([]uint, 0, len(artistRows))
	for _, r := range artistRows {
		artistIDs = append(artistIDs, r.ArtistID)
	}
	genres = make([]string, 0, len(genreRows))
	for _, r := range genreRows {
		genres = append(genres, r.Genre)
	}
	return artistIDs, genres, nil
}
