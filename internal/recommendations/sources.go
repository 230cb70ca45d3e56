package recommendations

import (
	"context"
	"fmt"
	"strings"

	"github.com/tunewave/backend/internal/models"
)

// seededTracks returns candidate track ids matching the seed artists
// or seed genres, newest first. Artist matches are fetched before
// genre matches so they survive the final clip; genre matching is
// case-insensitive. Returns at most limit ids with duplicates removed,
// first occurrence winning.
func (e *Engine) seededTracks(ctx context.Context, artistIDs []uint, genres []string, limit int) ([]uint, error) {
	if len(artistIDs) == 0 && len(genres) == 0 {
		return nil, nil
	}

	candidates := make([]uint, 0, limit*2)

	if len(artistIDs) > 0 {
		var ids []uint
		err := e.db.WithContext(ctx).
			Model(&models.Track{}).
			Where("artist_id IN ?", artistIDs).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Pluck("id", &ids).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch artist-seeded tracks: %w", err)
		}
		candidates = append(candidates, ids...)
	}

	if len(genres) > 0 {
		lowered := make([]string, 0, len(genres))
		for _, g := range genres {
			lowered = append(lowered, strings.ToLower(g))
		}
		var ids []uint
		err := e.db.WithContext(ctx).
			Model(&models.Track{}).
			Where("genre IS NOT NULL AND LOWER(genre) IN ?", lowered).
			Order("created_at DESC, id DESC").
			Limit(limit).
			Pluck("id", &ids).Error
		if err != nil {
			return nil, fmt.Errorf("failed to fetch genre-seeded tracks: %w", err)
		}
		candidates = append(candidates, ids...)
	}

	return blend(limit, candidates), nil
}

// popularTracks returns the platform-wide most played track ids. It
// oversamples past limit so downstream dedup against seeded candidates
// still leaves enough material to fill the final list.
func (e *Engine) popularTracks(ctx context.Context, limit int) ([]uint, error) {
	var rows []struct {
		TrackID uint
		Plays   int64
	}
	err := e.db.WithContext(ctx).
		Model(&models.PlaybackEvent{}).
		Select("track_id, COUNT(id) AS plays").
		Group("track_id").
		Order("plays DESC, track_id ASC").
		Limit(limit * e.cfg.PopularOversample).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch popular tracks: %w", err)
	}

	ids := make([]uint, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.TrackID)
	}
	return ids, nil
}

// recentTracks returns the newest catalog entries, used only to fill
// out an underfull result when playback history is thin
func (e *Engine) recentTracks(ctx context.Context, limit int) ([]uint, error) {
	var ids []uint
	err := e.db.WithContext(ctx).
		Model(&models.Track{}).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent tracks: %w", err)
	}
	return ids, nil
}
