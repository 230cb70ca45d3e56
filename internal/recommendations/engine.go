// Package recommendations computes personalized track recommendations
// by combining a user's recent playback history (artist/genre seeds)
// with globally popular tracks and, as a last resort, the newest
// catalog entries. Results are cached per user with a TTL and are
// always re-validated against the live catalog before being returned,
// so deleted tracks never surface.
package recommendations

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/tunewave/backend/internal/config"
	"github.com/tunewave/backend/internal/metrics"
	"github.com/tunewave/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Engine computes and caches recommendations. All tuning knobs come
// from the injected config; the engine itself is stateless beyond the
// database handle.
type Engine struct {
	db  *gorm.DB
	cfg config.RecommendationConfig
}

// NewEngine creates a recommendation engine
func NewEngine(db *gorm.DB, cfg config.RecommendationConfig) *Engine {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 25
	}
	if cfg.PopularOversample <= 0 {
		cfg.PopularOversample = 2
	}
	if cfg.MaxSeeds <= 0 {
		cfg.MaxSeeds = 5
	}
	if cfg.RecentWindowDays <= 0 {
		cfg.RecentWindowDays = 30
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 60 * time.Minute
	}
	return &Engine{db: db, cfg: cfg}
}

// Compute returns up to limit recommended tracks for a user, most
// relevant first. A fresh cache row short-circuits the pipeline unless
// forceRefresh is set. Persistence errors fail the whole request; the
// caller never receives a computed-but-uncached result.
//
// Two concurrent calls for the same stale user may both recompute and
// both write the cache row. Recomputation is idempotent and the write
// is a single atomic upsert, so last write wins; no per-user lock is
// taken.
func (e *Engine) Compute(ctx context.Context, userID uint, limit int, forceRefresh bool) ([]models.Track, error) {
	if limit <= 0 {
		limit = e.cfg.DefaultLimit
	}

	m := metrics.Get()

	var cached models.RecommendationCache
	err := e.db.WithContext(ctx).Where("user_id = ?", userID).First(&cached).Error
	haveCache := err == nil
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to read recommendation cache: %w", err)
	}

	missReason := "no_cache"
	if haveCache {
		missReason = "stale"
	}
	if forceRefresh {
		missReason = "forced"
	}

	if haveCache && !forceRefresh && e.isFresh(cached.GeneratedAt) {
		ids, err := e.filterExisting(ctx, cached.TrackIDs)
		if err != nil {
			return nil, err
		}
		if len(ids) > limit {
			ids = ids[:limit]
		}
		if len(ids) > 0 {
			m.RecommendationCacheHits.WithLabelValues("fresh").Inc()
			m.RecommendationResultSize.WithLabelValues("cache").Observe(float64(len(ids)))
			return e.loadTracksOrdered(ctx, ids)
		}
		// Every cached id has been deleted from the catalog.
		// Fall through and recompute rather than return nothing.
		missReason = "cache_emptied"
	}

	m.RecommendationCacheMisses.WithLabelValues(missReason).Inc()
	start := time.Now()

	artistIDs, genres, err := e.extractSeeds(ctx, userID)
	if err != nil {
		return nil, err
	}

	seeded, err := e.seededTracks(ctx, artistIDs, genres, limit)
	if err != nil {
		return nil, err
	}

	popular, err := e.popularTracks(ctx, limit)
	if err != nil {
		return nil, err
	}

	combined := blend(limit, seeded, popular)

	// Last-resort fill: a brand-new platform has no playback history
	// at all, so neither seeded nor popular candidates exist.
	if len(combined) < limit {
		recent, err := e.recentTracks(ctx, limit)
		if err != nil {
			return nil, err
		}
		combined = blend(limit, combined, recent)
	}

	combined, err = e.filterExisting(ctx, combined)
	if err != nil {
		return nil, err
	}
	if len(combined) > limit {
		combined = combined[:limit]
	}

	row := models.RecommendationCache{
		UserID:      userID,
		TrackIDs:    models.TrackIDList(combined),
		GeneratedAt: time.Now().UTC(),
	}
	err = e.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"track_ids", "generated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("failed to persist recommendation cache: %w", err)
	}

	m.RecommendationComputeTime.WithLabelValues("full").Observe(time.Since(start).Seconds())
	m.RecommendationResultSize.WithLabelValues("computed").Observe(float64(len(combined)))

	return e.loadTracksOrdered(ctx, combined)
}

// Invalidate drops the cached row for a user so the next request
// recomputes. Missing rows are not an error.
func (e *Engine) Invalidate(ctx context.Context, userID uint) error {
	err := e.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.RecommendationCache{}).Error
	if err != nil {
		return fmt.Errorf("failed to invalidate recommendation cache: %w", err)
	}
	return nil
}

// isFresh reports whether a cache row generated at the given time is
// still within the TTL
func (e *Engine) isFresh(generatedAt time.Time) bool {
	return time.Since(generatedAt) <= e.cfg.CacheTTL
}

// filterExisting drops ids that no longer exist in the catalog,
// preserving input order. Tracks can be deleted between a cache write
// and a later read.
func (e *Engine) filterExisting(ctx context.Context, ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var existing []uint
	err := e.db.WithContext(ctx).
		Model(&models.Track{}).
		Where("id IN ?", ids).
		Pluck("id", &existing).Error
	if err != nil {
		return nil, fmt.Errorf("failed to verify track existence: %w", err)
	}

	existingSet := make(map[uint]struct{}, len(existing))
	for _, id := range existing {
		existingSet[id] = struct{}{}
	}

	kept := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := existingSet[id]; ok {
			kept = append(kept, id)
		}
	}
	return kept, nil
}

// loadTracksOrdered fetches full track rows and returns them in the
// given id order
func (e *Engine) loadTracksOrdered(ctx context.Context, ids []uint) ([]models.Track, error) {
	if len(ids) == 0 {
		return []models.Track{}, nil
	}

	var tracks []models.Track
	err := e.db.WithContext(ctx).Where("id IN ?", ids).Find(&tracks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load recommended tracks: %w", err)
	}

	trackMap := make(map[uint]models.Track, len(tracks))
	for _, t := range tracks {
		trackMap[t.ID] = t
	}

	ordered := make([]models.Track, 0, len(ids))
	for _, id := range ids {
		if t, ok := trackMap[id]; ok {
			ordered = append(ordered, t)
		}
	}
	return ordered, nil
}

// CacheKeyForUser returns a stable diagnostics label for a user's
// cache row, used in log fields
func CacheKeyForUser(userID uint) string {
	return "recommendations:" + strconv.FormatUint(uint64(userID), 10)
}
