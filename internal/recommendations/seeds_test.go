package recommendations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractSeedsRanksByPlayCount(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	now := time.Now().UTC()

	heavy := createArtist(t, db, "Heavy Rotation")
	light := createArtist(t, db, "Light Rotation")

	heavyTrack := createTrack(t, db, "Anthem", heavy.ID, strPtr("Rock"), now.Add(-time.Hour))
	lightTrack := createTrack(t, db, "B-Side", light.ID, strPtr("Folk"), now.Add(-time.Hour))

	recordPlays(t, db, 1, heavyTrack.ID, 5, now.Add(-time.Hour))
	recordPlays(t, db, 1, lightTrack.ID, 2, now.Add(-time.Hour))

	artistIDs, genres, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)

	assert.Equal(t, []uint{heavy.ID, light.ID}, artistIDs)
	assert.Equal(t, []string{"Rock", "Folk"}, genres)
}

func TestExtractSeedsIgnoresOtherUsers(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	now := time.Now().UTC()

	mine := createArtist(t, db, "My Artist")
	theirs := createArtist(t, db, "Their Artist")

	myTrack := createTrack(t, db, "Mine", mine.ID, nil, now.Add(-time.Hour))
	theirTrack := createTrack(t, db, "Theirs", theirs.ID, nil, now.Add(-time.Hour))

	recordPlays(t, db, 1, myTrack.ID, 1, now.Add(-time.Hour))
	recordPlays(t, db, 2, theirTrack.ID, 100, now.Add(-time.Hour))

	artistIDs, _, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, []uint{mine.ID}, artistIDs)
}

func TestExtractSeedsExcludesPlaysOutsideWindow(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	now := time.Now().UTC()

	artist := createArtist(t, db, "Former Favorite")
	track := createTrack(t, db, "Old Flame", artist.ID, strPtr("Disco"), now.Add(-90*24*time.Hour))

	recordPlays(t, db, 1, track.ID, 20, now.AddDate(0, 0, -60))

	artistIDs, genres, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, artistIDs)
	assert.Empty(t, genres)
}

func TestExtractSeedsSkipsMissingGenre(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	now := time.Now().UTC()

	artist := createArtist(t, db, "Genreless Band")
	withGenre := createTrack(t, db, "Tagged", artist.ID, strPtr("Ambient"), now.Add(-time.Hour))
	noGenre := createTrack(t, db, "Untagged", artist.ID, nil, now.Add(-time.Hour))

	recordPlays(t, db, 1, withGenre.ID, 1, now.Add(-time.Hour))
	recordPlays(t, db, 1, noGenre.ID, 10, now.Add(-time.Hour))

	artistIDs, genres, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)

	// Both tracks count toward the artist seed; only the tagged one
	// contributes a genre.
	assert.Equal(t, []uint{artist.ID}, artistIDs)
	assert.Equal(t, []string{"Ambient"}, genres)
}

func TestExtractSeedsCapsAtMaxSeeds(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)
	now := time.Now().UTC()

	names := []string{"One", "Two", "Three", "Four", "Five", "Six", "Seven"}
	for i, name := range names {
		artist := createArtist(t, db, name)
		track := createTrack(t, db, name, artist.ID, nil, now.Add(-time.Hour))
		// Descending play counts so the ranking is unambiguous.
		recordPlays(t, db, 1, track.ID, len(names)-i, now.Add(-time.Hour))
	}

	artistIDs, _, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, artistIDs, 5)
}

func TestExtractSeedsNoHistory(t *testing.T) {
	db := setupTestDB(t)
	engine := newTestEngine(db)

	artistIDs, genres, err := engine.extractSeeds(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, artistIDs)
	assert.Empty(t, genres)
}
