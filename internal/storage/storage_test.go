package storage

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysearch-dev/skysearch/internal/models"
)

func airport(entityID string) models.Airport {
	return models.Airport{
		SkyID:    entityID,
		EntityID: entityID,
		Presentation: models.Presentation{
			SuggestionTitle: "Airport " + entityID,
		},
	}
}

func entityIDs(list []models.Airport) []string {
	ids := make([]string, len(list))
	for i, a := range list {
		ids[i] = a.EntityID
	}
	return ids
}

func TestPushRecentInsertsNewestFirst(t *testing.T) {
	var list []models.Airport
	list = PushRecent(list, airport("1"))
	list = PushRecent(list, airport("2"))
	list = PushRecent(list, airport("3"))

	assert.Equal(t, []string{"3", "2", "1"}, entityIDs(list))
}

func TestPushRecentMovesExistingToFrontWithoutGrowing(t *testing.T) {
	var list []models.Airport
	for i := 1; i <= 4; i++ {
		list = PushRecent(list, airport(fmt.Sprintf("%d", i)))
	}

	list = PushRecent(list, airport("2"))

	assert.Equal(t, []string{"2", "4", "3", "1"}, entityIDs(list))
	assert.Len(t, list, 4)
}

func TestPushRecentNeverExceedsBoundAndStaysUnique(t *testing.T) {
	var list []models.Airport
	for i := 0; i < 20; i++ {
		list = PushRecent(list, airport(fmt.Sprintf("%d", i%7)))

		assert.LessOrEqual(t, len(list), MaxRecent)
		seen := make(map[string]bool)
		for _, a := range list {
			assert.False(t, seen[a.EntityID], "duplicate entity id %s", a.EntityID)
			seen[a.EntityID] = true
		}
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	got, err := s.RecentAirports(ctx, "sid")
	require.NoError(t, err)
	assert.Empty(t, got)

	require.NoError(t, s.SaveRecentAirports(ctx, "sid", []models.Airport{airport("1"), airport("2")}))

	got, err = s.RecentAirports(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, entityIDs(got))

	// other sessions are isolated
	other, err := s.RecentAirports(ctx, "other")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestMemoryStoreTheme(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	theme, err := s.Theme(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "light", theme)

	require.NoError(t, s.SetTheme(ctx, "sid", "dark"))

	theme, err = s.Theme(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
}
