// Package storage persists the small per-session state that survives
// restarts: the recent airport selections and the display theme.
package storage

import (
	"context"

	"github.com/skysearch-dev/skysearch/internal/models"
)

// MaxRecent bounds the recent-selections list.
const MaxRecent = 5

type Store interface {
	RecentAirports(ctx context.Context, sessionID string) ([]models.Airport, error)
	SaveRecentAirports(ctx context.Context, sessionID string, airports []models.Airport) error
	Theme(ctx context.Context, sessionID string) (string, error)
	SetTheme(ctx context.Context, sessionID, theme string) error
	Close() error
}

// PushRecent inserts an airport at the front of the recent list, removing
// any existing entry with the same entity id, and truncates to MaxRecent.
func PushRecent(list []models.Airport, airport models.Airport) []models.Airport {
	updated := make([]models.Airport, 0, len(list)+1)
	updated = append(updated, airport)
	for _, a := range list {
		if a.EntityID == airport.EntityID {
			continue
		}
		updated = append(updated, a)
	}
	if len(updated) > MaxRecent {
		updated = updated[:MaxRecent]
	}
	return updated
}
