package storage

import (
	"context"
	"sync"

	"github.com/skysearch-dev/skysearch/internal/models"
)

// MemoryStore keeps session state in process memory. Used when Redis is
// disabled; state does not survive a restart.
type MemoryStore struct {
	mu      sync.Mutex
	recents map[string][]models.Airport
	themes  map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		recents: make(map[string][]models.Airport),
		themes:  make(map[string]string),
	}
}

func (s *MemoryStore) RecentAirports(ctx context.Context, sessionID string) ([]models.Airport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Airport(nil), s.recents[sessionID]...), nil
}

func (s *MemoryStore) SaveRecentAirports(ctx context.Context, sessionID string, airports []models.Airport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recents[sessionID] = append([]models.Airport(nil), airports...)
	return nil
}

func (s *MemoryStore) Theme(ctx context.Context, sessionID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if theme, ok := s.themes[sessionID]; ok {
		return theme, nil
	}
	return defaultTheme, nil
}

func (s *MemoryStore) SetTheme(ctx context.Context, sessionID, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.themes[sessionID] = theme
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
