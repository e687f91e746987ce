// Package session ties one visitor's interactive state together: the query
// store, the per-field lookup searchers, the calendar picker and the
// results pipeline. Each session is an explicit constructed instance, not a
// process-wide singleton.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/skysearch-dev/skysearch/internal/calendar"
	"github.com/skysearch-dev/skysearch/internal/detail"
	"github.com/skysearch-dev/skysearch/internal/filter"
	"github.com/skysearch-dev/skysearch/internal/lookup"
	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/query"
)

type Session struct {
	ID          string
	Query       *query.Store
	Origin      *lookup.Searcher
	Destination *lookup.Searcher
	Calendar    *calendar.Picker
	Results     *filter.Pipeline

	mu              sync.Mutex
	searchSessionID string
	filterStats     models.FilterStats
	viewer          detail.ViewerParams
	lastSeen        time.Time
}

// SetSearchContext records the metadata of the last search response so
// filter adjustments can rebuild the results view without refetching.
func (s *Session) SetSearchContext(sessionID string, stats models.FilterStats, viewer detail.ViewerParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchSessionID = sessionID
	s.filterStats = stats
	s.viewer = viewer
}

func (s *Session) SearchContext() (string, models.FilterStats, detail.ViewerParams) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.searchSessionID, s.filterStats, s.viewer
}

// Close releases the session's pending lookup timers.
func (s *Session) Close() {
	s.Origin.Close()
	s.Destination.Close()
}

// Factory builds the component bundle for a new session id.
type Factory func(id string) *Session

type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
	factory  Factory
	ttl      time.Duration
	now      func() time.Time
}

func NewManager(factory Factory, ttl time.Duration) *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
		factory:  factory,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns an existing session and refreshes its last-seen time.
func (m *Manager) Get(id string) (*Session, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[id]
	if ok {
		s.lastSeen = m.now()
	}
	return s, ok
}

// Create builds a session under a fresh id.
func (m *Manager) Create() *Session {
	id := uuid.NewString()
	s := m.factory(id)
	s.ID = id

	m.mu.Lock()
	s.lastSeen = m.now()
	m.sessions[id] = s
	m.mu.Unlock()

	return s
}

// Sweep drops sessions idle past the ttl and returns how many were removed.
func (m *Manager) Sweep() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	cutoff := m.now().Add(-m.ttl)
	removed := 0
	for id, s := range m.sessions {
		if s.lastSeen.Before(cutoff) {
			s.Close()
			delete(m.sessions, id)
			removed++
		}
	}
	return removed
}

// SweepLoop runs Sweep on an interval until stop is closed.
func (m *Manager) SweepLoop(interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.Sweep()
		case <-stop:
			return
		}
	}
}
