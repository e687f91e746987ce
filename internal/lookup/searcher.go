// Package lookup debounces airport autocomplete queries. Only the last
// keystroke inside the debounce window reaches the network, and a response
// for a superseded query can never overwrite a later one.
package lookup

import (
	"context"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/skysearch-dev/skysearch/internal/models"
)

const DefaultDebounce = 500 * time.Millisecond

type Client interface {
	SearchAirport(ctx context.Context, query string) ([]models.Airport, error)
}

// Searcher serializes one input field's lookups. Each call supersedes the
// previous one: superseded calls return an empty result without touching
// the network, and a superseded in-flight response is dropped.
type Searcher struct {
	client Client
	delay  time.Duration

	mu  sync.Mutex
	seq uint64
}

func NewSearcher(client Client, delay time.Duration) *Searcher {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Searcher{client: client, delay: delay}
}

// Search resolves one keystroke's query. Blank input yields an empty result
// immediately and cancels any pending lookup. Upstream failures are logged
// and swallowed; the caller always gets a usable (possibly empty) list.
func (s *Searcher) Search(ctx context.Context, text string) []models.Airport {
	text = strings.TrimSpace(text)
	if text == "" {
		s.bump()
		return nil
	}

	seq := s.bump()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil
	case <-timer.C:
	}

	// Debounce: a newer keystroke arrived while this one was waiting.
	if !s.latest(seq) {
		return nil
	}

	airports, err := s.client.SearchAirport(ctx, text)
	if err != nil {
		log.Printf("airport lookup %q failed: %v", text, err)
		return nil
	}

	// Last-issued-wins: drop out-of-order responses.
	if !s.latest(seq) {
		return nil
	}
	return airports
}

// Close supersedes any pending lookup: a waiter still sits out its
// debounce timer but returns empty without calling upstream.
func (s *Searcher) Close() {
	s.bump()
}

func (s *Searcher) bump() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

func (s *Searcher) latest(seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq == seq
}
