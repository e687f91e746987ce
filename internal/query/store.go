// Package query holds the in-progress search criteria for one session and
// turns a complete query into the results-view URL.
package query

import (
	"sync"

	"github.com/skysearch-dev/skysearch/internal/models"
)

// Partial is a sparse update to the query; nil fields leave the current
// value untouched. No validation happens at this layer — callers check
// completeness through Valid before executing a search.
type Partial struct {
	OriginAirport      *models.Airport `json:"originAirport,omitempty"`
	DestinationAirport *models.Airport `json:"destinationAirport,omitempty"`
	Date               *string         `json:"date,omitempty"`
	ReturnDate         *string         `json:"returnDate,omitempty"`
	CabinClass         *string         `json:"cabinClass,omitempty"`
	Adults             *int            `json:"adults,omitempty"`
	Children           *int            `json:"children,omitempty"`
	Infants            *int            `json:"infants,omitempty"`
	RoundTrip          *bool           `json:"roundTrip,omitempty"`
	SortBy             *string         `json:"sortBy,omitempty"`
	Currency           *string         `json:"currency,omitempty"`
	Market             *string         `json:"market,omitempty"`
	CountryCode        *string         `json:"countryCode,omitempty"`
}

func Defaults() models.Query {
	return models.Query{
		CabinClass:  models.CabinEconomy,
		Adults:      1,
		Children:    0,
		Infants:     0,
		RoundTrip:   true,
		SortBy:      "best",
		Currency:    "USD",
		Market:      "en-US",
		CountryCode: "US",
	}
}

type Store struct {
	mu sync.Mutex
	q  models.Query
}

func NewStore() *Store {
	return &Store{q: Defaults()}
}

// Query returns a copy of the current state.
func (s *Store) Query() models.Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.q
}

// Set merges a partial update, preserving unspecified fields. Switching to
// one-way clears any return date.
func (s *Store) Set(p Partial) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.OriginAirport != nil {
		s.q.OriginAirport = p.OriginAirport
	}
	if p.DestinationAirport != nil {
		s.q.DestinationAirport = p.DestinationAirport
	}
	if p.Date != nil {
		s.q.Date = *p.Date
	}
	if p.ReturnDate != nil {
		s.q.ReturnDate = *p.ReturnDate
	}
	if p.CabinClass != nil {
		s.q.CabinClass = *p.CabinClass
	}
	if p.Adults != nil {
		s.q.Adults = *p.Adults
	}
	if p.Children != nil {
		s.q.Children = *p.Children
	}
	if p.Infants != nil {
		s.q.Infants = *p.Infants
	}
	if p.RoundTrip != nil {
		s.q.RoundTrip = *p.RoundTrip
		if !s.q.RoundTrip {
			s.q.ReturnDate = ""
		}
	}
	if p.SortBy != nil {
		s.q.SortBy = *p.SortBy
	}
	if p.Currency != nil {
		s.q.Currency = *p.Currency
	}
	if p.Market != nil {
		s.q.Market = *p.Market
	}
	if p.CountryCode != nil {
		s.q.CountryCode = *p.CountryCode
	}
}

// Reset restores the documented defaults.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.q = Defaults()
}

type PassengerKind string

const (
	Adults   PassengerKind = "adults"
	Children PassengerKind = "children"
	Infants  PassengerKind = "infants"
)

// AdjustPassengers applies an increment or decrement to one passenger
// count, clamped at zero.
func (s *Store) AdjustPassengers(kind PassengerKind, delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var field *int
	switch kind {
	case Adults:
		field = &s.q.Adults
	case Children:
		field = &s.q.Children
	case Infants:
		field = &s.q.Infants
	default:
		return
	}

	*field += delta
	if *field < 0 {
		*field = 0
	}
}
