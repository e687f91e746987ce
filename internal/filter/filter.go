// Package filter narrows a fetched itinerary list in memory. It never
// re-fetches and never re-sorts; the upstream ordering (its own sortBy
// semantics) is preserved.
package filter

import (
	"sync"

	"github.com/skysearch-dev/skysearch/internal/models"
)

const (
	initialVisible = 3
	revealStep     = 5

	// Display bounds used when no itinerary list is loaded yet.
	defaultMaxPrice    = 5000.0
	defaultMaxDuration = 1440
)

// Criteria is the user-adjustable filter set. Empty Stops/Airlines mean no
// constraint.
type Criteria struct {
	PriceRange    [2]float64 `json:"priceRange"`
	DurationRange [2]int     `json:"durationRange"`
	Stops         []int      `json:"stops"`
	Airlines      []int      `json:"airlines"`
}

// Pipeline owns the itinerary list of one results view together with the
// active criteria and the progressive-reveal window.
type Pipeline struct {
	mu             sync.Mutex
	itineraries    []models.Itinerary
	criteria       Criteria
	priceBounds    [2]float64
	durationBounds [2]int
	visible        int
}

func NewPipeline() *Pipeline {
	p := &Pipeline{}
	p.resetLocked(nil)
	return p
}

// SetItineraries replaces the list, recomputes the price and duration
// bounds and resets the active ranges to the full bounds. A previous
// filter's narrower range never carries over onto a refreshed list.
func (p *Pipeline) SetItineraries(list []models.Itinerary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.resetLocked(list)
}

func (p *Pipeline) resetLocked(list []models.Itinerary) {
	p.itineraries = list
	p.priceBounds, p.durationBounds = computeBounds(list)
	p.criteria = Criteria{
		PriceRange:    p.priceBounds,
		DurationRange: p.durationBounds,
	}
	p.visible = initialVisible
}

func computeBounds(list []models.Itinerary) ([2]float64, [2]int) {
	if len(list) == 0 {
		return [2]float64{0, defaultMaxPrice}, [2]int{0, defaultMaxDuration}
	}

	price := [2]float64{list[0].Price.Raw, list[0].Price.Raw}
	first := true
	var duration [2]int

	for _, it := range list {
		if it.Price.Raw < price[0] {
			price[0] = it.Price.Raw
		}
		if it.Price.Raw > price[1] {
			price[1] = it.Price.Raw
		}
		for _, leg := range it.Legs {
			d := leg.DurationInMinutes
			if first {
				duration = [2]int{d, d}
				first = false
				continue
			}
			if d < duration[0] {
				duration[0] = d
			}
			if d > duration[1] {
				duration[1] = d
			}
		}
	}

	if first {
		duration = [2]int{0, defaultMaxDuration}
	}
	return price, duration
}

func (p *Pipeline) Criteria() Criteria {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.criteria
}

func (p *Pipeline) PriceBounds() [2]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.priceBounds
}

func (p *Pipeline) DurationBounds() [2]int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.durationBounds
}

func (p *Pipeline) SetPriceRange(lo, hi float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria.PriceRange = [2]float64{lo, hi}
}

func (p *Pipeline) SetDurationRange(lo, hi int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria.DurationRange = [2]int{lo, hi}
}

func (p *Pipeline) SetStops(stops []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria.Stops = stops
}

func (p *Pipeline) SetAirlines(airlines []int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.criteria.Airlines = airlines
}

// Filtered returns the subset of the current list satisfying the criteria,
// in upstream order.
func (p *Pipeline) Filtered() []models.Itinerary {
	p.mu.Lock()
	defer p.mu.Unlock()
	return apply(p.itineraries, p.criteria)
}

// Visible returns the progressive-reveal window over the filtered list.
func (p *Pipeline) Visible() []models.Itinerary {
	p.mu.Lock()
	defer p.mu.Unlock()

	filtered := apply(p.itineraries, p.criteria)
	if p.visible < len(filtered) {
		return filtered[:p.visible]
	}
	return filtered
}

// ShowMore widens the reveal window by the fixed increment.
func (p *Pipeline) ShowMore() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.visible += revealStep
}

func apply(list []models.Itinerary, c Criteria) []models.Itinerary {
	result := make([]models.Itinerary, 0, len(list))
	for _, it := range list {
		if Matches(it, c) {
			result = append(result, it)
		}
	}
	return result
}

// Matches reports whether one itinerary passes all four predicates: price
// within range (inclusive), every leg duration within range (inclusive),
// some leg's stop count selected, and some leg carrying a selected
// marketing carrier.
func Matches(it models.Itinerary, c Criteria) bool {
	if it.Price.Raw < c.PriceRange[0] || it.Price.Raw > c.PriceRange[1] {
		return false
	}

	for _, leg := range it.Legs {
		if leg.DurationInMinutes < c.DurationRange[0] || leg.DurationInMinutes > c.DurationRange[1] {
			return false
		}
	}

	if len(c.Stops) > 0 && !someLegStops(it.Legs, c.Stops) {
		return false
	}

	if len(c.Airlines) > 0 && !someLegAirline(it.Legs, c.Airlines) {
		return false
	}

	return true
}

func someLegStops(legs []models.Leg, stops []int) bool {
	for _, leg := range legs {
		for _, s := range stops {
			if leg.StopCount == s {
				return true
			}
		}
	}
	return false
}

func someLegAirline(legs []models.Leg, airlines []int) bool {
	for _, leg := range legs {
		for _, carrier := range leg.Carriers.Marketing {
			for _, id := range airlines {
				if carrier.ID == id {
					return true
				}
			}
		}
	}
	return false
}
