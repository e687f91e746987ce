// Package calendar drives date selection for one session. Per-day prices
// are advisory display data and never block picking a date; the query store
// stays the single source of truth for the chosen dates.
package calendar

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/skysearch-dev/skysearch/internal/query"
)

const dateLayout = "2006-01-02"

type PriceClient interface {
	PriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, currency string) (map[string]float64, error)
}

// Picker is a {closed, open} state machine over a visible month. Closing
// and re-opening keeps unsaved dates because they live in the query store.
type Picker struct {
	store  *query.Store
	client PriceClient
	now    func() time.Time

	mu      sync.Mutex
	open    bool
	visible time.Time // first day of the visible month
	prices  map[string]float64
}

func NewPicker(store *query.Store, client PriceClient) *Picker {
	return &Picker{
		store:  store,
		client: client,
		now:    time.Now,
	}
}

// Open shows the calendar and fetches indicative prices for the visible
// month. A fetch failure degrades to an empty price map.
func (p *Picker) Open(ctx context.Context) {
	p.mu.Lock()
	p.open = true
	if p.visible.IsZero() {
		p.visible = monthStart(p.now())
	}
	month := p.visible
	p.mu.Unlock()

	p.fetchPrices(ctx, month)
}

func (p *Picker) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.open = false
}

func (p *Picker) IsOpen() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.open
}

func (p *Picker) VisibleMonth() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.visible.IsZero() {
		return monthStart(p.now())
	}
	return p.visible
}

// Prices returns the advisory per-day prices for the visible month, keyed
// by YYYY-MM-DD.
func (p *Picker) Prices() map[string]float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	out := make(map[string]float64, len(p.prices))
	for k, v := range p.prices {
		out[k] = v
	}
	return out
}

// NextMonth advances the visible month and refreshes its prices.
func (p *Picker) NextMonth(ctx context.Context) {
	p.mu.Lock()
	if p.visible.IsZero() {
		p.visible = monthStart(p.now())
	}
	p.visible = p.visible.AddDate(0, 1, 0)
	month := p.visible
	p.mu.Unlock()

	p.fetchPrices(ctx, month)
}

// PrevMonth steps back one month. Months strictly before the current month
// are not browsable; the call reports whether it moved.
func (p *Picker) PrevMonth(ctx context.Context) bool {
	p.mu.Lock()
	if p.visible.IsZero() {
		p.visible = monthStart(p.now())
	}
	prev := p.visible.AddDate(0, -1, 0)
	if prev.Before(monthStart(p.now())) {
		p.mu.Unlock()
		return false
	}
	p.visible = prev
	p.mu.Unlock()

	p.fetchPrices(ctx, prev)
	return true
}

// Select applies one date click. Past dates are ignored. One-way trips take
// the date directly and drop any return date. Round trips collect up to two
// dates: a click with zero or two already selected starts over, and with
// exactly one selected the earlier date becomes the departure and the later
// the return, regardless of click order.
func (p *Picker) Select(date time.Time) {
	day := date.Format(dateLayout)
	today := p.now().Format(dateLayout)
	if day < today {
		return
	}

	q := p.store.Query()

	if !q.RoundTrip {
		empty := ""
		p.store.Set(query.Partial{Date: &day, ReturnDate: &empty})
		return
	}

	switch {
	case q.Date == "" || q.ReturnDate != "":
		empty := ""
		p.store.Set(query.Partial{Date: &day, ReturnDate: &empty})
	case day < q.Date:
		existing := q.Date
		p.store.Set(query.Partial{Date: &day, ReturnDate: &existing})
	default:
		p.store.Set(query.Partial{ReturnDate: &day})
	}
}

// Reset clears both selected dates.
func (p *Picker) Reset() {
	empty := ""
	p.store.Set(query.Partial{Date: &empty, ReturnDate: &empty})
}

func (p *Picker) fetchPrices(ctx context.Context, month time.Time) {
	q := p.store.Query()
	if q.OriginAirport == nil || q.DestinationAirport == nil {
		return
	}

	fromDate := month.Format(dateLayout)
	prices, err := p.client.PriceCalendar(ctx, q.OriginAirport.SkyID, q.DestinationAirport.SkyID, fromDate, q.Currency)
	if err != nil {
		log.Printf("price calendar %s-%s %s failed: %v", q.OriginAirport.SkyID, q.DestinationAirport.SkyID, fromDate, err)
		prices = map[string]float64{}
	}

	p.mu.Lock()
	p.prices = prices
	p.mu.Unlock()
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
