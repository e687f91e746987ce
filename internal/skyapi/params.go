package skyapi

import (
	"github.com/skysearch-dev/skysearch/internal/params"
)

// SearchParams is the full parameter set for one itinerary search. Distinct
// parameter sets map to distinct cache entries, so one external fetch is
// issued per set.
type SearchParams struct {
	OriginSkyID         string
	DestinationSkyID    string
	OriginEntityID      string
	DestinationEntityID string
	Date                string
	ReturnDate          string
	CabinClass          string
	Adults              string
	Children            string
	Infants             string
	SortBy              string
	Currency            string
	Market              string
	CountryCode         string
}

// Values lays the parameters out in the order the search endpoint is known
// to accept. The children count travels under the childrens key here;
// returnDate is only present for round trips.
func (p SearchParams) Values() params.Params {
	v := params.Params{}.
		Add("originSkyId", p.OriginSkyID).
		Add("destinationSkyId", p.DestinationSkyID).
		Add("originEntityId", p.OriginEntityID).
		Add("destinationEntityId", p.DestinationEntityID).
		Add("date", p.Date).
		Add("cabinClass", orDefault(p.CabinClass, "economy")).
		Add("adults", orDefault(p.Adults, "1")).
		Add("childrens", orDefault(p.Children, "0")).
		Add("infants", orDefault(p.Infants, "0")).
		Add("sortBy", orDefault(p.SortBy, "best")).
		Add("currency", orDefault(p.Currency, "USD")).
		Add("market", orDefault(p.Market, "en-US")).
		Add("countryCode", orDefault(p.CountryCode, "US"))

	if p.ReturnDate != "" {
		v = v.Add("returnDate", p.ReturnDate)
	}
	return v
}

// DetailParams identifies one itinerary for the details endpoint. Legs is
// the already-encoded legs descriptor and is passed through untouched.
type DetailParams struct {
	ItineraryID string
	SessionID   string
	Legs        string
	Adults      string
	Currency    string
	CabinClass  string
	CountryCode string
}

func (p DetailParams) Values() params.Params {
	return params.Params{}.
		Add("itineraryId", p.ItineraryID).
		Add("legs", p.Legs).
		Add("sessionId", p.SessionID).
		Add("adults", orDefault(p.Adults, "1")).
		Add("currency", orDefault(p.Currency, "USD")).
		Add("cabinClass", orDefault(p.CabinClass, "economy")).
		Add("countryCode", orDefault(p.CountryCode, "US"))
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
