package models

// Query is the in-progress search criteria for one session. Dates use the
// YYYY-MM-DD wire format throughout.
type Query struct {
	OriginAirport      *Airport `json:"originAirport,omitempty"`
	DestinationAirport *Airport `json:"destinationAirport,omitempty"`
	Date               string   `json:"date"`
	ReturnDate         string   `json:"returnDate,omitempty"`
	CabinClass         string   `json:"cabinClass"`
	Adults             int      `json:"adults"`
	Children           int      `json:"children"`
	Infants            int      `json:"infants"`
	RoundTrip          bool     `json:"roundTrip"`
	SortBy             string   `json:"sortBy"`
	Currency           string   `json:"currency"`
	Market             string   `json:"market"`
	CountryCode        string   `json:"countryCode"`
}

// Cabin class fare tiers accepted by the search endpoint.
const (
	CabinEconomy        = "economy"
	CabinPremiumEconomy = "premium-economy"
	CabinBusiness       = "business"
	CabinFirst          = "first"
)
