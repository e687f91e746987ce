package models

// SearchResults is the envelope returned by the itinerary search endpoint.
// The session identifier is required later by the flight-details endpoint.
type SearchResults struct {
	Status    bool       `json:"status"`
	Timestamp int64      `json:"timestamp"`
	SessionID string     `json:"sessionId"`
	Data      SearchData `json:"data"`
}

type SearchData struct {
	Context             SearchContext `json:"context"`
	Itineraries         []Itinerary   `json:"itineraries"`
	FilterStats         FilterStats   `json:"filterStats"`
	FlightsSessionID    string        `json:"flightsSessionId"`
	DestinationImageURL string        `json:"destinationImageUrl"`
}

type SearchContext struct {
	Status       string `json:"status"`
	SessionID    string `json:"sessionId"`
	TotalResults int    `json:"totalResults"`
}

// Itinerary is one priced travel option with one leg (one-way) or two legs
// (round trip). It is externally sourced and never mutated here, only
// filtered and displayed.
type Itinerary struct {
	ID         string     `json:"id"`
	Price      Price      `json:"price"`
	Legs       []Leg      `json:"legs"`
	Tags       []string   `json:"tags,omitempty"`
	FarePolicy FarePolicy `json:"farePolicy"`
	Score      float64    `json:"score"`
}

type Price struct {
	Raw             float64 `json:"raw"`
	Formatted       string  `json:"formatted"`
	PricingOptionID string  `json:"pricingOptionId"`
}

// Leg is one directional trip composed of one or more segments.
type Leg struct {
	ID                string   `json:"id"`
	Origin            Place    `json:"origin"`
	Destination       Place    `json:"destination"`
	DurationInMinutes int      `json:"durationInMinutes"`
	StopCount         int      `json:"stopCount"`
	Departure         string   `json:"departure"`
	Arrival           string   `json:"arrival"`
	TimeDeltaInDays   int      `json:"timeDeltaInDays"`
	Carriers          Carriers `json:"carriers"`
	Segments          []Segment `json:"segments"`
}

type Place struct {
	ID          string `json:"id"`
	EntityID    string `json:"entityId"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
	Country     string `json:"country"`
}

type Carriers struct {
	Marketing     []Carrier `json:"marketing"`
	Operating     []Carrier `json:"operating,omitempty"`
	OperationType string    `json:"operationType"`
}

type Carrier struct {
	ID          int    `json:"id"`
	AlternateID string `json:"alternateId"`
	LogoURL     string `json:"logoUrl"`
	Name        string `json:"name"`
}

// Segment is a single flown flight number between two airports.
type Segment struct {
	ID                string         `json:"id"`
	Origin            SegmentPlace   `json:"origin"`
	Destination       SegmentPlace   `json:"destination"`
	Departure         string         `json:"departure"`
	Arrival           string         `json:"arrival"`
	DurationInMinutes int            `json:"durationInMinutes"`
	FlightNumber      string         `json:"flightNumber"`
	MarketingCarrier  SegmentCarrier `json:"marketingCarrier"`
	OperatingCarrier  SegmentCarrier `json:"operatingCarrier"`
}

type SegmentPlace struct {
	FlightPlaceID string `json:"flightPlaceId"`
	DisplayCode   string `json:"displayCode"`
	Name          string `json:"name"`
	Type          string `json:"type"`
	City          string `json:"city"`
	Country       string `json:"country"`
}

type SegmentCarrier struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	AlternateID string `json:"alternateId"`
	DisplayCode string `json:"displayCode"`
}

type FarePolicy struct {
	IsChangeAllowed       bool `json:"isChangeAllowed"`
	IsPartiallyChangeable bool `json:"isPartiallyChangeable"`
	IsCancellationAllowed bool `json:"isCancellationAllowed"`
	IsPartiallyRefundable bool `json:"isPartiallyRefundable"`
}

// FilterStats is the server-computed summary used to populate filter
// controls (available carriers, duration envelope, per-stop prices).
type FilterStats struct {
	Duration   DurationStats  `json:"duration"`
	Carriers   []Carrier      `json:"carriers"`
	StopPrices StopPrices     `json:"stopPrices"`
	Airports   []CityAirports `json:"airports,omitempty"`
}

type DurationStats struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type StopPrices struct {
	Direct    StopPrice `json:"direct"`
	One       StopPrice `json:"one"`
	TwoOrMore StopPrice `json:"twoOrMore"`
}

type StopPrice struct {
	IsPresent      bool   `json:"isPresent"`
	FormattedPrice string `json:"formattedPrice,omitempty"`
}

type CityAirports struct {
	City     string        `json:"city"`
	Airports []NamedEntity `json:"airports"`
}

type NamedEntity struct {
	ID       string `json:"id"`
	EntityID string `json:"entityId"`
	Name     string `json:"name"`
}
