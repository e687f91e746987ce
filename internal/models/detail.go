package models

// FlightDetail is the envelope returned by the flight-details endpoint.
type FlightDetail struct {
	Status    bool             `json:"status"`
	Timestamp int64            `json:"timestamp"`
	Data      FlightDetailData `json:"data"`
}

type FlightDetailData struct {
	Itinerary        ItineraryDetail `json:"itinerary"`
	PollingCompleted bool            `json:"pollingCompleted"`
}

type ItineraryDetail struct {
	Legs               []DetailLeg     `json:"legs"`
	PricingOptions     []PricingOption `json:"pricingOptions"`
	IsTransferRequired bool            `json:"isTransferRequired"`
	DestinationImage   string          `json:"destinationImage"`
}

// DetailLeg mirrors Leg but with the slightly different field names the
// details endpoint uses (duration instead of durationInMinutes).
type DetailLeg struct {
	ID          string          `json:"id"`
	Origin      DetailPlace     `json:"origin"`
	Destination DetailPlace     `json:"destination"`
	Segments    []DetailSegment `json:"segments"`
	Duration    int             `json:"duration"`
	StopCount   int             `json:"stopCount"`
	Departure   string          `json:"departure"`
	Arrival     string          `json:"arrival"`
	DayChange   int             `json:"dayChange"`
}

type DetailPlace struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	City        string `json:"city"`
}

type DetailSegment struct {
	ID               string        `json:"id"`
	Origin           DetailPlace   `json:"origin"`
	Destination      DetailPlace   `json:"destination"`
	Duration         int           `json:"duration"`
	DayChange        int           `json:"dayChange"`
	FlightNumber     string        `json:"flightNumber"`
	Departure        string        `json:"departure"`
	Arrival          string        `json:"arrival"`
	MarketingCarrier DetailCarrier `json:"marketingCarrier"`
	OperatingCarrier DetailCarrier `json:"operatingCarrier"`
}

type DetailCarrier struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	DisplayCode string `json:"displayCode"`
	Logo        string `json:"logo"`
	AltID       string `json:"altId"`
}

// PricingOption is one bookable offer; the first agent carries the outbound
// booking URL.
type PricingOption struct {
	Agents     []Agent `json:"agents"`
	TotalPrice float64 `json:"totalPrice"`
}

type Agent struct {
	ID                 string      `json:"id"`
	Name               string      `json:"name"`
	IsCarrier          bool        `json:"isCarrier"`
	BookingProposition string      `json:"bookingProposition"`
	URL                string      `json:"url"`
	Price              float64     `json:"price"`
	Rating             AgentRating `json:"rating"`
	UpdateStatus       string      `json:"updateStatus"`
	QuoteAge           int         `json:"quoteAge"`
}

type AgentRating struct {
	Value float64 `json:"value"`
	Count int     `json:"count"`
}
