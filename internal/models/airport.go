package models

// Airport is a location record returned by the autocomplete endpoint.
// Treated as an immutable value; SkyID and the navigation EntityID are the
// identifiers the search endpoints expect.
type Airport struct {
	SkyID        string       `json:"skyId"`
	EntityID     string       `json:"entityId"`
	Presentation Presentation `json:"presentation"`
	Navigation   Navigation   `json:"navigation"`
}

type Presentation struct {
	Title           string `json:"title"`
	SuggestionTitle string `json:"suggestionTitle"`
	Subtitle        string `json:"subtitle"`
}

type Navigation struct {
	EntityID             string               `json:"entityId"`
	RelevantFlightParams RelevantFlightParams `json:"relevantFlightParams"`
}

type RelevantFlightParams struct {
	SkyID string `json:"skyId"`
}
