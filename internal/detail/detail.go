// Package detail prepares flight-details requests: the escaped legs
// descriptor the details endpoint expects and the details-view URL built
// from a selected itinerary.
package detail

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/params"
)

// RequiredParams must all be present on the details view; a missing one
// sends the visitor back to the entry view instead of issuing a request.
var RequiredParams = []string{
	"itineraryId",
	"sessionId",
	"legs",
	"adults",
	"currency",
	"cabinClass",
	"countryCode",
}

type legRef struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
	Date        string `json:"date"`
}

// EncodeLegs builds the legs descriptor for an itinerary: one entry per leg
// with origin id, destination id and the date-only part of the departure,
// JSON-encoded with every double quote backslash-escaped and the whole
// value wrapped in literal quotes. The details endpoint requires this exact
// escaping, so it is reproduced byte for byte.
func EncodeLegs(legs []models.Leg) string {
	refs := make([]legRef, len(legs))
	for i, leg := range legs {
		refs[i] = legRef{
			Origin:      leg.Origin.ID,
			Destination: leg.Destination.ID,
			Date:        dateOnly(leg.Departure),
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	// Encode on a slice cannot fail.
	_ = enc.Encode(refs)
	encoded := strings.TrimSuffix(buf.String(), "\n")

	return `"` + strings.ReplaceAll(encoded, `"`, `\"`) + `"`
}

// ViewerParams carries the passenger/currency/locale fields the results
// view forwards into the details view.
type ViewerParams struct {
	Adults      string
	Children    string
	Infants     string
	Currency    string
	Market      string
	CabinClass  string
	CountryCode string
}

// ViewURL builds the details-view URL for one itinerary of a search
// response, in the order the view emits.
func ViewURL(it models.Itinerary, sessionID string, v ViewerParams) string {
	p := params.Params{}.
		Add("itineraryId", it.ID).
		Add("sessionId", sessionID).
		Add("legs", EncodeLegs(it.Legs)).
		Add("adults", orDefault(v.Adults, "1")).
		Add("children", orDefault(v.Children, "0")).
		Add("infants", orDefault(v.Infants, "0")).
		Add("currency", orDefault(v.Currency, "USD")).
		Add("locale", "en-US").
		Add("market", orDefault(v.Market, "en-US")).
		Add("cabinClass", orDefault(v.CabinClass, "economy")).
		Add("countryCode", orDefault(v.CountryCode, "US"))

	return "/flight-details?" + p.Encode()
}

// MissingParams lists the required details-view parameters absent from one
// request.
func MissingParams(get func(string) string) []string {
	var missing []string
	for _, name := range RequiredParams {
		if get(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}

func dateOnly(departure string) string {
	if i := strings.IndexByte(departure, 'T'); i >= 0 {
		return departure[:i]
	}
	return departure
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
