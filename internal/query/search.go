package query

import (
	"strconv"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/params"
)

const ErrIncompleteQuery models.ValidationError = "query is incomplete"

// Valid reports whether the query can be executed: both airports chosen, a
// departure date set, a return date set for round trips, and at least one
// adult.
func Valid(q models.Query) bool {
	return q.OriginAirport != nil &&
		q.DestinationAirport != nil &&
		q.Date != "" &&
		(!q.RoundTrip || q.ReturnDate != "") &&
		q.Adults >= 1
}

// SearchURL serializes the full query into the results-view URL. The
// parameter order matches what the results view re-sends upstream; the
// returnDate key is always present and empty for one-way trips, and the
// childrens spelling is the one the search endpoint expects.
func SearchURL(q models.Query) (string, error) {
	if !Valid(q) {
		return "", ErrIncompleteQuery
	}

	returnDate := ""
	if q.RoundTrip {
		returnDate = q.ReturnDate
	}

	p := params.Params{}.
		Add("originSkyId", q.OriginAirport.SkyID).
		Add("originEntityId", q.OriginAirport.Navigation.EntityID).
		Add("destinationSkyId", q.DestinationAirport.SkyID).
		Add("destinationEntityId", q.DestinationAirport.Navigation.EntityID).
		Add("date", q.Date).
		Add("returnDate", returnDate).
		Add("cabinClass", q.CabinClass).
		Add("adults", strconv.Itoa(q.Adults)).
		Add("childrens", strconv.Itoa(q.Children)).
		Add("infants", strconv.Itoa(q.Infants)).
		Add("roundTrip", strconv.FormatBool(q.RoundTrip)).
		Add("sortBy", q.SortBy).
		Add("currency", q.Currency).
		Add("market", q.Market).
		Add("countryCode", q.CountryCode)

	return "/search-results?" + p.Encode(), nil
}
