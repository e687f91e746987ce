package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/detail"
	"github.com/skysearch-dev/skysearch/internal/filter"
	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/session"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
	"github.com/skysearch-dev/skysearch/pkg/format"
)

// ItineraryView decorates one itinerary with its details-view URL and
// display strings for the first leg.
type ItineraryView struct {
	models.Itinerary
	DetailsURL       string `json:"detailsUrl"`
	DurationDisplay  string `json:"durationDisplay"`
	DepartureDisplay string `json:"departureDisplay"`
	ArrivalDisplay   string `json:"arrivalDisplay"`
}

// ResultsView is the filtered, progressively revealed search outcome.
type ResultsView struct {
	SessionID      string             `json:"sessionId"`
	TotalResults   int                `json:"totalResults"`
	VisibleResults int                `json:"visibleResults"`
	HasMore        bool               `json:"hasMore"`
	PriceBounds    [2]float64         `json:"priceBounds"`
	DurationBounds [2]int             `json:"durationBounds"`
	Criteria       filter.Criteria    `json:"criteria"`
	FilterStats    models.FilterStats `json:"filterStats"`
	Itineraries    []ItineraryView    `json:"itineraries"`
}

// Results executes (or replays from cache) one search and renders the
// result list. The query parameters are trusted as-is: the URL is built by
// ExecuteSearch, but it is also shareable, so presence of the route and
// date is re-checked here.
func (h *Handler) Results(c echo.Context) error {
	s := h.session(c)
	ctx := c.Request().Context()

	p := searchParamsFrom(c)
	if p.OriginSkyID == "" || p.DestinationSkyID == "" ||
		p.OriginEntityID == "" || p.DestinationEntityID == "" || p.Date == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "originSkyId, originEntityId, destinationSkyId, destinationEntityId and date are required",
			Code:    http.StatusBadRequest,
		})
	}

	results, found := h.cache.Get(ctx, p)
	if !found {
		var err error
		results, err = h.api.SearchFlights(ctx, p)
		if err != nil {
			return c.JSON(http.StatusBadGateway, models.ErrorResponse{
				Error:   "search_error",
				Message: "Failed to search flights: " + err.Error(),
				Code:    http.StatusBadGateway,
			})
		}
		_ = h.cache.Set(ctx, p, results)
	}

	sessionID := results.SessionID
	if sessionID == "" {
		sessionID = results.Data.Context.SessionID
	}

	s.Results.SetItineraries(results.Data.Itineraries)
	s.SetSearchContext(sessionID, results.Data.FilterStats, detail.ViewerParams{
		Adults:      p.Adults,
		Children:    p.Children,
		Infants:     p.Infants,
		Currency:    p.Currency,
		Market:      p.Market,
		CabinClass:  p.CabinClass,
		CountryCode: p.CountryCode,
	})

	return c.JSON(http.StatusOK, resultsView(s))
}

type filterRequest struct {
	PriceRange    *[2]float64 `json:"priceRange"`
	DurationRange *[2]int     `json:"durationRange"`
	Stops         *[]int      `json:"stops"`
	Airlines      *[]int      `json:"airlines"`
}

// UpdateFilters applies a sparse criteria update to the last result set and
// re-renders the view without refetching. The reveal window is left where
// it is; only a fresh result list resets it.
func (h *Handler) UpdateFilters(c echo.Context) error {
	s := h.session(c)

	var req filterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	if req.PriceRange != nil {
		s.Results.SetPriceRange(req.PriceRange[0], req.PriceRange[1])
	}
	if req.DurationRange != nil {
		s.Results.SetDurationRange(req.DurationRange[0], req.DurationRange[1])
	}
	if req.Stops != nil {
		s.Results.SetStops(*req.Stops)
	}
	if req.Airlines != nil {
		s.Results.SetAirlines(*req.Airlines)
	}

	return c.JSON(http.StatusOK, resultsView(s))
}

func (h *Handler) ShowMore(c echo.Context) error {
	s := h.session(c)
	s.Results.ShowMore()
	return c.JSON(http.StatusOK, resultsView(s))
}

func resultsView(s *session.Session) ResultsView {
	sessionID, stats, viewer := s.SearchContext()

	visible := s.Results.Visible()
	views := make([]ItineraryView, 0, len(visible))
	for _, it := range visible {
		view := ItineraryView{
			Itinerary:  it,
			DetailsURL: detail.ViewURL(it, sessionID, viewer),
		}
		if len(it.Legs) > 0 {
			view.DurationDisplay = format.Duration(it.Legs[0].DurationInMinutes)
			view.DepartureDisplay = format.Time(it.Legs[0].Departure)
			view.ArrivalDisplay = format.Time(it.Legs[0].Arrival)
		}
		views = append(views, view)
	}

	filtered := s.Results.Filtered()
	return ResultsView{
		SessionID:      sessionID,
		TotalResults:   len(filtered),
		VisibleResults: len(views),
		HasMore:        len(views) < len(filtered),
		PriceBounds:    s.Results.PriceBounds(),
		DurationBounds: s.Results.DurationBounds(),
		Criteria:       s.Results.Criteria(),
		FilterStats:    stats,
		Itineraries:    views,
	}
}

func searchParamsFrom(c echo.Context) skyapi.SearchParams {
	return skyapi.SearchParams{
		OriginSkyID:         c.QueryParam("originSkyId"),
		DestinationSkyID:    c.QueryParam("destinationSkyId"),
		OriginEntityID:      c.QueryParam("originEntityId"),
		DestinationEntityID: c.QueryParam("destinationEntityId"),
		Date:                c.QueryParam("date"),
		ReturnDate:          c.QueryParam("returnDate"),
		CabinClass:          c.QueryParam("cabinClass"),
		Adults:              c.QueryParam("adults"),
		Children:            c.QueryParam("childrens"),
		Infants:             c.QueryParam("infants"),
		SortBy:              c.QueryParam("sortBy"),
		Currency:            c.QueryParam("currency"),
		Market:              c.QueryParam("market"),
		CountryCode:         c.QueryParam("countryCode"),
	}
}
