package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/query"
	"github.com/skysearch-dev/skysearch/internal/storage"
)

type airportList struct {
	Airports []models.Airport `json:"airports"`
}

// SearchAirports runs the debounced lookup for one field. Rapid repeat
// calls for the same field supersede each other; only the latest text
// produces suggestions.
func (h *Handler) SearchAirports(c echo.Context) error {
	s := h.session(c)

	searcher := s.Origin
	if c.QueryParam("field") == "destination" {
		searcher = s.Destination
	}

	airports := searcher.Search(c.Request().Context(), c.QueryParam("query"))
	if airports == nil {
		airports = []models.Airport{}
	}
	return c.JSON(http.StatusOK, airportList{Airports: airports})
}

type selectAirportRequest struct {
	Field   string         `json:"field"`
	Airport models.Airport `json:"airport"`
}

// SelectAirport commits a suggestion to the query and pushes it to the
// front of the recents list. A failed save keeps the selection; it is
// logged and the updated list is still returned.
func (h *Handler) SelectAirport(c echo.Context) error {
	s := h.session(c)
	ctx := c.Request().Context()

	var req selectAirportRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if req.Airport.SkyID == "" || req.Airport.EntityID == "" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "airport is missing identifiers",
			Code:    http.StatusBadRequest,
		})
	}

	airport := req.Airport
	if req.Field == "destination" {
		s.Query.Set(query.Partial{DestinationAirport: &airport})
	} else {
		s.Query.Set(query.Partial{OriginAirport: &airport})
	}

	recents, err := h.store.RecentAirports(ctx, s.ID)
	if err != nil {
		log.Printf("recent airports load failed: %v", err)
		recents = nil
	}
	recents = storage.PushRecent(recents, airport)
	if err := h.store.SaveRecentAirports(ctx, s.ID, recents); err != nil {
		log.Printf("recent airports save failed: %v", err)
	}

	return c.JSON(http.StatusOK, airportList{Airports: recents})
}

func (h *Handler) RecentAirports(c echo.Context) error {
	s := h.session(c)

	recents, err := h.store.RecentAirports(c.Request().Context(), s.ID)
	if err != nil {
		log.Printf("recent airports load failed: %v", err)
		recents = nil
	}
	if recents == nil {
		recents = []models.Airport{}
	}
	return c.JSON(http.StatusOK, airportList{Airports: recents})
}
