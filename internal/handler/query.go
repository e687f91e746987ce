package handler

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/query"
)

// EntryView is the landing state: a fresh query plus the visitor's saved
// recents and theme.
type EntryView struct {
	Query          models.Query     `json:"query"`
	RecentSearches []models.Airport `json:"recentSearches"`
	Theme          string           `json:"theme"`
}

// Entry resets the session's query and returns the landing state. Storage
// failures degrade to empty recents and the default theme.
func (h *Handler) Entry(c echo.Context) error {
	s := h.session(c)
	ctx := c.Request().Context()

	s.Query.Reset()
	s.Calendar.Reset()

	recents, err := h.store.RecentAirports(ctx, s.ID)
	if err != nil {
		log.Printf("recent airports load failed: %v", err)
		recents = nil
	}
	theme, err := h.store.Theme(ctx, s.ID)
	if err != nil {
		log.Printf("theme load failed: %v", err)
		theme = "light"
	}

	if recents == nil {
		recents = []models.Airport{}
	}
	return c.JSON(http.StatusOK, EntryView{
		Query:          s.Query.Query(),
		RecentSearches: recents,
		Theme:          theme,
	})
}

// UpdateQuery merges a sparse update into the session's query and returns
// the resulting state.
func (h *Handler) UpdateQuery(c echo.Context) error {
	s := h.session(c)

	var p query.Partial
	if err := c.Bind(&p); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	s.Query.Set(p)
	return c.JSON(http.StatusOK, s.Query.Query())
}

func (h *Handler) ResetQuery(c echo.Context) error {
	s := h.session(c)
	s.Query.Reset()
	s.Calendar.Reset()
	return c.JSON(http.StatusOK, s.Query.Query())
}

type passengerRequest struct {
	Kind  query.PassengerKind `json:"kind"`
	Delta int                 `json:"delta"`
}

// AdjustPassengers steps one passenger count up or down; the store clamps
// at the lower bounds.
func (h *Handler) AdjustPassengers(c echo.Context) error {
	s := h.session(c)

	var req passengerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	switch req.Kind {
	case query.Adults, query.Children, query.Infants:
	default:
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "unknown passenger kind: " + string(req.Kind),
			Code:    http.StatusBadRequest,
		})
	}

	s.Query.AdjustPassengers(req.Kind, req.Delta)
	return c.JSON(http.StatusOK, s.Query.Query())
}

// ExecuteSearch validates the session's query and redirects to the results
// view. An incomplete query is rejected without side effects.
func (h *Handler) ExecuteSearch(c echo.Context) error {
	s := h.session(c)

	u, err := query.SearchURL(s.Query.Query())
	if err != nil {
		return c.JSON(http.StatusUnprocessableEntity, models.ErrorResponse{
			Error:   "invalid_query",
			Message: err.Error(),
			Code:    http.StatusUnprocessableEntity,
		})
	}
	return c.Redirect(http.StatusSeeOther, u)
}

type themeRequest struct {
	Theme string `json:"theme"`
}

// SetTheme persists the visitor's theme choice. A storage failure is
// logged, not surfaced; the choice still applies for the response.
func (h *Handler) SetTheme(c echo.Context) error {
	s := h.session(c)

	var req themeRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	if req.Theme != "light" && req.Theme != "dark" {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "theme must be light or dark",
			Code:    http.StatusBadRequest,
		})
	}

	if err := h.store.SetTheme(c.Request().Context(), s.ID, req.Theme); err != nil {
		log.Printf("theme save failed: %v", err)
	}
	return c.JSON(http.StatusOK, map[string]string{"theme": req.Theme})
}
