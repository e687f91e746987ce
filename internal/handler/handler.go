// Package handler exposes the search workflow over HTTP: the entry view,
// query editing, airport lookup, the price calendar, search execution,
// result filtering and the flight details view. Every endpoint resolves the
// caller's session first, so all interactive state is per-visitor.
package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/cache"
	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/session"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
	"github.com/skysearch-dev/skysearch/internal/storage"
)

const sessionCookie = "sid"

// FlightAPI is the upstream surface the handlers depend on.
type FlightAPI interface {
	SearchAirport(ctx context.Context, query string) ([]models.Airport, error)
	PriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, currency string) (map[string]float64, error)
	SearchFlights(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, error)
	FlightDetails(ctx context.Context, p skyapi.DetailParams) (*models.FlightDetail, error)
}

type Handler struct {
	sessions *session.Manager
	api      FlightAPI
	cache    cache.Cache
	store    storage.Store
}

func New(sessions *session.Manager, api FlightAPI, c cache.Cache, store storage.Store) *Handler {
	return &Handler{
		sessions: sessions,
		api:      api,
		cache:    c,
		store:    store,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/", h.Entry)
	e.GET("/search-results", h.Results)
	e.GET("/flight-details", h.Details)
	e.GET("/health", HealthHandler)

	api := e.Group("/api/v1")
	api.PATCH("/query", h.UpdateQuery)
	api.POST("/query/reset", h.ResetQuery)
	api.POST("/query/passengers", h.AdjustPassengers)
	api.GET("/airports/search", h.SearchAirports)
	api.POST("/airports/select", h.SelectAirport)
	api.GET("/airports/recent", h.RecentAirports)
	api.GET("/calendar", h.CalendarState)
	api.POST("/calendar/open", h.OpenCalendar)
	api.POST("/calendar/close", h.CloseCalendar)
	api.POST("/calendar/next", h.CalendarNextMonth)
	api.POST("/calendar/prev", h.CalendarPrevMonth)
	api.POST("/calendar/select", h.SelectDate)
	api.POST("/calendar/reset", h.ResetDates)
	api.POST("/search", h.ExecuteSearch)
	api.POST("/filters", h.UpdateFilters)
	api.POST("/results/more", h.ShowMore)
	api.POST("/theme", h.SetTheme)
}

// session returns the caller's session, creating one (and setting the
// cookie) on first contact or after the old session was swept.
func (h *Handler) session(c echo.Context) *session.Session {
	if cookie, err := c.Cookie(sessionCookie); err == nil {
		if s, ok := h.sessions.Get(cookie.Value); ok {
			return s
		}
	}

	s := h.sessions.Create()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookie,
		Value:    s.ID,
		Path:     "/",
		HttpOnly: true,
	})
	return s
}

func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}
