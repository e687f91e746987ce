package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/session"
)

// CalendarView is the picker state: the visible month, its per-day prices
// and the dates currently committed to the query.
type CalendarView struct {
	Open       bool               `json:"open"`
	Month      string             `json:"month"`
	Prices     map[string]float64 `json:"prices"`
	Date       string             `json:"date"`
	ReturnDate string             `json:"returnDate"`
}

func calendarView(s *session.Session) CalendarView {
	q := s.Query.Query()
	return CalendarView{
		Open:       s.Calendar.IsOpen(),
		Month:      s.Calendar.VisibleMonth().Format("2006-01"),
		Prices:     s.Calendar.Prices(),
		Date:       q.Date,
		ReturnDate: q.ReturnDate,
	}
}

func (h *Handler) CalendarState(c echo.Context) error {
	return c.JSON(http.StatusOK, calendarView(h.session(c)))
}

func (h *Handler) OpenCalendar(c echo.Context) error {
	s := h.session(c)
	s.Calendar.Open(c.Request().Context())
	return c.JSON(http.StatusOK, calendarView(s))
}

func (h *Handler) CloseCalendar(c echo.Context) error {
	s := h.session(c)
	s.Calendar.Close()
	return c.JSON(http.StatusOK, calendarView(s))
}

func (h *Handler) CalendarNextMonth(c echo.Context) error {
	s := h.session(c)
	s.Calendar.NextMonth(c.Request().Context())
	return c.JSON(http.StatusOK, calendarView(s))
}

// CalendarPrevMonth steps back one month; the current month is the floor,
// so the call can be a no-op.
func (h *Handler) CalendarPrevMonth(c echo.Context) error {
	s := h.session(c)
	s.Calendar.PrevMonth(c.Request().Context())
	return c.JSON(http.StatusOK, calendarView(s))
}

type selectDateRequest struct {
	Date string `json:"date"`
}

// SelectDate commits one day from the picker. Departure and return
// ordering, one-way handling and the past-date no-op all live in the
// picker itself.
func (h *Handler) SelectDate(c echo.Context) error {
	s := h.session(c)

	var req selectDateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "Failed to parse request body: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}
	day, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "invalid_request",
			Message: "date must be YYYY-MM-DD: " + err.Error(),
			Code:    http.StatusBadRequest,
		})
	}

	s.Calendar.Select(day)
	return c.JSON(http.StatusOK, calendarView(s))
}

func (h *Handler) ResetDates(c echo.Context) error {
	s := h.session(c)
	s.Calendar.Reset()
	return c.JSON(http.StatusOK, calendarView(s))
}
