package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/skysearch-dev/skysearch/internal/detail"
	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
	"github.com/skysearch-dev/skysearch/pkg/format"
)

// DetailLegView decorates one leg of the detail response with display
// strings.
type DetailLegView struct {
	models.DetailLeg
	DurationDisplay  string `json:"durationDisplay"`
	DepartureDisplay string `json:"departureDisplay"`
	ArrivalDisplay   string `json:"arrivalDisplay"`
}

// BookingOption is one agent offer, flattened for display.
type BookingOption struct {
	Agent        string  `json:"agent"`
	URL          string  `json:"url"`
	Price        float64 `json:"price"`
	PriceDisplay string  `json:"priceDisplay"`
	Rating       float64 `json:"rating"`
}

type DetailView struct {
	ItineraryID      string          `json:"itineraryId"`
	TotalPrice       float64         `json:"totalPrice"`
	PriceDisplay     string          `json:"priceDisplay"`
	Legs             []DetailLegView `json:"legs"`
	BookingOptions   []BookingOption `json:"bookingOptions"`
	PollingCompleted bool            `json:"pollingCompleted"`
	DestinationImage string          `json:"destinationImage"`
}

// Details renders one itinerary in full. A request missing any required
// parameter is sent back to the entry view instead of being half-rendered.
func (h *Handler) Details(c echo.Context) error {
	if missing := detail.MissingParams(c.QueryParam); len(missing) > 0 {
		return c.Redirect(http.StatusFound, "/")
	}

	p := skyapi.DetailParams{
		ItineraryID: c.QueryParam("itineraryId"),
		SessionID:   c.QueryParam("sessionId"),
		Legs:        c.QueryParam("legs"),
		Adults:      c.QueryParam("adults"),
		Currency:    c.QueryParam("currency"),
		CabinClass:  c.QueryParam("cabinClass"),
		CountryCode: c.QueryParam("countryCode"),
	}

	d, err := h.api.FlightDetails(c.Request().Context(), p)
	if err != nil {
		return c.JSON(http.StatusBadGateway, models.ErrorResponse{
			Error:   "detail_error",
			Message: "Failed to load flight details: " + err.Error(),
			Code:    http.StatusBadGateway,
		})
	}

	return c.JSON(http.StatusOK, detailView(p.ItineraryID, d))
}

func detailView(itineraryID string, d *models.FlightDetail) DetailView {
	it := d.Data.Itinerary

	legs := make([]DetailLegView, 0, len(it.Legs))
	for _, leg := range it.Legs {
		legs = append(legs, DetailLegView{
			DetailLeg:        leg,
			DurationDisplay:  format.Duration(leg.Duration),
			DepartureDisplay: format.Time(leg.Departure),
			ArrivalDisplay:   format.Time(leg.Arrival),
		})
	}

	var total float64
	var options []BookingOption
	if len(it.PricingOptions) > 0 {
		total = it.PricingOptions[0].TotalPrice
		for _, opt := range it.PricingOptions {
			for _, agent := range opt.Agents {
				options = append(options, BookingOption{
					Agent:        agent.Name,
					URL:          agent.URL,
					Price:        opt.TotalPrice,
					PriceDisplay: format.Currency(opt.TotalPrice),
					Rating:       agent.Rating.Value,
				})
			}
		}
	}

	return DetailView{
		ItineraryID:      itineraryID,
		TotalPrice:       total,
		PriceDisplay:     format.Currency(total),
		Legs:             legs,
		BookingOptions:   options,
		PollingCompleted: d.Data.PollingCompleted,
		DestinationImage: it.DestinationImage,
	}
}
