// Package skyapi is the client for the third-party flight-search HTTP API.
// All pricing, itinerary construction and availability happens upstream;
// this client only shapes requests and decodes responses.
package skyapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/params"
	"github.com/skysearch-dev/skysearch/internal/ratelimit"
)

// Endpoint names, also used as rate-limiter keys.
const (
	EndpointSearchAirport = "searchAirport"
	EndpointPriceCalendar = "getPriceCalendar"
	EndpointSearchFlights = "searchFlights"
	EndpointFlightDetails = "getFlightDetails"
)

type Config struct {
	BaseURL string
	Host    string
	APIKey  string
	Timeout time.Duration
}

func DefaultConfig() Config {
	return Config{
		BaseURL: "https://sky-scrapper.p.rapidapi.com/api",
		Host:    "sky-scrapper.p.rapidapi.com",
		Timeout: 15 * time.Second,
	}
}

type Client struct {
	baseURL    string
	headers    map[string]string
	httpClient *http.Client
	limiter    *ratelimit.EndpointLimiter
}

func NewClient(cfg Config, limiter *ratelimit.EndpointLimiter) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		headers: map[string]string{
			"x-rapidapi-host": cfg.Host,
			"x-rapidapi-key":  cfg.APIKey,
		},
		httpClient: &http.Client{Timeout: cfg.Timeout},
		limiter:    limiter,
	}
}

// getJSON issues one GET against the API. There is no automatic retry;
// recovery from upstream failures is always user-initiated.
func (c *Client) getJSON(ctx context.Context, endpoint, path string, p params.Params, v any) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, endpoint); err != nil {
			return NewAPIError(endpoint, err)
		}
	}

	u := c.baseURL + path + "?" + p.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return NewAPIError(endpoint, err)
	}
	for k, val := range c.headers {
		req.Header.Set(k, val)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return NewAPIError(endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return NewAPIError(endpoint, fmt.Errorf("unexpected status %s", resp.Status))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return NewAPIError(endpoint, fmt.Errorf("decoding response: %w", err))
	}

	return nil
}

type airportResponse struct {
	Status bool             `json:"status"`
	Data   []models.Airport `json:"data"`
}

// SearchAirport runs the autocomplete lookup. A response with status=false
// decodes to an empty list, matching how the entry view treats it.
func (c *Client) SearchAirport(ctx context.Context, query string) ([]models.Airport, error) {
	p := params.Params{}.
		Add("query", query).
		Add("locale", "en-US")

	var out airportResponse
	if err := c.getJSON(ctx, EndpointSearchAirport, "/v1/flights/searchAirport", p, &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return []models.Airport{}, nil
	}
	return out.Data, nil
}

type priceCalendarResponse struct {
	Status bool `json:"status"`
	Data   struct {
		Flights struct {
			Days []struct {
				Day   string  `json:"day"`
				Price float64 `json:"price"`
			} `json:"days"`
		} `json:"flights"`
	} `json:"data"`
}

// PriceCalendar returns indicative per-day prices for a route, keyed by
// YYYY-MM-DD day, starting at fromDate.
func (c *Client) PriceCalendar(ctx context.Context, originSkyID, destinationSkyID, fromDate, currency string) (map[string]float64, error) {
	p := params.Params{}.
		Add("originSkyId", originSkyID).
		Add("destinationSkyId", destinationSkyID).
		Add("fromDate", fromDate).
		Add("currency", currency)

	var out priceCalendarResponse
	if err := c.getJSON(ctx, EndpointPriceCalendar, "/v1/flights/getPriceCalendar", p, &out); err != nil {
		return nil, err
	}

	prices := make(map[string]float64, len(out.Data.Flights.Days))
	for _, day := range out.Data.Flights.Days {
		prices[day.Day] = day.Price
	}
	return prices, nil
}

// SearchFlights runs the itinerary search and returns the ordered list plus
// the session identifier the details endpoint needs later.
func (c *Client) SearchFlights(ctx context.Context, p SearchParams) (*models.SearchResults, error) {
	var out models.SearchResults
	if err := c.getJSON(ctx, EndpointSearchFlights, "/v2/flights/searchFlights", p.Values(), &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, NewAPIError(EndpointSearchFlights, fmt.Errorf("upstream reported failure"))
	}
	return &out, nil
}

// FlightDetails fetches booking options for one itinerary.
func (c *Client) FlightDetails(ctx context.Context, p DetailParams) (*models.FlightDetail, error) {
	var out models.FlightDetail
	if err := c.getJSON(ctx, EndpointFlightDetails, "/v1/flights/getFlightDetails", p.Values(), &out); err != nil {
		return nil, err
	}
	if !out.Status {
		return nil, NewAPIError(EndpointFlightDetails, fmt.Errorf("upstream reported failure"))
	}
	return &out, nil
}
