package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skysearch-dev/skysearch/internal/calendar"
	"github.com/skysearch-dev/skysearch/internal/filter"
	"github.com/skysearch-dev/skysearch/internal/lookup"
	"github.com/skysearch-dev/skysearch/internal/models"
	"github.com/skysearch-dev/skysearch/internal/query"
	"github.com/skysearch-dev/skysearch/internal/session"
	"github.com/skysearch-dev/skysearch/internal/skyapi"
	"github.com/skysearch-dev/skysearch/internal/storage"
)

type fakeAPI struct {
	airports     []models.Airport
	prices       map[string]float64
	searchResult *models.SearchResults
	searchErr    error
	searchCalls  int
	detailResult *models.FlightDetail
	detailErr    error
	lastSearch   skyapi.SearchParams
	lastDetail   skyapi.DetailParams
}

func (f *fakeAPI) SearchAirport(ctx context.Context, q string) ([]models.Airport, error) {
	return f.airports, nil
}

func (f *fakeAPI) PriceCalendar(ctx context.Context, o, d, from, currency string) (map[string]float64, error) {
	return f.prices, nil
}

func (f *fakeAPI) SearchFlights(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, error) {
	f.searchCalls++
	f.lastSearch = p
	return f.searchResult, f.searchErr
}

func (f *fakeAPI) FlightDetails(ctx context.Context, p skyapi.DetailParams) (*models.FlightDetail, error) {
	f.lastDetail = p
	return f.detailResult, f.detailErr
}

type fakeCache struct {
	entries map[string]*models.SearchResults
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string]*models.SearchResults)}
}

func (f *fakeCache) Get(ctx context.Context, p skyapi.SearchParams) (*models.SearchResults, bool) {
	r, ok := f.entries[p.Values().Encode()]
	return r, ok
}

func (f *fakeCache) Set(ctx context.Context, p skyapi.SearchParams, r *models.SearchResults) error {
	f.entries[p.Values().Encode()] = r
	return nil
}

func (f *fakeCache) Close() error { return nil }

type fixture struct {
	handler  *Handler
	echo     *echo.Echo
	api      *fakeAPI
	store    *storage.MemoryStore
	sessions *session.Manager
	sid      string
}

func newFixture(t *testing.T, api *fakeAPI) *fixture {
	t.Helper()

	store := storage.NewMemoryStore()
	sessions := session.NewManager(func(id string) *session.Session {
		q := query.NewStore()
		return &session.Session{
			Query:       q,
			Origin:      lookup.NewSearcher(api, time.Millisecond),
			Destination: lookup.NewSearcher(api, time.Millisecond),
			Calendar:    calendar.NewPicker(q, api),
			Results:     filter.NewPipeline(),
		}
	}, time.Hour)

	h := New(sessions, api, newFakeCache(), store)
	e := echo.New()
	h.Register(e)

	return &fixture{
		handler:  h,
		echo:     e,
		api:      api,
		store:    store,
		sessions: sessions,
		sid:      sessions.Create().ID,
	}
}

func (f *fixture) do(method, target string, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.AddCookie(&http.Cookie{Name: sessionCookie, Value: f.sid})
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func (f *fixture) session(t *testing.T) *session.Session {
	t.Helper()
	s, ok := f.sessions.Get(f.sid)
	require.True(t, ok)
	return s
}

func jfk() models.Airport {
	return models.Airport{
		SkyID:    "JFK",
		EntityID: "95565058",
		Presentation: models.Presentation{
			Title:    "New York John F. Kennedy",
			Subtitle: "United States",
		},
		Navigation: models.Navigation{EntityID: "95565058"},
	}
}

func lax() models.Airport {
	return models.Airport{
		SkyID:      "LAX",
		EntityID:   "95565055",
		Navigation: models.Navigation{EntityID: "95565055"},
	}
}

func itinerary(id string, price float64, duration int) models.Itinerary {
	return models.Itinerary{
		ID:    id,
		Price: models.Price{Raw: price},
		Legs: []models.Leg{{
			ID:                "leg-" + id,
			Origin:            models.Place{ID: "JFK"},
			Destination:       models.Place{ID: "LAX"},
			DurationInMinutes: duration,
			Departure:         "2025-06-03T08:30:00",
			Arrival:           "2025-06-03T11:45:00",
			Carriers:          models.Carriers{Marketing: []models.Carrier{{ID: -32171}}},
		}},
	}
}

func searchResults(itineraries ...models.Itinerary) *models.SearchResults {
	return &models.SearchResults{
		Status:    true,
		SessionID: "search-session-1",
		Data: models.SearchData{
			Itineraries: itineraries,
			Context:     models.SearchContext{TotalResults: len(itineraries)},
			FilterStats: models.FilterStats{
				Carriers: []models.Carrier{{ID: -32171, Name: "Delta"}},
			},
		},
	}
}

const resultsPath = "/search-results?originSkyId=JFK&originEntityId=95565058&destinationSkyId=LAX&destinationEntityId=95565055&date=2025-06-03&returnDate=&cabinClass=economy&adults=1&childrens=0&infants=0&roundTrip=false&sortBy=best&currency=USD&market=en-US&countryCode=US"

func TestEntryReturnsDefaults(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view EntryView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, query.Defaults(), view.Query)
	assert.Equal(t, "light", view.Theme)
	assert.Empty(t, view.RecentSearches)
}

func TestEntryResetsQuery(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	origin := jfk()
	f.session(t).Query.Set(query.Partial{OriginAirport: &origin})

	f.do(http.MethodGet, "/", "")
	assert.Nil(t, f.session(t).Query.Query().OriginAirport)
}

func TestEntryCreatesSessionWithoutCookie(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.NotEmpty(t, cookies[0].Value)
}

func TestUpdateQueryMergesFields(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodPatch, "/api/v1/query", `{"cabinClass":"business","adults":2}`)
	require.Equal(t, http.StatusOK, rec.Code)

	q := f.session(t).Query.Query()
	assert.Equal(t, models.CabinBusiness, q.CabinClass)
	assert.Equal(t, 2, q.Adults)
	assert.Equal(t, "USD", q.Currency)
}

func TestUpdateQueryOneWayClearsReturnDate(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	f.do(http.MethodPatch, "/api/v1/query", `{"returnDate":"2025-06-10"}`)
	f.do(http.MethodPatch, "/api/v1/query", `{"roundTrip":false}`)

	q := f.session(t).Query.Query()
	assert.False(t, q.RoundTrip)
	assert.Empty(t, q.ReturnDate)
}

func TestAdjustPassengers(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	f.do(http.MethodPost, "/api/v1/query/passengers", `{"kind":"adults","delta":1}`)
	assert.Equal(t, 2, f.session(t).Query.Query().Adults)

	// clamp at the floor
	f.do(http.MethodPost, "/api/v1/query/passengers", `{"kind":"infants","delta":-1}`)
	assert.Equal(t, 0, f.session(t).Query.Query().Infants)

	rec := f.do(http.MethodPost, "/api/v1/query/passengers", `{"kind":"pets","delta":1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExecuteSearchIncompleteQuery(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodPost, "/api/v1/search", "")
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "invalid_query", resp.Error)
}

func TestExecuteSearchRedirects(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	origin, dest := jfk(), lax()
	date, rt := "2025-06-03", false
	f.session(t).Query.Set(query.Partial{
		OriginAirport:      &origin,
		DestinationAirport: &dest,
		Date:               &date,
		RoundTrip:          &rt,
	})

	rec := f.do(http.MethodPost, "/api/v1/search", "")
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, resultsPath, rec.Header().Get(echo.HeaderLocation))
}

func TestSelectAirportSetsQueryAndRecents(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	body, err := json.Marshal(selectAirportRequest{Field: "origin", Airport: jfk()})
	require.NoError(t, err)

	rec := f.do(http.MethodPost, "/api/v1/airports/select", string(body))
	require.Equal(t, http.StatusOK, rec.Code)

	q := f.session(t).Query.Query()
	require.NotNil(t, q.OriginAirport)
	assert.Equal(t, "JFK", q.OriginAirport.SkyID)

	recents, err := f.store.RecentAirports(context.Background(), f.sid)
	require.NoError(t, err)
	require.Len(t, recents, 1)
	assert.Equal(t, "JFK", recents[0].SkyID)
}

func TestSelectAirportDestinationField(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	body, err := json.Marshal(selectAirportRequest{Field: "destination", Airport: lax()})
	require.NoError(t, err)

	f.do(http.MethodPost, "/api/v1/airports/select", string(body))

	q := f.session(t).Query.Query()
	assert.Nil(t, q.OriginAirport)
	require.NotNil(t, q.DestinationAirport)
	assert.Equal(t, "LAX", q.DestinationAirport.SkyID)
}

func TestSelectAirportRejectsMissingIdentifiers(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodPost, "/api/v1/airports/select", `{"field":"origin","airport":{"skyId":"JFK"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSearchAirports(t *testing.T) {
	f := newFixture(t, &fakeAPI{airports: []models.Airport{jfk()}})

	rec := f.do(http.MethodGet, "/api/v1/airports/search?field=origin&query=new+york", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp airportList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Airports, 1)
	assert.Equal(t, "JFK", resp.Airports[0].SkyID)
}

func TestSearchAirportsBlankQuery(t *testing.T) {
	f := newFixture(t, &fakeAPI{airports: []models.Airport{jfk()}})

	rec := f.do(http.MethodGet, "/api/v1/airports/search?field=origin&query=+", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp airportList
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Airports)
}

func TestResultsRequiresRoute(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodGet, "/search-results?originSkyId=JFK", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, f.api.searchCalls)
}

func TestResultsFetchesAndRenders(t *testing.T) {
	api := &fakeAPI{searchResult: searchResults(
		itinerary("it-1", 120, 180),
		itinerary("it-2", 450, 300),
	)}
	f := newFixture(t, api)

	rec := f.do(http.MethodGet, resultsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view ResultsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "search-session-1", view.SessionID)
	assert.Equal(t, 2, view.TotalResults)
	assert.Equal(t, 2, view.VisibleResults)
	assert.False(t, view.HasMore)
	assert.Equal(t, [2]float64{120, 450}, view.PriceBounds)
	assert.Equal(t, [2]int{180, 300}, view.DurationBounds)

	// upstream filter stats pass through the view untouched
	require.Len(t, view.FilterStats.Carriers, 1)
	assert.Equal(t, "Delta", view.FilterStats.Carriers[0].Name)

	require.Len(t, view.Itineraries, 2)
	first := view.Itineraries[0]
	assert.Equal(t, "3h 0m", first.DurationDisplay)
	assert.Equal(t, "08:30 AM", first.DepartureDisplay)
	assert.Contains(t, first.DetailsURL, "/flight-details?itineraryId=it-1")
	assert.Contains(t, first.DetailsURL, "sessionId=search-session-1")
}

func TestResultsServedFromCache(t *testing.T) {
	api := &fakeAPI{searchResult: searchResults(itinerary("it-1", 120, 180))}
	f := newFixture(t, api)

	f.do(http.MethodGet, resultsPath, "")
	f.do(http.MethodGet, resultsPath, "")
	assert.Equal(t, 1, api.searchCalls)
}

func TestResultsUpstreamFailure(t *testing.T) {
	api := &fakeAPI{searchErr: skyapi.NewAPIError(skyapi.EndpointSearchFlights, assert.AnError)}
	f := newFixture(t, api)

	rec := f.do(http.MethodGet, resultsPath, "")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "search_error", resp.Error)
}

func TestUpdateFiltersNarrowsResults(t *testing.T) {
	api := &fakeAPI{searchResult: searchResults(
		itinerary("it-1", 120, 180),
		itinerary("it-2", 450, 300),
		itinerary("it-3", 300, 240),
	)}
	f := newFixture(t, api)
	f.do(http.MethodGet, resultsPath, "")

	rec := f.do(http.MethodPost, "/api/v1/filters", `{"priceRange":[100,350]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var view ResultsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 2, view.TotalResults)
	assert.Equal(t, [2]float64{100, 350}, view.Criteria.PriceRange)
	// bounds reflect the full set, not the filtered one
	assert.Equal(t, [2]float64{120, 450}, view.PriceBounds)
	assert.Equal(t, 1, f.api.searchCalls)
}

func TestShowMoreExtendsWindow(t *testing.T) {
	itineraries := make([]models.Itinerary, 0, 10)
	for i := 0; i < 10; i++ {
		itineraries = append(itineraries, itinerary(string(rune('a'+i)), 100+float64(i), 120+i))
	}
	api := &fakeAPI{searchResult: searchResults(itineraries...)}
	f := newFixture(t, api)

	rec := f.do(http.MethodGet, resultsPath, "")
	var view ResultsView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 3, view.VisibleResults)
	assert.True(t, view.HasMore)

	rec = f.do(http.MethodPost, "/api/v1/results/more", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 8, view.VisibleResults)

	rec = f.do(http.MethodPost, "/api/v1/results/more", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, 10, view.VisibleResults)
	assert.False(t, view.HasMore)
}

func TestDetailsMissingParamsRedirects(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodGet, "/flight-details?itineraryId=it-1", "")
	require.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/", rec.Header().Get(echo.HeaderLocation))
}

const detailsPath = "/flight-details?itineraryId=it-1&sessionId=s-1&legs=x&adults=1&currency=USD&cabinClass=economy&countryCode=US"

func TestDetailsRenders(t *testing.T) {
	api := &fakeAPI{detailResult: &models.FlightDetail{
		Status: true,
		Data: models.FlightDetailData{
			PollingCompleted: true,
			Itinerary: models.ItineraryDetail{
				Legs: []models.DetailLeg{{
					Duration:  125,
					Departure: "2025-06-03T08:30:00",
					Arrival:   "2025-06-03T10:35:00",
				}},
				PricingOptions: []models.PricingOption{{
					TotalPrice: 1234.5,
					Agents:     []models.Agent{{Name: "Expedia", URL: "https://book.example/1"}},
				}},
			},
		},
	}}
	f := newFixture(t, api)

	rec := f.do(http.MethodGet, detailsPath, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var view DetailView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, "it-1", view.ItineraryID)
	assert.Equal(t, "$1,234.50", view.PriceDisplay)
	assert.True(t, view.PollingCompleted)
	require.Len(t, view.Legs, 1)
	assert.Equal(t, "2h 5m", view.Legs[0].DurationDisplay)
	require.Len(t, view.BookingOptions, 1)
	assert.Equal(t, "Expedia", view.BookingOptions[0].Agent)

	assert.Equal(t, "s-1", f.api.lastDetail.SessionID)
	assert.Equal(t, "x", f.api.lastDetail.Legs)
}

func TestDetailsUpstreamFailure(t *testing.T) {
	api := &fakeAPI{detailErr: skyapi.NewAPIError(skyapi.EndpointFlightDetails, assert.AnError)}
	f := newFixture(t, api)

	rec := f.do(http.MethodGet, detailsPath, "")
	require.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestCalendarSelectCommitsDates(t *testing.T) {
	f := newFixture(t, &fakeAPI{prices: map[string]float64{}})

	origin, dest, rt := jfk(), lax(), true
	f.session(t).Query.Set(query.Partial{OriginAirport: &origin, DestinationAirport: &dest, RoundTrip: &rt})

	f.do(http.MethodPost, "/api/v1/calendar/open", "")

	future := time.Now().AddDate(0, 1, 3).Format("2006-01-02")
	later := time.Now().AddDate(0, 1, 10).Format("2006-01-02")
	f.do(http.MethodPost, "/api/v1/calendar/select", `{"date":"`+future+`"}`)
	rec := f.do(http.MethodPost, "/api/v1/calendar/select", `{"date":"`+later+`"}`)

	var view CalendarView
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))
	assert.Equal(t, future, view.Date)
	assert.Equal(t, later, view.ReturnDate)
}

func TestCalendarSelectRejectsBadDate(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodPost, "/api/v1/calendar/select", `{"date":"June 3rd"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetTheme(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodPost, "/api/v1/theme", `{"theme":"dark"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	theme, err := f.store.Theme(context.Background(), f.sid)
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)

	rec = f.do(http.MethodPost, "/api/v1/theme", `{"theme":"sepia"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	f := newFixture(t, &fakeAPI{})

	rec := f.do(http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
