package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ahwei/flight-ticket-alarm/internal/adapter/provider/scoot"
	"github.com/ahwei/flight-ticket-alarm/internal/adapter/provider/tigerair"
	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/timeutil"
	"github.com/ahwei/flight-ticket-alarm/internal/usecase"
	"github.com/ahwei/flight-ticket-alarm/test/mock"
)

var testNow = time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)

// newServer builds an Echo instance with all routes wired over the given
// offer source.
func newServer(source domain.OfferSource) *echo.Echo {
	uc := usecase.NewFlightSearchUseCase(
		source,
		usecase.SearchDefaults{Origin: "TPE", Destination: "NRT"},
		timeutil.NewMockClock(testNow),
		nil,
	)

	e := echo.New()
	RegisterRoutes(e, NewFlightHandler(uc), NewAirlineHandler(tigerair.NewScraper(), scoot.NewScraper()))
	return e
}

func doRequest(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestSearchFlights_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return([]domain.Offer{{ID: "1"}}, nil)

	e := newServer(source)
	body := `{
		"flight_data": [{"date": "2026-10-01", "from_airport": "TPE", "to_airport": "NRT"}],
		"trip": "one-way",
		"seat": "economy",
		"passengers": {"adults": 1}
	}`

	rec := doRequest(e, http.MethodPost, "/api/flight/search", body)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data"`)
	assert.Contains(t, rec.Body.String(), `"search_criteria"`)
	assert.Contains(t, rec.Body.String(), `"TPE"`)
}

func TestSearchFlights_EmptyBodyUsesDefaults(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.SearchRequest) ([]domain.Offer, error) {
			assert.Equal(t, "TPE", req.Legs[0].Origin)
			assert.Equal(t, "NRT", req.Legs[0].Destination)
			assert.Equal(t, "2026-09-10", req.Legs[0].Date)
			return []domain.Offer{}, nil
		})

	e := newServer(source)

	rec := doRequest(e, http.MethodPost, "/api/flight/search", `{}`)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSearchFlights_RoundTripMissingReturnDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// Validation fails before the source is reached.
	source := domain.NewMockOfferSource(ctrl)
	e := newServer(source)

	body := `{"flight_data": [], "trip": "round-trip", "passengers": {"adults": 2}}`
	rec := doRequest(e, http.MethodPost, "/api/flight/search", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "return date")
}

func TestSearchFlights_NonNumericPassengerCount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	e := newServer(source)

	body := `{"trip": "one-way", "passengers": {"adults": "two"}}`
	rec := doRequest(e, http.MethodPost, "/api/flight/search", body)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "adults")
}

func TestSearchFlights_MalformedBody(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	e := newServer(source)

	rec := doRequest(e, http.MethodPost, "/api/flight/search", `{"trip": `)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid_request")
}

func TestSearchFlights_SourceErrorIs500(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		Return(nil, domain.NewSourceError(domain.SourceRateLimited, "quota exceeded"))

	e := newServer(source)

	rec := doRequest(e, http.MethodPost, "/api/flight/search", `{}`)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "upstream_error")
}

func TestQuickSearch_RendersCards(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	source := domain.NewMockOfferSource(ctrl)
	source.EXPECT().
		Search(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req domain.SearchRequest) ([]domain.Offer, error) {
			assert.Equal(t, domain.TripOneWay, req.Trip)
			assert.Equal(t, "2026-09-10", req.Legs[0].Date)
			return mock.SampleOffers(2), nil
		})

	e := newServer(source)

	rec := doRequest(e, http.MethodGet, "/api/flight", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"cards"`)
	assert.Contains(t, rec.Body.String(), `"search_criteria"`)
	assert.Contains(t, rec.Body.String(), "長榮航空")
}

func TestAirlineEndpoints_NotImplementedIs200(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newServer(domain.NewMockOfferSource(ctrl))

	tests := []struct {
		path string
		want string
	}{
		{"/api/tiger/search", "Tiger Airways"},
		{"/api/scoot/search", "Scoot"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := doRequest(e, http.MethodGet, tt.path, "")
			require.Equal(t, http.StatusOK, rec.Code, "not-implemented must never be a server failure")
			assert.Contains(t, rec.Body.String(), tt.want)
			assert.Contains(t, rec.Body.String(), "not implemented")
		})
	}
}

func TestAirlineEndpoints_BadDate(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newServer(domain.NewMockOfferSource(ctrl))

	rec := doRequest(e, http.MethodGet, "/api/tiger/search?date=tomorrow", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHelloAndHealth(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	e := newServer(domain.NewMockOfferSource(ctrl))

	rec := doRequest(e, http.MethodGet, "/", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello Flight Alarm")

	rec = doRequest(e, http.MethodGet, "/api/hello", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello World")

	rec = doRequest(e, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"ok"`)

	rec = doRequest(e, http.MethodGet, "/api/scoot/hello", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hello from Scoot")
}
