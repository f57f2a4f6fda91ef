// Package http provides the HTTP handler layer for the flight ticket API.
// It handles request parsing, response formatting, and error mapping.
package http

import (
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ahwei/flight-ticket-alarm/internal/adapter/http/response"
	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/render"
	"github.com/ahwei/flight-ticket-alarm/internal/usecase"
)

// FlightHandler handles HTTP requests for flight search endpoints.
type FlightHandler struct {
	useCase usecase.FlightSearchUseCase
}

// NewFlightHandler creates a new FlightHandler with the given use case.
func NewFlightHandler(uc usecase.FlightSearchUseCase) *FlightHandler {
	return &FlightHandler{useCase: uc}
}

// SearchFlights handles POST /api/flight/search.
func (h *FlightHandler) SearchFlights(c echo.Context) error {
	var req SearchFlightsRequest

	if err := c.Bind(&req); err != nil {
		return response.InvalidRequestBody(c)
	}

	result, err := h.useCase.Search(c.Request().Context(), ToSearchInput(&req))
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, ToSearchResponseDTO(result))
}

// QuickSearch handles GET /api/flight: the demo search with default route,
// today's date, one adult in economy. Unlike the API search it returns the
// rendered cards, the same view the chat carousel is built from.
func (h *FlightHandler) QuickSearch(c echo.Context) error {
	result, err := h.useCase.QuickSearch(c.Request().Context())
	if err != nil {
		return h.handleError(c, err)
	}

	return response.OK(c, map[string]any{
		"search_criteria": result.Request,
		"cards":           render.DecodeOffers(result.Offers),
	})
}

// Root handles GET /.
func (h *FlightHandler) Root(c echo.Context) error {
	return response.Message(c, "Hello Flight Alarm")
}

// Hello handles GET /api/hello.
func (h *FlightHandler) Hello(c echo.Context) error {
	return response.Message(c, "Hello World")
}

// Health handles GET /health.
func (h *FlightHandler) Health(c echo.Context) error {
	return response.Health(c)
}

// handleError maps domain errors to appropriate HTTP responses.
func (h *FlightHandler) handleError(c echo.Context, err error) error {
	if domain.IsInvalidRequest(err) {
		return response.ValidationErrorWithMessage(c, err.Error())
	}

	if se, ok := domain.AsSourceError(err); ok {
		return response.UpstreamError(c, se.Error())
	}

	return response.InternalServerError(c)
}

// AirlineHandler handles HTTP requests for per-airline scraper endpoints.
type AirlineHandler struct {
	tiger domain.FlightScraper
	scoot domain.FlightScraper
}

// NewAirlineHandler creates a new AirlineHandler.
func NewAirlineHandler(tiger, scoot domain.FlightScraper) *AirlineHandler {
	return &AirlineHandler{tiger: tiger, scoot: scoot}
}

// SearchTiger handles GET /api/tiger/search.
func (h *AirlineHandler) SearchTiger(c echo.Context) error {
	return h.search(c, h.tiger)
}

// SearchScoot handles GET /api/scoot/search.
func (h *AirlineHandler) SearchScoot(c echo.Context) error {
	return h.search(c, h.scoot)
}

// HelloScoot handles GET /api/scoot/hello.
func (h *AirlineHandler) HelloScoot(c echo.Context) error {
	return response.Message(c, "Hello from Scoot")
}

// search runs a scraper and maps its errors. A scraper reporting
// ErrNotImplemented is a user-visible message, not a server failure.
func (h *AirlineHandler) search(c echo.Context, scraper domain.FlightScraper) error {
	origin := c.QueryParam("from")
	destination := c.QueryParam("to")

	date := time.Now()
	if raw := c.QueryParam("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return response.ValidationErrorWithMessage(c, "date must be YYYY-MM-DD")
		}
		date = parsed
	}

	flights, err := scraper.Search(c.Request().Context(), origin, destination, date)
	if err != nil {
		if domain.IsNotImplemented(err) {
			return response.Message(c, err.Error())
		}
		return response.InternalServerError(c)
	}

	return response.OK(c, map[string]any{"data": flights})
}
