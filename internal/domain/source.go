package domain

//go:generate mockgen -source=source.go -destination=mock_source.go -package=domain

import (
	"context"
	"time"
)

// OfferSource is the port to an upstream flight-offer provider. A zero-result
// response is a valid empty success, not an error; transport, auth, and
// rate-limit failures surface as *SourceError. Implementations make exactly
// one attempt per call.
type OfferSource interface {
	// Search issues the normalized request and returns the raw offers.
	Search(ctx context.Context, req SearchRequest) ([]Offer, error)
}

// Flight is a single scraped flight result from a per-airline scraper.
type Flight struct {
	FlightNumber   string    `json:"flight_number"`
	Departure      string    `json:"departure"`
	Arrival        string    `json:"arrival"`
	DepartureTime  time.Time `json:"departure_time"`
	ArrivalTime    time.Time `json:"arrival_time"`
	Price          float64   `json:"price"`
	Currency       string    `json:"currency"`
	Airline        string    `json:"airline"`
	AvailableSeats *int      `json:"available_seats,omitempty"`
}

// FlightScraper is the port to a per-airline web scraper. Current
// implementations return ErrNotImplemented; the route layer must surface
// that as a user-visible message, not a server failure.
type FlightScraper interface {
	// Name returns the scraper's unique identifier.
	Name() string

	// Search scrapes flights for the given route and departure date.
	Search(ctx context.Context, origin, destination string, date time.Time) ([]Flight, error)
}
