// Package usecase contains the application logic of the flight ticket alarm:
// request normalization, offer search orchestration, and the conversational
// search flow. It depends only on domain ports, never on transport details.
package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cast"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// SearchDefaults is the route substituted when a caller supplies no flight
// data at all.
type SearchDefaults struct {
	Origin      string
	Destination string
}

// passenger input keys with their default counts.
var passengerDefaults = []struct {
	key string
	def int
}{
	{key: "adults", def: 1},
	{key: "children", def: 0},
	{key: "infants_in_seat", def: 0},
	{key: "infants_on_lap", def: 0},
}

// Normalize converts loosely-typed search input into a canonical
// SearchRequest. Missing flight data falls back to a single default leg
// departing today; unknown trip and seat values fall back to one-way and
// economy. Passenger counts are coerced to integers and fail with a wrapped
// domain.ErrInvalidRequest when they cannot be. A round-trip request with a
// single leg must carry a return date; its absence is an error, not a
// default.
func Normalize(in domain.SearchInput, now time.Time, defaults SearchDefaults) (domain.SearchRequest, error) {
	legs := normalizeLegs(in.FlightData, now, defaults)
	trip := domain.ParseTripType(in.Trip)
	cabin := domain.ParseCabin(in.Seat)

	passengers, err := normalizePassengers(in.Passengers)
	if err != nil {
		return domain.SearchRequest{}, err
	}

	switch trip {
	case domain.TripRoundTrip:
		if len(legs) < 2 {
			if in.ReturnDate == "" {
				return domain.SearchRequest{}, fmt.Errorf("%w: round-trip requires a return date", domain.ErrInvalidRequest)
			}
			// Synthesize the return leg with swapped endpoints.
			legs = append(legs, domain.Leg{
				Date:        in.ReturnDate,
				Origin:      legs[0].Destination,
				Destination: legs[0].Origin,
			})
		}
		legs = legs[:2]
	default:
		legs = legs[:1]
	}

	req := domain.SearchRequest{
		Legs:       legs,
		Trip:       trip,
		Cabin:      cabin,
		Passengers: passengers,
	}

	if err := req.Validate(); err != nil {
		return domain.SearchRequest{}, err
	}
	return req, nil
}

func normalizeLegs(raw []domain.FlightDataInput, now time.Time, defaults SearchDefaults) []domain.Leg {
	if len(raw) == 0 {
		return []domain.Leg{{
			Date:        now.Format("2006-01-02"),
			Origin:      defaults.Origin,
			Destination: defaults.Destination,
		}}
	}

	legs := make([]domain.Leg, 0, len(raw))
	for _, f := range raw {
		legs = append(legs, domain.Leg{
			Date:        strings.TrimSpace(f.Date),
			Origin:      strings.ToUpper(strings.TrimSpace(f.FromAirport)),
			Destination: strings.ToUpper(strings.TrimSpace(f.ToAirport)),
		})
	}
	return legs
}

func normalizePassengers(raw map[string]any) (domain.Passengers, error) {
	counts := make(map[string]int, len(passengerDefaults))

	for _, field := range passengerDefaults {
		counts[field.key] = field.def

		value, ok := raw[field.key]
		if !ok {
			continue
		}
		n, err := cast.ToIntE(value)
		if err != nil {
			return domain.Passengers{}, fmt.Errorf("%w: passenger count %q must be a number, got %v", domain.ErrInvalidRequest, field.key, value)
		}
		counts[field.key] = n
	}

	return domain.Passengers{
		Adults:        counts["adults"],
		Children:      counts["children"],
		InfantsInSeat: counts["infants_in_seat"],
		InfantsOnLap:  counts["infants_on_lap"],
	}, nil
}
