// Package domain contains the core business entities and rules for the
// flight ticket alarm service. These entities are channel-agnostic: both the
// REST API and the chat bot produce and consume them.
package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// TripType identifies a one-way or round-trip search.
type TripType string

// Supported trip types.
const (
	TripOneWay    TripType = "one-way"
	TripRoundTrip TripType = "round-trip"
)

// ParseTripType maps raw input to a TripType. Anything that is not
// "round-trip" (case-insensitive) is treated as one-way, matching the
// permissive behavior callers rely on.
func ParseTripType(raw string) TripType {
	if strings.EqualFold(strings.TrimSpace(raw), string(TripRoundTrip)) {
		return TripRoundTrip
	}
	return TripOneWay
}

// Cabin is the requested travel class.
type Cabin string

// Supported cabin classes.
const (
	CabinEconomy        Cabin = "economy"
	CabinPremiumEconomy Cabin = "premium-economy"
	CabinBusiness       Cabin = "business"
	CabinFirst          Cabin = "first"
)

// cabinCodes maps cabins to the upstream provider's travel class enum.
var cabinCodes = map[Cabin]string{
	CabinEconomy:        "ECONOMY",
	CabinPremiumEconomy: "PREMIUM_ECONOMY",
	CabinBusiness:       "BUSINESS",
	CabinFirst:          "FIRST",
}

// ParseCabin maps raw input to a Cabin, case-insensitively. Unknown values
// fall back to economy rather than erroring.
func ParseCabin(raw string) Cabin {
	c := Cabin(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := cabinCodes[c]; ok {
		return c
	}
	return CabinEconomy
}

// ProviderCode returns the upstream travel-class enum value for the cabin.
func (c Cabin) ProviderCode() string {
	if code, ok := cabinCodes[c]; ok {
		return code
	}
	return "ECONOMY"
}

// Leg is a single flight leg of a search.
type Leg struct {
	// Date is the departure date in YYYY-MM-DD format
	Date string `json:"date"`

	// Origin is the IATA code of the departure airport (e.g., "TPE")
	Origin string `json:"from_airport"`

	// Destination is the IATA code of the arrival airport (e.g., "NRT")
	Destination string `json:"to_airport"`
}

// Passengers holds the passenger counts of a search request. The
// in-seat/on-lap infant distinction is preserved here and only collapsed
// when talking to the upstream source.
type Passengers struct {
	Adults        int `json:"adults"`
	Children      int `json:"children"`
	InfantsInSeat int `json:"infants_in_seat"`
	InfantsOnLap  int `json:"infants_on_lap"`
}

// Infants returns the combined infant count sent upstream.
func (p Passengers) Infants() int {
	return p.InfantsInSeat + p.InfantsOnLap
}

// DefaultPassengers returns the passenger counts applied when none are given.
func DefaultPassengers() Passengers {
	return Passengers{Adults: 1}
}

// SearchRequest is the canonical, fully resolved flight search request.
// It is immutable once built by the normalizer or the conversation flow.
type SearchRequest struct {
	// Legs is ordered: leg 0 is the outbound, leg 1 (round-trip only) the
	// return with origin/destination swapped from leg 0.
	Legs       []Leg      `json:"flight_data"`
	Trip       TripType   `json:"trip"`
	Cabin      Cabin      `json:"seat"`
	Passengers Passengers `json:"passengers"`
}

// airportCodeRegex matches valid IATA airport codes (3 uppercase letters).
var airportCodeRegex = regexp.MustCompile(`^[A-Z]{3}$`)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidAirportCode reports whether raw is a 3-letter code, ignoring case.
func IsValidAirportCode(raw string) bool {
	return airportCodeRegex.MatchString(strings.ToUpper(raw))
}

// IsValidDate reports whether raw is in YYYY-MM-DD format.
func IsValidDate(raw string) bool {
	return dateRegex.MatchString(raw)
}

// ReturnDate returns the return leg's date when the request has one.
func (r SearchRequest) ReturnDate() (string, bool) {
	if len(r.Legs) < 2 {
		return "", false
	}
	return r.Legs[1].Date, true
}

// Validate checks the request's invariants. It returns a wrapped
// ErrInvalidRequest error when one is violated.
func (r SearchRequest) Validate() error {
	if len(r.Legs) == 0 {
		return fmt.Errorf("%w: at least one flight leg is required", ErrInvalidRequest)
	}

	out := r.Legs[0]
	if !dateRegex.MatchString(out.Date) {
		return fmt.Errorf("%w: departure date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, out.Date)
	}
	if !airportCodeRegex.MatchString(out.Origin) {
		return fmt.Errorf("%w: origin must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, out.Origin)
	}
	if !airportCodeRegex.MatchString(out.Destination) {
		return fmt.Errorf("%w: destination must be a valid 3-letter IATA code, got %q", ErrInvalidRequest, out.Destination)
	}

	if r.Trip == TripRoundTrip {
		ret, ok := r.ReturnDate()
		if !ok {
			return fmt.Errorf("%w: round-trip requires a return date", ErrInvalidRequest)
		}
		if !dateRegex.MatchString(ret) {
			return fmt.Errorf("%w: return date must be in YYYY-MM-DD format, got %q", ErrInvalidRequest, ret)
		}
	}

	p := r.Passengers
	if p.Adults < 0 || p.Children < 0 || p.InfantsInSeat < 0 || p.InfantsOnLap < 0 {
		return fmt.Errorf("%w: passenger counts cannot be negative", ErrInvalidRequest)
	}

	return nil
}

// FlightDataInput is one raw flight leg as supplied by a caller.
type FlightDataInput struct {
	Date        string `json:"date"`
	FromAirport string `json:"from_airport"`
	ToAirport   string `json:"to_airport"`
}

// SearchInput is the loosely-typed inbound search shape accepted by the API.
// Passenger counts are deliberately untyped; the normalizer coerces them.
type SearchInput struct {
	FlightData []FlightDataInput `json:"flight_data"`
	Trip       string            `json:"trip"`
	Seat       string            `json:"seat"`
	Passengers map[string]any    `json:"passengers"`
	ReturnDate string            `json:"return_date,omitempty"`
}
