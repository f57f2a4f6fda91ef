package http

import (
	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/usecase"
)

// SearchFlightsRequest is the inbound search payload. It mirrors
// domain.SearchInput: passenger counts arrive untyped and the normalizer
// coerces them, so binding never rejects a request the normalizer could
// still make sense of.
type SearchFlightsRequest struct {
	FlightData []FlightLegDTO `json:"flight_data"`
	Trip       string         `json:"trip"`
	Seat       string         `json:"seat"`
	Passengers map[string]any `json:"passengers"`
	ReturnDate string         `json:"return_date"`
}

// FlightLegDTO is one requested flight leg.
type FlightLegDTO struct {
	Date        string `json:"date"`
	FromAirport string `json:"from_airport"`
	ToAirport   string `json:"to_airport"`
}

// ToSearchInput converts the request DTO to the domain input shape.
func ToSearchInput(req *SearchFlightsRequest) domain.SearchInput {
	legs := make([]domain.FlightDataInput, len(req.FlightData))
	for i, leg := range req.FlightData {
		legs[i] = domain.FlightDataInput{
			Date:        leg.Date,
			FromAirport: leg.FromAirport,
			ToAirport:   leg.ToAirport,
		}
	}
	return domain.SearchInput{
		FlightData: legs,
		Trip:       req.Trip,
		Seat:       req.Seat,
		Passengers: req.Passengers,
		ReturnDate: req.ReturnDate,
	}
}

// SearchResponseDTO is the flat JSON search response: the raw offers plus
// the criteria that were actually searched after defaulting.
type SearchResponseDTO struct {
	SearchID       string               `json:"search_id"`
	SearchCriteria domain.SearchRequest `json:"search_criteria"`
	Data           []domain.Offer       `json:"data"`
}

// ToSearchResponseDTO converts a search result to the response shape.
func ToSearchResponseDTO(result *usecase.SearchResult) *SearchResponseDTO {
	offers := result.Offers
	if offers == nil {
		offers = []domain.Offer{}
	}
	return &SearchResponseDTO{
		SearchID:       result.SearchID,
		SearchCriteria: result.Request,
		Data:           offers,
	}
}
