package domain

import "fmt"

// Step identifies which field the conversation is currently collecting.
type Step string

// Conversation steps, advanced strictly in order. Round-trip searches pass
// through StepReturnDate; one-way searches dispatch right after the
// destination.
const (
	StepTripType      Step = "awaiting-trip-type"
	StepDepartureDate Step = "awaiting-departure-date"
	StepOrigin        Step = "awaiting-origin"
	StepDestination   Step = "awaiting-destination"
	StepReturnDate    Step = "awaiting-return-date"
)

// ConversationState is the per-user accumulator of a multi-turn flight
// search. It is owned exclusively by the conversation store, keyed by user
// id, with at most one state per user at a time.
type ConversationState struct {
	Step          Step     `json:"step"`
	Trip          TripType `json:"trip,omitempty"`
	DepartureDate string   `json:"departure_date,omitempty"`
	Origin        string   `json:"origin,omitempty"`
	Destination   string   `json:"destination,omitempty"`
}

// NewConversationState returns a fresh state at the first step.
func NewConversationState() *ConversationState {
	return &ConversationState{Step: StepTripType}
}

// Finalize builds the canonical SearchRequest from the accumulated fields.
// returnDate is ignored for one-way trips. The caller must only invoke this
// once every step has been collected.
func (s *ConversationState) Finalize(returnDate string) (SearchRequest, error) {
	req := SearchRequest{
		Legs: []Leg{{
			Date:        s.DepartureDate,
			Origin:      s.Origin,
			Destination: s.Destination,
		}},
		Trip:       s.Trip,
		Cabin:      CabinEconomy,
		Passengers: DefaultPassengers(),
	}

	if s.Trip == TripRoundTrip {
		req.Legs = append(req.Legs, Leg{
			Date:        returnDate,
			Origin:      s.Destination,
			Destination: s.Origin,
		})
	}

	if err := req.Validate(); err != nil {
		return SearchRequest{}, fmt.Errorf("finalize conversation: %w", err)
	}
	return req, nil
}
