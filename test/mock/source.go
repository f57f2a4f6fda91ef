// Package mock provides test doubles for the flight ticket alarm.
// These mocks are designed for integration-style tests that need
// configurable behavior (delays, errors, canned offers).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// OfferSource is a configurable mock implementation of domain.OfferSource.
// It supports configurable delays, errors, and responses using the builder
// pattern methods.
type OfferSource struct {
	offers    []domain.Offer
	err       error
	delay     time.Duration
	callCount int
	lastReq   domain.SearchRequest
	mu        sync.Mutex
}

// NewOfferSource creates a new mock offer source that returns no offers.
func NewOfferSource() *OfferSource {
	return &OfferSource{}
}

// WithOffers configures the source to return the given offers.
func (s *OfferSource) WithOffers(offers []domain.Offer) *OfferSource {
	s.offers = offers
	return s
}

// WithError configures the source to return the given error.
func (s *OfferSource) WithError(err error) *OfferSource {
	s.err = err
	return s
}

// WithDelay configures the source to wait before responding.
// This is useful for testing timeout behavior.
func (s *OfferSource) WithDelay(d time.Duration) *OfferSource {
	s.delay = d
	return s
}

// Search implements domain.OfferSource. It respects context cancellation,
// applies the configured delay, and returns the configured offers or error.
func (s *OfferSource) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Offer, error) {
	s.mu.Lock()
	s.callCount++
	s.lastReq = req
	s.mu.Unlock()

	if s.delay > 0 {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.delay):
		}
	}

	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	if s.err != nil {
		return nil, s.err
	}

	return s.offers, nil
}

// CallCount returns the number of times Search was called.
func (s *OfferSource) CallCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.callCount
}

// LastRequest returns the most recent request passed to Search.
func (s *OfferSource) LastRequest() domain.SearchRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastReq
}

// Reset resets the call count to zero.
func (s *OfferSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.callCount = 0
}

// Ensure OfferSource implements domain.OfferSource at compile time.
var _ domain.OfferSource = (*OfferSource)(nil)

// SampleOffers returns fully-populated one-way offers for testing. Every
// offer survives the tolerant card decode.
func SampleOffers(count int) []domain.Offer {
	offers := make([]domain.Offer, count)

	for i := 0; i < count; i++ {
		offers[i] = domain.Offer{
			ID: fmt.Sprintf("%d", i+1),
			Itineraries: []domain.Itinerary{
				{
					Duration: "PT3H10M",
					Segments: []domain.Segment{
						{
							Departure:   domain.SegmentPoint{IataCode: "TPE", At: "2026-10-01T09:00:00"},
							Arrival:     domain.SegmentPoint{IataCode: "NRT", At: "2026-10-01T13:10:00"},
							CarrierCode: "BR",
							Number:      fmt.Sprintf("%d", 100+i),
							Aircraft:    domain.Aircraft{Code: "789"},
							Duration:    "PT3H10M",
						},
					},
				},
			},
			Price:                  domain.OfferPrice{Currency: "TWD", GrandTotal: fmt.Sprintf("%d.0", 8000+i*500)},
			TravelerPricings:       []domain.TravelerPricing{{FareDetailsBySegment: []domain.FareDetail{{Cabin: "ECONOMY"}}}},
			ValidatingAirlineCodes: []string{"BR"},
			NumberOfBookableSeats:  9,
			LastTicketingDate:      "2026-10-01",
		}
	}

	return offers
}
