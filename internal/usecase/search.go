package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/logger"
	"github.com/ahwei/flight-ticket-alarm/internal/infrastructure/timeutil"
)

// SearchResult carries the raw offers together with the fully resolved
// request that produced them, so every channel can echo the criteria that
// were actually searched.
type SearchResult struct {
	// SearchID identifies this search in logs
	SearchID string

	// Request is the normalized request that was sent upstream
	Request domain.SearchRequest

	// Offers is the raw offer list, in source order. Empty is a valid result.
	Offers []domain.Offer
}

// FlightSearchUseCase drives the offer source with normalized requests.
type FlightSearchUseCase interface {
	// Search normalizes the input and fetches offers for it.
	Search(ctx context.Context, in domain.SearchInput) (*SearchResult, error)

	// SearchRequest fetches offers for an already-normalized request, as
	// produced by the conversation flow.
	SearchRequest(ctx context.Context, req domain.SearchRequest) (*SearchResult, error)

	// QuickSearch runs the fixed demo search: default route, today's date,
	// one adult in economy. It shares Search's error contract.
	QuickSearch(ctx context.Context) (*SearchResult, error)
}

type flightSearchUseCase struct {
	source   domain.OfferSource
	clock    timeutil.Clock
	defaults SearchDefaults
	log      *logger.Logger
}

// NewFlightSearchUseCase creates the search use case. A nil clock falls back
// to the system clock; a nil logger disables logging.
func NewFlightSearchUseCase(source domain.OfferSource, defaults SearchDefaults, clock timeutil.Clock, log *logger.Logger) FlightSearchUseCase {
	if clock == nil {
		clock = timeutil.NewRealClock()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &flightSearchUseCase{
		source:   source,
		clock:    clock,
		defaults: defaults,
		log:      log.WithComponent("search"),
	}
}

// Search implements FlightSearchUseCase.
func (uc *flightSearchUseCase) Search(ctx context.Context, in domain.SearchInput) (*SearchResult, error) {
	req, err := Normalize(in, uc.clock.Now(), uc.defaults)
	if err != nil {
		return nil, err
	}
	return uc.SearchRequest(ctx, req)
}

// SearchRequest implements FlightSearchUseCase.
func (uc *flightSearchUseCase) SearchRequest(ctx context.Context, req domain.SearchRequest) (*SearchResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	searchID := uuid.NewString()

	offers, err := uc.source.Search(ctx, req)
	if err != nil {
		uc.log.Error().
			Str("search_id", searchID).
			Str("origin", req.Legs[0].Origin).
			Str("destination", req.Legs[0].Destination).
			Err(err).
			Msg("Offer source failed")
		return nil, fmt.Errorf("search flights: %w", err)
	}

	uc.log.Info().
		Str("search_id", searchID).
		Str("origin", req.Legs[0].Origin).
		Str("destination", req.Legs[0].Destination).
		Str("trip", string(req.Trip)).
		Int("offers", len(offers)).
		Msg("Flight search completed")

	return &SearchResult{
		SearchID: searchID,
		Request:  req,
		Offers:   offers,
	}, nil
}

// QuickSearch implements FlightSearchUseCase.
func (uc *flightSearchUseCase) QuickSearch(ctx context.Context) (*SearchResult, error) {
	req := domain.SearchRequest{
		Legs: []domain.Leg{{
			Date:        uc.clock.Now().Format("2006-01-02"),
			Origin:      uc.defaults.Origin,
			Destination: uc.defaults.Destination,
		}},
		Trip:       domain.TripOneWay,
		Cabin:      domain.CabinEconomy,
		Passengers: domain.DefaultPassengers(),
	}
	return uc.SearchRequest(ctx, req)
}
