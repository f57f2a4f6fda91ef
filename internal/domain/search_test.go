package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseTripType(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want TripType
	}{
		{name: "round-trip", raw: "round-trip", want: TripRoundTrip},
		{name: "round-trip mixed case", raw: "Round-Trip", want: TripRoundTrip},
		{name: "one-way", raw: "one-way", want: TripOneWay},
		{name: "empty defaults to one-way", raw: "", want: TripOneWay},
		{name: "unknown defaults to one-way", raw: "multi-city", want: TripOneWay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTripType(tt.raw))
		})
	}
}

func TestParseCabin(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want Cabin
	}{
		{name: "economy", raw: "economy", want: CabinEconomy},
		{name: "premium economy", raw: "premium-economy", want: CabinPremiumEconomy},
		{name: "business upper case", raw: "BUSINESS", want: CabinBusiness},
		{name: "first", raw: "first", want: CabinFirst},
		{name: "unknown falls back to economy", raw: "super-deluxe", want: CabinEconomy},
		{name: "empty falls back to economy", raw: "", want: CabinEconomy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseCabin(tt.raw))
		})
	}
}

func TestCabin_ProviderCode(t *testing.T) {
	assert.Equal(t, "ECONOMY", CabinEconomy.ProviderCode())
	assert.Equal(t, "PREMIUM_ECONOMY", CabinPremiumEconomy.ProviderCode())
	assert.Equal(t, "BUSINESS", CabinBusiness.ProviderCode())
	assert.Equal(t, "FIRST", CabinFirst.ProviderCode())

	// An unmapped cabin value still yields a usable provider code.
	assert.Equal(t, "ECONOMY", Cabin("coach").ProviderCode())
}

func TestPassengers_Infants(t *testing.T) {
	p := Passengers{Adults: 2, InfantsInSeat: 1, InfantsOnLap: 2}
	assert.Equal(t, 3, p.Infants())
}

func TestSearchRequest_Validate(t *testing.T) {
	validLeg := Leg{Date: "2026-09-10", Origin: "TPE", Destination: "NRT"}

	tests := []struct {
		name    string
		req     SearchRequest
		wantErr string
	}{
		{
			name: "valid one-way",
			req: SearchRequest{
				Legs:       []Leg{validLeg},
				Trip:       TripOneWay,
				Cabin:      CabinEconomy,
				Passengers: DefaultPassengers(),
			},
		},
		{
			name: "valid round-trip with return leg",
			req: SearchRequest{
				Legs: []Leg{
					validLeg,
					{Date: "2026-09-20", Origin: "NRT", Destination: "TPE"},
				},
				Trip:       TripRoundTrip,
				Cabin:      CabinEconomy,
				Passengers: DefaultPassengers(),
			},
		},
		{
			name:    "no legs",
			req:     SearchRequest{Trip: TripOneWay},
			wantErr: "at least one flight leg",
		},
		{
			name: "bad departure date",
			req: SearchRequest{
				Legs: []Leg{{Date: "10-09-2026", Origin: "TPE", Destination: "NRT"}},
				Trip: TripOneWay,
			},
			wantErr: "departure date",
		},
		{
			name: "bad origin",
			req: SearchRequest{
				Legs: []Leg{{Date: "2026-09-10", Origin: "T1", Destination: "NRT"}},
				Trip: TripOneWay,
			},
			wantErr: "origin",
		},
		{
			name: "bad destination",
			req: SearchRequest{
				Legs: []Leg{{Date: "2026-09-10", Origin: "TPE", Destination: "NARITA"}},
				Trip: TripOneWay,
			},
			wantErr: "destination",
		},
		{
			name: "round-trip without return leg",
			req: SearchRequest{
				Legs: []Leg{validLeg},
				Trip: TripRoundTrip,
			},
			wantErr: "round-trip requires a return date",
		},
		{
			name: "negative passenger count",
			req: SearchRequest{
				Legs:       []Leg{validLeg},
				Trip:       TripOneWay,
				Passengers: Passengers{Adults: 1, Children: -1},
			},
			wantErr: "cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.True(t, IsInvalidRequest(err))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSearchRequest_ReturnDate(t *testing.T) {
	oneWay := SearchRequest{Legs: []Leg{{Date: "2026-09-10"}}}
	_, ok := oneWay.ReturnDate()
	assert.False(t, ok)

	roundTrip := SearchRequest{Legs: []Leg{
		{Date: "2026-09-10"},
		{Date: "2026-09-20"},
	}}
	ret, ok := roundTrip.ReturnDate()
	assert.True(t, ok)
	assert.Equal(t, "2026-09-20", ret)
}
