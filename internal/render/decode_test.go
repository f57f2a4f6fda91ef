package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// sampleOffer returns a fully-populated one-way offer for tests.
func sampleOffer(id string) domain.Offer {
	return domain.Offer{
		ID: id,
		Itineraries: []domain.Itinerary{
			{
				Duration: "PT3H10M",
				Segments: []domain.Segment{
					{
						Departure:   domain.SegmentPoint{IataCode: "TPE", At: "2026-09-10T09:00:00"},
						Arrival:     domain.SegmentPoint{IataCode: "NRT", At: "2026-09-10T13:10:00"},
						CarrierCode: "BR",
						Number:      "198",
						Aircraft:    domain.Aircraft{Code: "789"},
						Duration:    "PT3H10M",
					},
				},
			},
		},
		Price:                  domain.OfferPrice{Currency: "TWD", GrandTotal: "8999.0"},
		TravelerPricings:       []domain.TravelerPricing{{FareDetailsBySegment: []domain.FareDetail{{Cabin: "ECONOMY"}}}},
		ValidatingAirlineCodes: []string{"BR"},
		NumberOfBookableSeats:  9,
		LastTicketingDate:      "2026-09-10",
	}
}

func TestDecodeOffer(t *testing.T) {
	card, err := DecodeOffer(sampleOffer("1"))
	require.NoError(t, err)

	assert.Equal(t, "長榮航空", card.AirlineName)
	assert.Equal(t, "2026-09-10~N/A", card.DateRange)
	assert.Equal(t, "Economy艙 (9座位)", card.CabinLine)
	assert.Equal(t, "總價: TWD 8,999", card.PriceLine)

	require.Len(t, card.Itineraries, 1)
	assert.Empty(t, card.Itineraries[0].Label, "single itinerary gets no direction label")

	require.Len(t, card.Itineraries[0].Segments, 1)
	seg := card.Itineraries[0].Segments[0]
	assert.Equal(t, "✈️ 長榮航空 198", seg.Title)
	assert.Equal(t, "機型: 波音 787-9", seg.Aircraft)
	assert.Equal(t, "從 TPE 2026-09-10 09:00", seg.Departure)
	assert.Equal(t, "到 NRT 2026-09-10 13:10", seg.Arrival)
	assert.Equal(t, "飛行時間: 3小時10分鐘", seg.FlightTime)
}

func TestDecodeOffer_RoundTripLabels(t *testing.T) {
	offer := sampleOffer("1")
	offer.Itineraries = append(offer.Itineraries, domain.Itinerary{
		Segments: []domain.Segment{
			{
				Departure:   domain.SegmentPoint{IataCode: "NRT", At: "2026-09-20T14:00:00"},
				Arrival:     domain.SegmentPoint{IataCode: "TPE", At: "2026-09-20T17:00:00"},
				CarrierCode: "BR",
				Number:      "197",
			},
		},
	})

	card, err := DecodeOffer(offer)
	require.NoError(t, err)

	require.Len(t, card.Itineraries, 2)
	assert.Equal(t, "去程", card.Itineraries[0].Label)
	assert.Equal(t, "回程", card.Itineraries[1].Label)
}

func TestDecodeOffer_MissingFieldsDegradePerField(t *testing.T) {
	offer := sampleOffer("1")
	offer.Itineraries[0].Segments[0].Aircraft = domain.Aircraft{}
	offer.Itineraries[0].Segments[0].Number = ""
	offer.Itineraries[0].Segments[0].Departure.At = ""
	offer.Itineraries[0].Segments[0].Arrival.IataCode = ""
	offer.Itineraries[0].Segments[0].Duration = ""
	offer.Itineraries[0].Segments[0].CarrierCode = "ZZ"

	card, err := DecodeOffer(offer)
	require.NoError(t, err)

	seg := card.Itineraries[0].Segments[0]
	assert.Equal(t, "✈️ 其他航空(ZZ) N/A", seg.Title)
	assert.Equal(t, "機型: 未知機型", seg.Aircraft)
	assert.Equal(t, "從 TPE N/A", seg.Departure)
	assert.Equal(t, "到 N/A 2026-09-10 13:10", seg.Arrival)
	assert.Equal(t, "飛行時間: N/A", seg.FlightTime)
}

func TestDecodeOffer_DropConditions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.Offer)
	}{
		{name: "no itineraries", mutate: func(o *domain.Offer) { o.Itineraries = nil }},
		{name: "no segments in any itinerary", mutate: func(o *domain.Offer) {
			o.Itineraries = []domain.Itinerary{{Duration: "PT1H"}, {}}
		}},
		{name: "missing grand total", mutate: func(o *domain.Offer) { o.Price.GrandTotal = "" }},
		{name: "malformed grand total", mutate: func(o *domain.Offer) { o.Price.GrandTotal = "free" }},
		{name: "no traveler pricings", mutate: func(o *domain.Offer) { o.TravelerPricings = nil }},
		{name: "empty cabin", mutate: func(o *domain.Offer) {
			o.TravelerPricings[0].FareDetailsBySegment[0].Cabin = ""
		}},
		{name: "no validating airline", mutate: func(o *domain.Offer) { o.ValidatingAirlineCodes = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			offer := sampleOffer("1")
			tt.mutate(&offer)
			_, err := DecodeOffer(offer)
			assert.Error(t, err)
		})
	}
}

func TestDecodeOffers_SkipsBadOffersAndKeepsOrder(t *testing.T) {
	good1 := sampleOffer("1")
	bad := sampleOffer("2")
	bad.Itineraries = nil

	// Offer 3 has a segment missing the aircraft code: still renders, with
	// the fallback aircraft label.
	degraded := sampleOffer("3")
	degraded.Itineraries[0].Segments[0].Aircraft.Code = ""

	cards := DecodeOffers([]domain.Offer{good1, bad, degraded})

	require.Len(t, cards, 2)
	assert.Equal(t, "機型: 未知機型", cards[1].Itineraries[0].Segments[0].Aircraft)
}

func TestDecodeOffers_CapsAtMaxCards(t *testing.T) {
	offers := make([]domain.Offer, 0, MaxCards+5)
	for i := 0; i < MaxCards+5; i++ {
		offers = append(offers, sampleOffer("x"))
	}

	cards := DecodeOffers(offers)
	assert.Len(t, cards, MaxCards)
}

func TestDecodeOffers_EmptyInput(t *testing.T) {
	assert.Empty(t, DecodeOffers(nil))
	assert.Empty(t, DecodeOffers([]domain.Offer{}))
}

func TestDecodeOffers_Idempotent(t *testing.T) {
	offers := []domain.Offer{sampleOffer("1"), sampleOffer("2")}

	first := DecodeOffers(offers)
	second := DecodeOffers(offers)

	assert.Equal(t, first, second)
}
