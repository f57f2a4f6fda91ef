package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ahwei/flight-ticket-alarm/internal/airline"
	"github.com/ahwei/flight-ticket-alarm/internal/domain"
	"github.com/ahwei/flight-ticket-alarm/pkg/currency"
)

// MaxCards bounds the chat carousel regardless of how many offers the
// source returned. Ordering is preserved as returned, no re-sort.
const MaxCards = 10

// Itinerary direction labels, applied only when an offer has both.
const (
	outboundLabel = "去程"
	inboundLabel  = "回程"
)

// Card is one fully-defaulted display card. Every field is ready to show
// as-is; no placeholder logic remains downstream.
type Card struct {
	// AirlineName is the resolved validating-airline display name
	AirlineName string `json:"airline_name"`

	// DateRange is the ticketing date window, e.g. "2026-09-10~2026-09-20"
	DateRange string `json:"date_range"`

	// CabinLine is the cabin and seat-count line, e.g. "Economy艙 (9座位)"
	CabinLine string `json:"cabin_line"`

	// PriceLine is the formatted total, e.g. "總價: TWD 12,345"
	PriceLine string `json:"price_line"`

	Itineraries []ItineraryView `json:"itineraries"`
}

// ItineraryView is one direction of a card.
type ItineraryView struct {
	// Label is 去程/回程 when the offer has both directions, empty otherwise
	Label    string        `json:"label,omitempty"`
	Segments []SegmentView `json:"segments"`
}

// SegmentView is the display lines of a single flight segment.
type SegmentView struct {
	// Title is the headline, e.g. "✈️ 長榮航空 198"
	Title string `json:"title"`

	// Aircraft is the aircraft line, e.g. "機型: 波音 787-9"
	Aircraft string `json:"aircraft"`

	// Departure is e.g. "從 TPE 2026-09-10 09:00"
	Departure string `json:"departure"`

	// Arrival is e.g. "到 NRT 2026-09-10 13:10"
	Arrival string `json:"arrival"`

	// FlightTime is e.g. "飛行時間: 3小時10分鐘"
	FlightTime string `json:"flight_time"`
}

// DecodeOffer converts one raw offer into a Card. Missing or malformed
// fields degrade individually to placeholders; an error is returned only
// when the offer has no renderable segments at all or when price, cabin, or
// validating-airline extraction fails, in which case the caller skips the
// offer and continues.
func DecodeOffer(offer domain.Offer) (Card, error) {
	itineraries := decodeItineraries(offer.Itineraries)
	if len(itineraries) == 0 {
		return Card{}, fmt.Errorf("offer %s has no renderable segments", offerID(offer))
	}

	priceLine, err := decodePrice(offer.Price)
	if err != nil {
		return Card{}, fmt.Errorf("offer %s: %w", offerID(offer), err)
	}

	cabinLine, err := decodeCabin(offer)
	if err != nil {
		return Card{}, fmt.Errorf("offer %s: %w", offerID(offer), err)
	}

	if len(offer.ValidatingAirlineCodes) == 0 {
		return Card{}, fmt.Errorf("offer %s has no validating airline", offerID(offer))
	}

	return Card{
		AirlineName: airline.CarrierName(offer.ValidatingAirlineCodes[0]),
		DateRange:   decodeDateRange(offer),
		CabinLine:   cabinLine,
		PriceLine:   priceLine,
		Itineraries: itineraries,
	}, nil
}

// DecodeOffers converts raw offers into cards, skipping offers that cannot
// be rendered and capping the result at MaxCards.
func DecodeOffers(offers []domain.Offer) []Card {
	cards := make([]Card, 0, len(offers))
	for _, offer := range offers {
		card, err := DecodeOffer(offer)
		if err != nil {
			continue
		}
		cards = append(cards, card)
		if len(cards) == MaxCards {
			break
		}
	}
	return cards
}

func decodeItineraries(raw []domain.Itinerary) []ItineraryView {
	views := make([]ItineraryView, 0, len(raw))
	for _, it := range raw {
		if len(it.Segments) == 0 {
			continue
		}
		view := ItineraryView{Segments: make([]SegmentView, 0, len(it.Segments))}
		for _, seg := range it.Segments {
			view.Segments = append(view.Segments, decodeSegment(seg))
		}
		views = append(views, view)
	}

	// Outbound first, inbound second; label only when both directions exist.
	if len(views) > 1 {
		views[0].Label = outboundLabel
		for i := 1; i < len(views); i++ {
			views[i].Label = inboundLabel
		}
	}
	return views
}

func decodeSegment(seg domain.Segment) SegmentView {
	number := seg.Number
	if number == "" {
		number = Placeholder
	}

	return SegmentView{
		Title:      fmt.Sprintf("✈️ %s %s", airline.CarrierName(seg.CarrierCode), number),
		Aircraft:   fmt.Sprintf("機型: %s", airline.AircraftName(seg.Aircraft.Code)),
		Departure:  fmt.Sprintf("從 %s %s", orPlaceholder(seg.Departure.IataCode), FormatTimestamp(seg.Departure.At)),
		Arrival:    fmt.Sprintf("到 %s %s", orPlaceholder(seg.Arrival.IataCode), FormatTimestamp(seg.Arrival.At)),
		FlightTime: fmt.Sprintf("飛行時間: %s", FormatISODuration(seg.Duration)),
	}
}

func decodePrice(price domain.OfferPrice) (string, error) {
	if price.GrandTotal == "" {
		return "", fmt.Errorf("missing grand total")
	}
	amount, err := strconv.ParseFloat(price.GrandTotal, 64)
	if err != nil {
		return "", fmt.Errorf("malformed grand total %q", price.GrandTotal)
	}

	code := price.Currency
	if code == "" {
		code = "TWD"
	}
	return fmt.Sprintf("總價: %s", currency.Format(code, amount)), nil
}

func decodeCabin(offer domain.Offer) (string, error) {
	if len(offer.TravelerPricings) == 0 || len(offer.TravelerPricings[0].FareDetailsBySegment) == 0 {
		return "", fmt.Errorf("missing traveler pricing")
	}
	cabin := capitalize(offer.TravelerPricings[0].FareDetailsBySegment[0].Cabin)
	if cabin == "" {
		return "", fmt.Errorf("missing cabin")
	}
	return fmt.Sprintf("%s艙 (%d座位)", cabin, offer.NumberOfBookableSeats), nil
}

func decodeDateRange(offer domain.Offer) string {
	departure := offer.LastTicketingDate
	if departure == "" {
		departure = Placeholder
	}

	ret := Placeholder
	if offer.LastTicketingDateTime != "" {
		ret = strings.SplitN(offer.LastTicketingDateTime, "T", 2)[0]
	}

	return departure + "~" + ret
}

func offerID(offer domain.Offer) string {
	if offer.ID == "" {
		return "?"
	}
	return offer.ID
}

func orPlaceholder(s string) string {
	if s == "" {
		return Placeholder
	}
	return s
}
