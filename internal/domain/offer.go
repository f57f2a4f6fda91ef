package domain

// Offer is a raw flight offer as returned by the upstream source. It is
// treated as an untrusted nested record: any field may be absent or
// malformed, and the renderer must degrade per-field rather than fail on
// the whole offer. The JSON tags mirror the upstream payload so offers can
// be passed through the API response losslessly.
type Offer struct {
	ID                       string            `json:"id,omitempty"`
	Itineraries              []Itinerary       `json:"itineraries,omitempty"`
	Price                    OfferPrice        `json:"price,omitempty"`
	TravelerPricings         []TravelerPricing `json:"travelerPricings,omitempty"`
	ValidatingAirlineCodes   []string          `json:"validatingAirlineCodes,omitempty"`
	NumberOfBookableSeats    int               `json:"numberOfBookableSeats,omitempty"`
	LastTicketingDate        string            `json:"lastTicketingDate,omitempty"`
	LastTicketingDateTime    string            `json:"lastTicketingDateTime,omitempty"`
	OneWay                   bool              `json:"oneWay,omitempty"`
	InstantTicketingRequired bool              `json:"instantTicketingRequired,omitempty"`
}

// Itinerary is one direction of an offer (outbound or inbound).
type Itinerary struct {
	// Duration is an ISO-8601 duration string (e.g., "PT3H10M")
	Duration string    `json:"duration,omitempty"`
	Segments []Segment `json:"segments,omitempty"`
}

// Segment is a single flight within an itinerary.
type Segment struct {
	Departure SegmentPoint `json:"departure,omitempty"`
	Arrival   SegmentPoint `json:"arrival,omitempty"`

	// CarrierCode is the IATA airline code (e.g., "BR")
	CarrierCode string `json:"carrierCode,omitempty"`

	// Number is the flight number without the carrier prefix (e.g., "198")
	Number string `json:"number,omitempty"`

	Aircraft Aircraft `json:"aircraft,omitempty"`
	Duration string   `json:"duration,omitempty"`
}

// SegmentPoint is a departure or arrival point of a segment.
type SegmentPoint struct {
	IataCode string `json:"iataCode,omitempty"`
	Terminal string `json:"terminal,omitempty"`

	// At is an ISO-8601 timestamp (e.g., "2025-09-01T09:00:00")
	At string `json:"at,omitempty"`
}

// Aircraft carries the aircraft type code of a segment.
type Aircraft struct {
	Code string `json:"code,omitempty"`
}

// OfferPrice is the total price of an offer.
type OfferPrice struct {
	Currency   string `json:"currency,omitempty"`
	Total      string `json:"total,omitempty"`
	GrandTotal string `json:"grandTotal,omitempty"`
}

// TravelerPricing is per-traveler fare information.
type TravelerPricing struct {
	TravelerType         string       `json:"travelerType,omitempty"`
	FareDetailsBySegment []FareDetail `json:"fareDetailsBySegment,omitempty"`
}

// FareDetail is per-segment fare information for one traveler.
type FareDetail struct {
	Cabin string `json:"cabin,omitempty"`
	Class string `json:"class,omitempty"`
}
