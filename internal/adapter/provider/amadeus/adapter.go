package amadeus

import (
	"context"
	"net/url"
	"strconv"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

// offersPath is the flight-offers search endpoint.
const offersPath = "/v2/shopping/flight-offers"

// Adapter implements domain.OfferSource against the Amadeus API.
type Adapter struct {
	client   *Client
	currency string
}

// NewAdapter creates an Adapter using the given client. The currency code is
// sent with every search so prices come back in a fixed currency.
func NewAdapter(client *Client, currency string) *Adapter {
	if currency == "" {
		currency = "TWD"
	}
	return &Adapter{client: client, currency: currency}
}

// offersResponse is the upstream search envelope.
type offersResponse struct {
	Data []domain.Offer `json:"data"`
}

// Search implements domain.OfferSource. Children and infants are only sent
// when positive, and the infant seat/lap split is collapsed into a single
// count, matching the upstream parameter contract.
func (a *Adapter) Search(ctx context.Context, req domain.SearchRequest) ([]domain.Offer, error) {
	out := req.Legs[0]

	query := url.Values{}
	query.Set("originLocationCode", out.Origin)
	query.Set("destinationLocationCode", out.Destination)
	query.Set("departureDate", out.Date)
	query.Set("adults", strconv.Itoa(req.Passengers.Adults))
	query.Set("travelClass", req.Cabin.ProviderCode())
	query.Set("currencyCode", a.currency)

	if returnDate, ok := req.ReturnDate(); ok {
		query.Set("returnDate", returnDate)
	}
	if req.Passengers.Children > 0 {
		query.Set("children", strconv.Itoa(req.Passengers.Children))
	}
	if infants := req.Passengers.Infants(); infants > 0 {
		query.Set("infants", strconv.Itoa(infants))
	}

	var resp offersResponse
	if err := a.client.get(ctx, offersPath, query, &resp); err != nil {
		return nil, err
	}

	// A zero-result response is a valid empty success.
	if resp.Data == nil {
		return []domain.Offer{}, nil
	}
	return resp.Data, nil
}

// Ensure Adapter implements OfferSource at compile time.
var _ domain.OfferSource = (*Adapter)(nil)
