// Package tigerair is a placeholder scraper for Tigerair Taiwan (IT). The
// airline has no public fare API, so Search reports ErrNotImplemented until a
// scraping backend lands.
package tigerair

import (
	"context"
	"fmt"
	"time"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

const scraperName = "tigerair"

// Scraper implements domain.FlightScraper for Tigerair Taiwan.
type Scraper struct{}

// NewScraper creates a Tigerair scraper.
func NewScraper() *Scraper {
	return &Scraper{}
}

// Name returns the scraper identifier.
func (s *Scraper) Name() string {
	return scraperName
}

// Search always reports that Tiger Airways search is not implemented yet.
func (s *Scraper) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	return nil, fmt.Errorf("Tiger Airways search endpoint: %w", domain.ErrNotImplemented)
}

var _ domain.FlightScraper = (*Scraper)(nil)
