// Package scoot is a placeholder scraper for Scoot (TR). The airline has no
// public fare API, so Search reports ErrNotImplemented until a scraping
// backend lands.
package scoot

import (
	"context"
	"fmt"
	"time"

	"github.com/ahwei/flight-ticket-alarm/internal/domain"
)

const scraperName = "scoot"

// Scraper implements domain.FlightScraper for Scoot.
type Scraper struct{}

// NewScraper creates a Scoot scraper.
func NewScraper() *Scraper {
	return &Scraper{}
}

// Name returns the scraper identifier.
func (s *Scraper) Name() string {
	return scraperName
}

// Search always reports that Scoot search is not implemented yet.
func (s *Scraper) Search(ctx context.Context, origin, destination string, date time.Time) ([]domain.Flight, error) {
	return nil, fmt.Errorf("Scoot Airways search endpoint: %w", domain.ErrNotImplemented)
}

var _ domain.FlightScraper = (*Scraper)(nil)
