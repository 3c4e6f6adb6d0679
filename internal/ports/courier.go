package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

// Addresses and per-box dimensions to price.
type QuoteRequest struct {
	Pickup  domain.Location
	Dropoff domain.Location
	Parcels []domain.ParcelDimensions
}

// Contract for fetching delivery quotes from a courier aggregator.
type QuoteProvider interface {
	// Return every offered rate, classified but not grouped.
	GetQuotes(ctx context.Context, req QuoteRequest) ([]domain.Quote, error)
}

// Contract for creating a courier shipment for a selected quote.
type BookingProvider interface {
	// Book returns the courier response. A returned confirmation may still
	// describe a failed booking; callers check Succeeded.
	Book(ctx context.Context, j domain.ParcelJourney, q domain.Quote) (*domain.BookingConfirmation, error)
}
