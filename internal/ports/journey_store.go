package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

// Port: persistence of booked parcel journeys keyed by bag id.
type JourneyStore interface {
	// Insert or replace the journey for j.BagID. CreatedAt of an existing record is kept.
	Save(ctx context.Context, j domain.ParcelJourney) error
	// Return the journey for bagID, or nil with no error when none exists.
	GetByBagID(ctx context.Context, bagID string) (*domain.ParcelJourney, error)
	// Mark the QR code that carries bagID as consumed.
	MarkUsed(ctx context.Context, bagID string) error
}
