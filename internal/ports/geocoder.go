package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

// Contract for resolving free text into a location.
type Geocoder interface {
	// Return the best match for query, or domain.ErrLocationNotFound.
	Geocode(ctx context.Context, query string) (domain.Location, error)
}

// Optional cache in front of a Geocoder.
type GeocodeCache interface {
	Get(ctx context.Context, query string) (domain.Location, bool, error)
	Put(ctx context.Context, query string, loc domain.Location) error
}

// Source of partner Sparcel points.
type PointCatalog interface {
	Points() []domain.Location
}
