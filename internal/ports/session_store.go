package ports

import (
	"context"
	"sparcel-journey-service/internal/domain"
)

// Port: server-side storage of in-progress configuration sessions.
type SessionStore interface {
	Create(ctx context.Context, s *domain.Session) error
	// Return a copy of the session, or domain.ErrSessionNotFound.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Run fn with exclusive access to the session and store the result.
	// Calls for the same id are serialized.
	Update(ctx context.Context, id string, fn func(s *domain.Session) error) error
}
