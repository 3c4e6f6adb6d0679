package ports

import "context"

// Contract for publishing domain events to a message broker.
type EventPublisher interface {
	Publish(ctx context.Context, key string, value []byte) error
	Close() error
}
