package events

import "context"

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(ctx context.Context, key string, value []byte) error { return nil }

func (NopPublisher) Close() error { return nil }
