package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sparcel-journey-service/internal/domain"
	"sparcel-journey-service/internal/ports"
)

// FallbackJourneyStore writes and reads the remote store first and falls
// back to the local store on any remote error. A write that lands only in
// the local store is still reported as a success, so the two stores can
// diverge until the local records are reconciled.
type FallbackJourneyStore struct {
	Remote ports.JourneyStore
	Local  ports.JourneyStore
}

func NewFallbackJourneyStore(remote, local ports.JourneyStore) *FallbackJourneyStore {
	return &FallbackJourneyStore{Remote: remote, Local: local}
}

func (f *FallbackJourneyStore) Save(ctx context.Context, j domain.ParcelJourney) error {
	remoteErr := f.Remote.Save(ctx, j)
	if remoteErr == nil {
		return nil
	}
	log.Printf("journey store fallback op=save bag_id=%s remote_err=%v", j.BagID, remoteErr)

	if err := f.Local.Save(ctx, j); err != nil {
		return fmt.Errorf("save journey bag_id=%s: %w", j.BagID, errors.Join(remoteErr, err))
	}
	return nil
}

// Reads fall back to the local store when the remote errors or has no record.
func (f *FallbackJourneyStore) GetByBagID(ctx context.Context, bagID string) (*domain.ParcelJourney, error) {
	j, remoteErr := f.Remote.GetByBagID(ctx, bagID)
	if remoteErr == nil && j != nil {
		return j, nil
	}
	if remoteErr != nil {
		log.Printf("journey store fallback op=get bag_id=%s remote_err=%v", bagID, remoteErr)
	}

	local, err := f.Local.GetByBagID(ctx, bagID)
	if err != nil {
		if remoteErr != nil {
			return nil, fmt.Errorf("get journey bag_id=%s: %w", bagID, errors.Join(remoteErr, err))
		}
		return nil, fmt.Errorf("get journey bag_id=%s: %w", bagID, err)
	}
	if local == nil && remoteErr != nil {
		return nil, fmt.Errorf("get journey bag_id=%s: %w", bagID, remoteErr)
	}
	return local, nil
}

func (f *FallbackJourneyStore) MarkUsed(ctx context.Context, bagID string) error {
	remoteErr := f.Remote.MarkUsed(ctx, bagID)
	if remoteErr == nil {
		return nil
	}
	log.Printf("journey store fallback op=mark_used bag_id=%s remote_err=%v", bagID, remoteErr)

	if err := f.Local.MarkUsed(ctx, bagID); err != nil {
		return fmt.Errorf("mark qr used bag_id=%s: %w", bagID, errors.Join(remoteErr, err))
	}
	return nil
}
