package sessions

import (
	"context"
	"errors"
	"sparcel-journey-service/internal/domain"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCreateGet(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	ctx := context.Background()

	s := domain.NewSession("s1", "BAG1", true, time.Now())
	require.NoError(t, store.Create(ctx, s))
	assert.Error(t, store.Create(ctx, s))

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "BAG1", got.BagID)

	got.BagID = "changed"
	again, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "BAG1", again.BagID)

	_, err = store.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStoreUpdateKeepsChangesOnError(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", "BAG1", false, time.Now())))

	stop := errors.New("stop")
	err := store.Update(ctx, "s1", func(s *domain.Session) error {
		require.NoError(t, s.SetBoxes(4))
		return stop
	})
	assert.ErrorIs(t, err, stop)

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.NumberOfBoxes)

	err = store.Update(ctx, "missing", func(s *domain.Session) error { return nil })
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestMemoryStoreSerializesUpdates(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", "BAG1", false, time.Now())))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = store.Update(ctx, "s1", func(s *domain.Session) error {
				s.NumberOfBoxes++
				return nil
			})
		}()
	}
	wg.Wait()

	got, err := store.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 51, got.NumberOfBoxes)
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(20*time.Millisecond, time.Hour)
	ctx := context.Background()
	require.NoError(t, store.Create(ctx, domain.NewSession("s1", "BAG1", false, time.Now())))

	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(ctx, "s1")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}
