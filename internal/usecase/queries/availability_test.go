//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/cache"
	"slotmarket/internal/pkg/errs"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"
	"slotmarket/tests/common/builder"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAvailabilityStore struct {
	taken bool
	err   error
	calls int
}

func (s *stubAvailabilityStore) SlotTaken(_ context.Context, _ booking.SlotKey) (bool, error) {
	s.calls++
	return s.taken, s.err
}

func TestCheckSlot(t *testing.T) {
	ctx := context.Background()
	key := builder.NewBookingBuilder().BuildSlotKey()

	t.Run("miss computes and caches", func(t *testing.T) {
		store := &stubAvailabilityStore{taken: false}
		mem := cache.NewMemoryCache()
		q := queries.NewAvailabilityQueries(store, mem, 300*time.Second)

		available, err := q.CheckSlot(ctx, key)
		require.NoError(t, err)
		assert.True(t, available)
		assert.Equal(t, 1, store.calls)

		cached, hit, err := mem.Get(ctx, shared.SlotAvailabilityKey(key))
		require.NoError(t, err)
		require.True(t, hit)
		assert.Equal(t, "true", cached)
	})

	t.Run("hit skips the database", func(t *testing.T) {
		store := &stubAvailabilityStore{taken: true}
		mem := cache.NewMemoryCache()
		q := queries.NewAvailabilityQueries(store, mem, 300*time.Second)

		_, err := q.CheckSlot(ctx, key)
		require.NoError(t, err)
		available, err := q.CheckSlot(ctx, key)
		require.NoError(t, err)

		assert.False(t, available)
		assert.Equal(t, 1, store.calls)
	})

	t.Run("expired entry recomputes", func(t *testing.T) {
		now := time.Now()
		store := &stubAvailabilityStore{taken: false}
		mem := cache.NewMemoryCacheWithNow(func() time.Time { return now })
		q := queries.NewAvailabilityQueries(store, mem, 300*time.Second)

		_, err := q.CheckSlot(ctx, key)
		require.NoError(t, err)

		now = now.Add(301 * time.Second)
		_, err = q.CheckSlot(ctx, key)
		require.NoError(t, err)
		assert.Equal(t, 2, store.calls)
	})

	t.Run("unknown service", func(t *testing.T) {
		store := &stubAvailabilityStore{
			err: infra.WrapRepoErr("service not found", errs.New("no rows"), infra.KindNotFound),
		}
		q := queries.NewAvailabilityQueries(store, cache.NewMemoryCache(), 300*time.Second)

		_, err := q.CheckSlot(ctx, key)
		assert.ErrorIs(t, err, queries.ErrServiceNotFound)
	})

	t.Run("cache failure degrades to recompute", func(t *testing.T) {
		store := &stubAvailabilityStore{taken: true}
		q := queries.NewAvailabilityQueries(store, failingCache{}, 300*time.Second)

		available, err := q.CheckSlot(ctx, key)
		require.NoError(t, err)
		assert.False(t, available)
		assert.Equal(t, 1, store.calls)
	})
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) (string, bool, error) {
	return "", false, errs.New("cache down")
}

func (failingCache) Set(context.Context, string, string, time.Duration) error {
	return errs.New("cache down")
}

func (failingCache) Delete(context.Context, string) error {
	return errs.New("cache down")
}
