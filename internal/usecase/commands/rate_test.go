//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"slotmarket/internal/domain/rate"
	"slotmarket/internal/domain/user"
	"slotmarket/internal/infra/cache"
	"slotmarket/internal/pkg/clock"
	"slotmarket/internal/usecase/commands"
	"slotmarket/internal/usecase/shared"
	"slotmarket/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type rateFixture struct {
	cmds  commands.RateCommands
	state *fakeState
	cache *cache.MemoryCache
}

func newRateFixture() *rateFixture {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	state := newFakeState()
	mem := cache.NewMemoryCache()
	cmds := commands.NewRateUseCase(newFakeUoW(state), shared.NewCacheInvalidator(mem), clock.NewMockClock(now))
	return &rateFixture{cmds: cmds, state: state, cache: mem}
}

func (f *rateFixture) seedAvgRating(t *testing.T, serviceID uuid.UUID) string {
	t.Helper()
	cacheKey := shared.AvgRatingKey(serviceID)
	require.NoError(t, f.cache.Set(context.Background(), cacheKey, "4.50", time.Hour))
	return cacheKey
}

func TestCreateRate(t *testing.T) {
	t.Run("records the rating and drops the cached average", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		f.state.addService(svc)
		cacheKey := f.seedAvgRating(t, svc.ID)
		userID := uuid.New()

		res, err := f.cmds.CreateRate(context.Background(), commands.CreateRateRequest{
			ServiceID: svc.ID, Rating: 5,
		}, userID)

		require.NoError(t, err)
		require.NotNil(t, res)

		snap := f.state.rates[res.RateID]
		require.NotNil(t, snap)
		assert.Equal(t, 5, snap.Rating)
		assert.Equal(t, userID, snap.UserID)

		_, found, err := f.cache.Get(context.Background(), cacheKey)
		require.NoError(t, err)
		assert.False(t, found, "cached average dropped after commit")
	})

	t.Run("a second rating for the same service conflicts", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		f.state.addService(svc)
		userID := uuid.New()
		req := commands.CreateRateRequest{ServiceID: svc.ID, Rating: 4}

		_, err := f.cmds.CreateRate(context.Background(), req, userID)
		require.NoError(t, err)

		_, err = f.cmds.CreateRate(context.Background(), req, userID)
		assert.ErrorIs(t, err, commands.ErrAlreadyRated)
	})

	t.Run("different users may rate the same service", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		f.state.addService(svc)
		req := commands.CreateRateRequest{ServiceID: svc.ID, Rating: 3}

		_, err := f.cmds.CreateRate(context.Background(), req, uuid.New())
		require.NoError(t, err)

		_, err = f.cmds.CreateRate(context.Background(), req, uuid.New())
		assert.NoError(t, err)
	})

	t.Run("rating out of range is rejected", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		f.state.addService(svc)

		for _, value := range []int{0, 6, -1} {
			_, err := f.cmds.CreateRate(context.Background(), commands.CreateRateRequest{
				ServiceID: svc.ID, Rating: value,
			}, uuid.New())
			assert.ErrorIs(t, err, rate.ErrInvalidRating)
		}
	})

	t.Run("unknown service", func(t *testing.T) {
		f := newRateFixture()

		_, err := f.cmds.CreateRate(context.Background(), commands.CreateRateRequest{
			ServiceID: uuid.New(), Rating: 4,
		}, uuid.New())
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
	})

	t.Run("deleted service cannot be rated", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		svc.Deleted = true
		f.state.addService(svc)

		_, err := f.cmds.CreateRate(context.Background(), commands.CreateRateRequest{
			ServiceID: svc.ID, Rating: 4,
		}, uuid.New())
		assert.ErrorIs(t, err, commands.ErrServiceNotFound)
	})
}

func TestUpdateRate(t *testing.T) {
	t.Run("changes the value and drops the cached average", func(t *testing.T) {
		f := newRateFixture()
		serviceID := uuid.New()
		userID := uuid.New()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: serviceID, UserID: userID, Rating: 2})
		cacheKey := f.seedAvgRating(t, serviceID)

		err := f.cmds.UpdateRate(context.Background(), rateID, 5, userID)

		require.NoError(t, err)
		assert.Equal(t, 5, f.state.rates[rateID].Rating)

		_, found, err := f.cache.Get(context.Background(), cacheKey)
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("someone else's rating is forbidden", func(t *testing.T) {
		f := newRateFixture()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: uuid.New(), UserID: uuid.New(), Rating: 2})

		err := f.cmds.UpdateRate(context.Background(), rateID, 5, uuid.New())

		assert.ErrorIs(t, err, commands.ErrRateNotOwned)
		assert.Equal(t, 2, f.state.rates[rateID].Rating)
	})

	t.Run("out of range value is rejected", func(t *testing.T) {
		f := newRateFixture()

		err := f.cmds.UpdateRate(context.Background(), uuid.New(), 9, uuid.New())
		assert.ErrorIs(t, err, rate.ErrInvalidRating)
	})

	t.Run("unknown rating", func(t *testing.T) {
		f := newRateFixture()

		err := f.cmds.UpdateRate(context.Background(), uuid.New(), 4, uuid.New())
		assert.ErrorIs(t, err, commands.ErrRateNotFoundWrite)
	})
}

func TestDeleteRate(t *testing.T) {
	t.Run("owner removes their rating and may rate again", func(t *testing.T) {
		f := newRateFixture()
		svc := builder.NewServiceBuilder().BuildSnapshot()
		f.state.addService(svc)
		userID := uuid.New()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: svc.ID, UserID: userID, Rating: 1})
		cacheKey := f.seedAvgRating(t, svc.ID)

		err := f.cmds.DeleteRate(context.Background(), rateID, userID, user.RoleUser)

		require.NoError(t, err)
		assert.True(t, f.state.rates[rateID].Deleted)

		_, found, err := f.cache.Get(context.Background(), cacheKey)
		require.NoError(t, err)
		assert.False(t, found)

		_, err = f.cmds.CreateRate(context.Background(), commands.CreateRateRequest{
			ServiceID: svc.ID, Rating: 4,
		}, userID)
		assert.NoError(t, err, "only live ratings count toward uniqueness")
	})

	t.Run("a booking manager may remove any rating", func(t *testing.T) {
		f := newRateFixture()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: uuid.New(), UserID: uuid.New(), Rating: 1})

		err := f.cmds.DeleteRate(context.Background(), rateID, uuid.New(), user.RoleBookingManager)

		require.NoError(t, err)
		assert.True(t, f.state.rates[rateID].Deleted)
	})

	t.Run("a stranger is forbidden", func(t *testing.T) {
		f := newRateFixture()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: uuid.New(), UserID: uuid.New(), Rating: 1})

		err := f.cmds.DeleteRate(context.Background(), rateID, uuid.New(), user.RoleUser)

		assert.ErrorIs(t, err, commands.ErrRateNotOwned)
		assert.False(t, f.state.rates[rateID].Deleted)
	})

	t.Run("deleting twice reports not found", func(t *testing.T) {
		f := newRateFixture()
		userID := uuid.New()
		rateID := uuid.New()
		f.state.addRate(&shared.RateSnapshot{ID: rateID, ServiceID: uuid.New(), UserID: userID, Rating: 1})

		require.NoError(t, f.cmds.DeleteRate(context.Background(), rateID, userID, user.RoleUser))

		err := f.cmds.DeleteRate(context.Background(), rateID, userID, user.RoleUser)
		assert.ErrorIs(t, err, commands.ErrRateNotFoundWrite)
	})
}
