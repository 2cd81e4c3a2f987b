package queries

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/usecase/shared"
)

// AvailabilityReadStore answers whether a slot is already taken, counting
// both reserved slot rows and bookings in an occupying status. Returns a
// KindNotFound error when the service does not exist.
type AvailabilityReadStore interface {
	SlotTaken(ctx context.Context, key booking.SlotKey) (bool, error)
}

type AvailabilityQueries interface {
	CheckSlot(ctx context.Context, key booking.SlotKey) (bool, error)
}

type availabilityQueriesImpl struct {
	reads AvailabilityReadStore
	cache shared.Cache
	ttl   time.Duration
}

func NewAvailabilityQueries(reads AvailabilityReadStore, cache shared.Cache, ttl time.Duration) AvailabilityQueries {
	return &availabilityQueriesImpl{reads: reads, cache: cache, ttl: ttl}
}

// CheckSlot is a read-through lookup: a cached "true"/"false" is served
// as-is, a miss recomputes from the database and caches the answer.
// Cache failures degrade to a plain recompute.
func (q *availabilityQueriesImpl) CheckSlot(ctx context.Context, key booking.SlotKey) (bool, error) {
	cacheKey := shared.SlotAvailabilityKey(key)

	cached, hit, err := q.cache.Get(ctx, cacheKey)
	if err != nil {
		slog.WarnContext(ctx, "availability cache read failed", "key", cacheKey, "error", err)
	} else if hit {
		return cached == "true", nil
	}

	taken, err := q.reads.SlotTaken(ctx, key)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return false, ErrServiceNotFound
		}
		return false, err
	}
	available := !taken

	if err := q.cache.Set(ctx, cacheKey, strconv.FormatBool(available), q.ttl); err != nil {
		slog.WarnContext(ctx, "availability cache write failed", "key", cacheKey, "error", err)
	}
	return available, nil
}
