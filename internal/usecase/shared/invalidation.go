package shared

import (
	"context"
	"log/slog"

	"slotmarket/internal/domain/booking"

	"github.com/google/uuid"
)

// CacheInvalidator drops derived cache entries after a write commits.
// Commands call it explicitly once the transaction has succeeded; a
// failed delete is logged and otherwise ignored because the entry
// expires on its own TTL.
type CacheInvalidator struct {
	cache Cache
}

func NewCacheInvalidator(cache Cache) *CacheInvalidator {
	return &CacheInvalidator{cache: cache}
}

func (i *CacheInvalidator) OnBookingChanged(ctx context.Context, key booking.SlotKey) {
	i.drop(ctx, SlotAvailabilityKey(key))
}

func (i *CacheInvalidator) OnSlotChanged(ctx context.Context, key booking.SlotKey) {
	i.drop(ctx, SlotAvailabilityKey(key))
}

func (i *CacheInvalidator) OnRateChanged(ctx context.Context, serviceID uuid.UUID) {
	i.drop(ctx, AvgRatingKey(serviceID))
}

func (i *CacheInvalidator) drop(ctx context.Context, key string) {
	if err := i.cache.Delete(ctx, key); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "key", key, "error", err)
	}
}
