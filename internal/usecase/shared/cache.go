package shared

import (
	"context"
	"fmt"
	"time"

	"slotmarket/internal/domain/booking"

	"github.com/google/uuid"
)

// Cache is the injected key-value capability backing the derived
// availability and average-rating values. It is never authoritative:
// every cached value is re-derivable from the relational store, and
// callers must treat errors as cache misses.
type Cache interface {
	// Get returns (value, true, nil) on a hit and ("", false, nil) on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

func SlotAvailabilityKey(key booking.SlotKey) string {
	return fmt.Sprintf("slot-availability:%s:%s:%s", key.ServiceID, key.Date, key.Time)
}

func AvgRatingKey(serviceID uuid.UUID) string {
	return fmt.Sprintf("service:%s:avg_rating", serviceID)
}
