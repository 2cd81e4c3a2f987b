package readstore

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
)

type AvailabilityReadStore struct {
	db db.DBTX
}

func NewAvailabilityReadStore(dbtx db.DBTX) *AvailabilityReadStore {
	return &AvailabilityReadStore{db: dbtx}
}

// SlotTaken derives availability from both sources of truth: an
// occupying booking on the key, or a slot row already flagged booked.
func (r *AvailabilityReadStore) SlotTaken(ctx context.Context, key booking.SlotKey) (bool, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM services WHERE id = $1 AND NOT deleted)`

	var serviceExists bool
	if err := r.db.QueryRow(ctx, existsQuery, key.ServiceID).Scan(&serviceExists); err != nil {
		return false, infra.WrapRepoErr("failed to check service existence", err)
	}
	if !serviceExists {
		return false, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}

	const takenQuery = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE service_id = $1 AND date = $2 AND time = $3
			  AND NOT deleted
			  AND status IN ('pending', 'confirmed', 'completed')
		) OR EXISTS (
			SELECT 1 FROM slots
			WHERE service_id = $1 AND date = $2 AND time = $3 AND is_booked
		)`

	var taken bool
	err := r.db.QueryRow(ctx, takenQuery, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time)).Scan(&taken)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check slot availability", err)
	}
	return taken, nil
}
