package repository

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"

	"github.com/google/uuid"
)

type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

// Ensure inserts the slot row if missing. The unique index on
// (service_id, date, time) makes concurrent Ensure calls converge on a
// single row.
func (r *SlotRepository) Ensure(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) error {
	const query = `
		INSERT INTO slots (id, service_id, date, time, is_booked)
		VALUES (gen_random_uuid(), $1, $2, $3, FALSE)
		ON CONFLICT (service_id, date, time) DO NOTHING`

	if _, err := dbtx.Exec(ctx, query, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time)); err != nil {
		return infra.WrapRepoErr("failed to ensure slot", err)
	}
	return nil
}

// TryReserve flips is_booked false->true. Zero rows affected means the
// slot was already held; racing transactions serialize on the row lock.
func (r *SlotRepository) TryReserve(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) (bool, error) {
	const query = `
		UPDATE slots
		SET is_booked = TRUE, updated_at = now()
		WHERE service_id = $1 AND date = $2 AND time = $3 AND NOT is_booked`

	tag, err := dbtx.Exec(ctx, query, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time))
	if err != nil {
		return false, infra.WrapRepoErr("failed to reserve slot", err)
	}
	return tag.RowsAffected() == 1, nil
}

func (r *SlotRepository) Release(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) error {
	const query = `
		UPDATE slots
		SET is_booked = FALSE, updated_at = now()
		WHERE service_id = $1 AND date = $2 AND time = $3 AND is_booked`

	if _, err := dbtx.Exec(ctx, query, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time)); err != nil {
		return infra.WrapRepoErr("failed to release slot", err)
	}
	return nil
}

func (r *SlotRepository) Insert(ctx context.Context, dbtx db.DBTX, key booking.SlotKey, isBooked bool) (uuid.UUID, error) {
	const query = `
		INSERT INTO slots (id, service_id, date, time, is_booked)
		VALUES (gen_random_uuid(), $1, $2, $3, $4)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time), isBooked).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert slot", err)
	}
	return id, nil
}

func (r *SlotRepository) UpdateKey(ctx context.Context, dbtx db.DBTX, id uuid.UUID, key booking.SlotKey) error {
	const query = `
		UPDATE slots
		SET service_id = $2, date = $3, time = $4, updated_at = now()
		WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, id, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time))
	if err != nil {
		return infra.WrapRepoErr("failed to update slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *SlotRepository) Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `DELETE FROM slots WHERE id = $1`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete slot", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	return nil
}
