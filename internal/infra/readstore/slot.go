package readstore

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.SlotView, error) {
	const query = `
		SELECT id, service_id, date, time, is_booked, created_at, updated_at
		FROM slots
		WHERE id = $1`

	var (
		sv   queries.SlotView
		date pgtype.Date
		tod  pgtype.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&sv.ID, &sv.ServiceID, &date, &tod, &sv.IsBooked, &sv.CreatedAt, &sv.UpdatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot by id", err)
	}
	sv.Date = dateFromPg(date).String()
	sv.Time = timeFromPg(tod).String()
	return &sv, nil
}

func (r *SlotReadStore) FindByService(ctx context.Context, serviceID uuid.UUID, date *booking.Date) ([]*queries.SlotView, error) {
	query := `
		SELECT id, service_id, date, time, is_booked, created_at, updated_at
		FROM slots
		WHERE service_id = $1`
	args := []any{serviceID}
	if date != nil {
		query += ` AND date = $2`
		args = append(args, dateToPg(*date))
	}
	query += ` ORDER BY date, time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var items []*queries.SlotView
	for rows.Next() {
		var (
			sv  queries.SlotView
			d   pgtype.Date
			tod pgtype.Time
		)
		if err := rows.Scan(&sv.ID, &sv.ServiceID, &d, &tod, &sv.IsBooked, &sv.CreatedAt, &sv.UpdatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		sv.Date = dateFromPg(d).String()
		sv.Time = timeFromPg(tod).String()
		items = append(items, &sv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}
	return items, nil
}

func (r *SlotReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	const query = `
		SELECT id, service_id, date, time, is_booked
		FROM slots
		WHERE id = $1`

	var (
		snap shared.SlotSnapshot
		date pgtype.Date
		tod  pgtype.Time
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.ServiceID, &date, &tod, &snap.IsBooked)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot snapshot", err)
	}
	snap.Date = dateFromPg(date)
	snap.Time = timeFromPg(tod)
	return &snap, nil
}

func (r *SlotReadStore) SnapshotByKey(ctx context.Context, key booking.SlotKey) (*shared.SlotSnapshot, error) {
	const query = `
		SELECT id, service_id, date, time, is_booked
		FROM slots
		WHERE service_id = $1 AND date = $2 AND time = $3`

	var (
		snap shared.SlotSnapshot
		date pgtype.Date
		tod  pgtype.Time
	)
	err := r.db.QueryRow(ctx, query, key.ServiceID, dateToPg(key.Date), timeToPg(key.Time)).
		Scan(&snap.ID, &snap.ServiceID, &date, &tod, &snap.IsBooked)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get slot snapshot by key", err)
	}
	snap.Date = dateFromPg(date)
	snap.Time = timeFromPg(tod)
	return &snap, nil
}
