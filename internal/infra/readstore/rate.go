package readstore

import (
	"context"
	"time"

	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type RateReadStore struct {
	db db.DBTX
}

func NewRateReadStore(dbtx db.DBTX) *RateReadStore {
	return &RateReadStore{db: dbtx}
}

func (r *RateReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RateView, error) {
	const query = `
		SELECT r.id, r.service_id, r.user_id, u.email, r.rating, r.created_at
		FROM rates r
		JOIN users u ON u.id = r.user_id
		WHERE r.id = $1 AND NOT r.deleted`

	var rv queries.RateView
	err := r.db.QueryRow(ctx, query, id).Scan(&rv.ID, &rv.ServiceID, &rv.UserID, &rv.UserEmail, &rv.Rating, &rv.CreatedAt)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get rate by id", err)
	}
	return &rv, nil
}

func (r *RateReadStore) FindByServiceFirstPage(ctx context.Context, serviceID uuid.UUID, limit int32) ([]*queries.RateView, error) {
	const query = `
		SELECT r.id, r.service_id, r.user_id, u.email, r.rating, r.created_at
		FROM rates r
		JOIN users u ON u.id = r.user_id
		WHERE r.service_id = $1 AND NOT r.deleted
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $2`

	return r.queryList(ctx, query, serviceID, limit)
}

func (r *RateReadStore) FindByServiceKeyset(ctx context.Context, serviceID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.RateView, error) {
	const query = `
		SELECT r.id, r.service_id, r.user_id, u.email, r.rating, r.created_at
		FROM rates r
		JOIN users u ON u.id = r.user_id
		WHERE r.service_id = $1 AND NOT r.deleted
		  AND (r.created_at, r.id) < ($2, $3)
		ORDER BY r.created_at DESC, r.id DESC
		LIMIT $4`

	return r.queryList(ctx, query, serviceID, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
}

func (r *RateReadStore) queryList(ctx context.Context, query string, args ...any) ([]*queries.RateView, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list rates", err)
	}
	defer rows.Close()

	var items []*queries.RateView
	for rows.Next() {
		var rv queries.RateView
		if err := rows.Scan(&rv.ID, &rv.ServiceID, &rv.UserID, &rv.UserEmail, &rv.Rating, &rv.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan rate row", err)
		}
		items = append(items, &rv)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate rate rows", err)
	}
	return items, nil
}

func (r *RateReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.RateSnapshot, error) {
	const query = `
		SELECT id, service_id, user_id, rating, deleted
		FROM rates
		WHERE id = $1`

	var snap shared.RateSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.ServiceID, &snap.UserID, &snap.Rating, &snap.Deleted)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("rate not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get rate snapshot", err)
	}
	return &snap, nil
}
