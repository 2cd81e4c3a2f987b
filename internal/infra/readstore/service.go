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
	"github.com/jackc/pgx/v5/pgtype"
)

type ServiceReadStore struct {
	db db.DBTX
}

func NewServiceReadStore(dbtx db.DBTX) *ServiceReadStore {
	return &ServiceReadStore{db: dbtx}
}

func (r *ServiceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ServiceView, error) {
	const query = `
		SELECT id, name, description, category, location, price, is_active, author_id, created_at, updated_at
		FROM services
		WHERE id = $1 AND NOT deleted`

	var (
		sv    queries.ServiceView
		price pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&sv.ID, &sv.Name, &sv.Description, &sv.Category, &sv.Location,
		&price, &sv.IsActive, &sv.AuthorID, &sv.CreatedAt, &sv.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get service by id", err)
	}
	sv.Price = pgconv.DecimalFromNumeric(price).StringFixed(2)
	return &sv, nil
}

func (r *ServiceReadStore) FindFirstPage(ctx context.Context, limit int32) ([]*queries.ServiceListItem, error) {
	const query = `
		SELECT id, name, category, location, price, is_active, created_at
		FROM services
		WHERE NOT deleted AND is_active
		ORDER BY created_at DESC, id DESC
		LIMIT $1`

	return r.queryList(ctx, query, limit)
}

func (r *ServiceReadStore) FindKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.ServiceListItem, error) {
	const query = `
		SELECT id, name, category, location, price, is_active, created_at
		FROM services
		WHERE NOT deleted AND is_active
		  AND (created_at, id) < ($1, $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3`

	return r.queryList(ctx, query, pgconv.TimeToPgtype(lastCreatedAt), lastID, limit)
}

func (r *ServiceReadStore) queryList(ctx context.Context, query string, args ...any) ([]*queries.ServiceListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list services", err)
	}
	defer rows.Close()

	var items []*queries.ServiceListItem
	for rows.Next() {
		var (
			item  queries.ServiceListItem
			price pgtype.Numeric
		)
		if err := rows.Scan(&item.ID, &item.Name, &item.Category, &item.Location, &price, &item.IsActive, &item.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan service row", err)
		}
		item.Price = pgconv.DecimalFromNumeric(price).StringFixed(2)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate service rows", err)
	}
	return items, nil
}

// SnapshotByID reads the service row for command validation, soft
// deleted rows included.
func (r *ServiceReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.ServiceSnapshot, error) {
	const query = `
		SELECT id, name, description, category, location, price, is_active, deleted, author_id, created_at
		FROM services
		WHERE id = $1`

	var (
		snap  shared.ServiceSnapshot
		price pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.Name, &snap.Description, &snap.Category, &snap.Location,
		&price, &snap.IsActive, &snap.Deleted, &snap.AuthorID, &snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("service not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get service snapshot", err)
	}
	snap.Price = pgconv.DecimalFromNumeric(price)
	return &snap, nil
}

// NameTaken enforces the live-name uniqueness rule ahead of the
// partial unique index.
func (r *ServiceReadStore) NameTaken(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM services
			WHERE name = $1 AND NOT deleted
			  AND ($2::uuid IS NULL OR id <> $2)
		)`

	var taken bool
	err := r.db.QueryRow(ctx, query, name, pgconv.UUIDPtrToPgtype(excludeID)).Scan(&taken)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check service name", err)
	}
	return taken, nil
}
