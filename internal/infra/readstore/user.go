package readstore

import (
	"context"

	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type UserReadStore struct {
	db db.DBTX
}

func NewUserReadStore(dbtx db.DBTX) *UserReadStore {
	return &UserReadStore{db: dbtx}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.AuthorizedUserView, error) {
	const query = `
		SELECT id, email, role, last_login
		FROM users
		WHERE id = $1 AND NOT deleted`

	var (
		uv        queries.AuthorizedUserView
		lastLogin pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, query, id).Scan(&uv.ID, &uv.Email, &uv.Role, &lastLogin)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user by id", err)
	}
	if lastLogin.Valid {
		uv.LastLogin = &lastLogin.Time
	}
	return &uv, nil
}

func (r *UserReadStore) FindByEmail(ctx context.Context, email string) (*queries.AuthorizedUserView, string, error) {
	const query = `
		SELECT id, email, role, last_login, password_hash
		FROM users
		WHERE email = $1 AND NOT deleted`

	var (
		uv           queries.AuthorizedUserView
		lastLogin    pgtype.Timestamptz
		passwordHash string
	)
	err := r.db.QueryRow(ctx, query, email).Scan(&uv.ID, &uv.Email, &uv.Role, &lastLogin, &passwordHash)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, "", infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, "", infra.WrapRepoErr("failed to get user by email", err)
	}
	if lastLogin.Valid {
		uv.LastLogin = &lastLogin.Time
	}
	return &uv, passwordHash, nil
}

func (r *UserReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	const query = `
		SELECT id, email, role, deleted
		FROM users
		WHERE id = $1`

	var snap shared.UserSnapshot
	err := r.db.QueryRow(ctx, query, id).Scan(&snap.ID, &snap.Email, &snap.Role, &snap.Deleted)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get user snapshot", err)
	}
	return &snap, nil
}
