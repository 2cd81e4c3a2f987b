package repository

import (
	"context"

	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"

	"github.com/google/uuid"
)

type UserRepository struct{}

func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error {
	const query = `
		UPDATE users
		SET last_login = now(), updated_at = now()
		WHERE id = $1 AND NOT deleted`

	if _, err := dbtx.Exec(ctx, query, userID); err != nil {
		return infra.WrapRepoErr("failed to update last login", err)
	}
	return nil
}
