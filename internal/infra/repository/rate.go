package repository

import (
	"context"

	"slotmarket/internal/domain/rate"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"

	"github.com/google/uuid"
)

type RateRepository struct{}

func NewRateRepository() *RateRepository {
	return &RateRepository{}
}

func (r *RateRepository) Create(ctx context.Context, dbtx db.DBTX, rt *rate.Rate) (uuid.UUID, error) {
	const query = `
		INSERT INTO rates (id, service_id, user_id, rating, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, FALSE, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		rt.ID(), rt.ServiceID(), rt.UserID(), rt.Rating().Value(),
		rt.CreatedAt(), rt.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create rate", err)
	}
	return id, nil
}

func (r *RateRepository) UpdateRating(ctx context.Context, dbtx db.DBTX, id uuid.UUID, rating int) error {
	const query = `
		UPDATE rates
		SET rating = $2, updated_at = now()
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query, id, rating)
	if err != nil {
		return infra.WrapRepoErr("failed to update rate", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *RateRepository) SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `
		UPDATE rates
		SET deleted = TRUE, updated_at = now()
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to soft delete rate", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("rate not found", nil, infra.KindNotFound)
	}
	return nil
}
