package repository

import (
	"context"

	"slotmarket/internal/domain/service"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ServiceRepository struct{}

func NewServiceRepository() *ServiceRepository {
	return &ServiceRepository{}
}

func (r *ServiceRepository) Create(ctx context.Context, dbtx db.DBTX, s *service.Service) (uuid.UUID, error) {
	const query = `
		INSERT INTO services (id, name, description, category, location, price, is_active, deleted, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, FALSE, $8, $9, $10)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		s.ID(), s.Name(), s.Description(), s.Category(), s.Location(),
		pgconv.NumericFromDecimal(s.Price()), s.IsActive(), s.AuthorID(),
		s.CreatedAt(), s.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create service", err)
	}
	return id, nil
}

func (r *ServiceRepository) Update(ctx context.Context, dbtx db.DBTX, s *service.Service) error {
	const query = `
		UPDATE services
		SET name = $2, description = $3, category = $4, location = $5, price = $6, is_active = $7, updated_at = $8
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query,
		s.ID(), s.Name(), s.Description(), s.Category(), s.Location(),
		pgconv.NumericFromDecimal(s.Price()), s.IsActive(), s.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *ServiceRepository) SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `
		UPDATE services
		SET deleted = TRUE, is_active = FALSE, updated_at = now()
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to soft delete service", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}
	return nil
}
