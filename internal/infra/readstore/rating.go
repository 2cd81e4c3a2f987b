package readstore

import (
	"context"

	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

type RatingReadStore struct {
	db db.DBTX
}

func NewRatingReadStore(dbtx db.DBTX) *RatingReadStore {
	return &RatingReadStore{db: dbtx}
}

func (r *RatingReadStore) AverageRating(ctx context.Context, serviceID uuid.UUID) (decimal.Decimal, bool, error) {
	const existsQuery = `SELECT EXISTS (SELECT 1 FROM services WHERE id = $1 AND NOT deleted)`

	var serviceExists bool
	if err := r.db.QueryRow(ctx, existsQuery, serviceID).Scan(&serviceExists); err != nil {
		return decimal.Zero, false, infra.WrapRepoErr("failed to check service existence", err)
	}
	if !serviceExists {
		return decimal.Zero, false, infra.WrapRepoErr("service not found", nil, infra.KindNotFound)
	}

	const avgQuery = `
		SELECT AVG(rating)::numeric, COUNT(*)
		FROM rates
		WHERE service_id = $1 AND NOT deleted`

	var (
		avg   pgtype.Numeric
		count int64
	)
	if err := r.db.QueryRow(ctx, avgQuery, serviceID).Scan(&avg, &count); err != nil {
		return decimal.Zero, false, infra.WrapRepoErr("failed to aggregate ratings", err)
	}
	if count == 0 {
		return decimal.Zero, false, nil
	}
	return pgconv.DecimalFromNumeric(avg), true, nil
}
