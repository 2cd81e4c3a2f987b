package repository

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	const query = `
		INSERT INTO bookings (id, service_id, user_id, date, time, status, notes, price, deleted, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)
		RETURNING id`

	var id uuid.UUID
	err := dbtx.QueryRow(ctx, query,
		b.ID(), b.ServiceID(), b.UserID(),
		dateToPg(b.Date()), timeToPg(b.Time()),
		b.Status().String(), b.Notes(), pgconv.NumericFromDecimal(b.Price()),
		b.CreatedAt(), b.UpdatedAt(),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}
	return id, nil
}

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	const query = `
		UPDATE bookings
		SET service_id = $2, date = $3, time = $4, status = $5, notes = $6, price = $7, updated_at = $8
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query,
		b.ID(), b.ServiceID(),
		dateToPg(b.Date()), timeToPg(b.Time()),
		b.Status().String(), b.Notes(), pgconv.NumericFromDecimal(b.Price()),
		b.UpdatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	const query = `
		UPDATE bookings
		SET deleted = TRUE, updated_at = now()
		WHERE id = $1 AND NOT deleted`

	tag, err := dbtx.Exec(ctx, query, id)
	if err != nil {
		return infra.WrapRepoErr("failed to soft delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
