package queries

import (
	"context"
	"time"

	"slotmarket/internal/infra"

	"github.com/google/uuid"
)

type RateReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RateView, error)
	FindByServiceFirstPage(ctx context.Context, serviceID uuid.UUID, limit int32) ([]*RateView, error)
	FindByServiceKeyset(ctx context.Context, serviceID uuid.UUID, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*RateView, error)
}

type RateQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*RateView, error)
	ListByService(ctx context.Context, serviceID uuid.UUID, cursor *Cursor, limit int) ([]*RateView, *Cursor, error)
}

type rateQueriesImpl struct {
	reads RateReadStore
}

func NewRateQueries(reads RateReadStore) RateQueries {
	return &rateQueriesImpl{reads: reads}
}

func (q *rateQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*RateView, error) {
	rv, err := q.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRateNotFound
		}
		return nil, err
	}
	return rv, nil
}

func (q *rateQueriesImpl) ListByService(ctx context.Context, serviceID uuid.UUID, cursor *Cursor, limit int) ([]*RateView, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*RateView
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.reads.FindByServiceFirstPage(ctx, serviceID, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.reads.FindByServiceKeyset(ctx, serviceID, lastCreatedAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
