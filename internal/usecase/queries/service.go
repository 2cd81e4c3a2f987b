package queries

import (
	"context"
	"time"

	"slotmarket/internal/infra"

	"github.com/google/uuid"
)

type ServiceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	FindFirstPage(ctx context.Context, limit int32) ([]*ServiceListItem, error)
	FindKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int32) ([]*ServiceListItem, error)
}

type ServiceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error)
	List(ctx context.Context, cursor *Cursor, limit int) ([]*ServiceListItem, *Cursor, error)
}

type serviceQueriesImpl struct {
	reads   ServiceReadStore
	ratings RatingQueries
}

func NewServiceQueries(reads ServiceReadStore, ratings RatingQueries) ServiceQueries {
	return &serviceQueriesImpl{reads: reads, ratings: ratings}
}

// GetByID enriches the service row with its cached average rating.
func (q *serviceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ServiceView, error) {
	sv, err := q.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	avg, err := q.ratings.AverageRating(ctx, id)
	if err != nil {
		return nil, err
	}
	sv.AvgRating = avg.StringFixed(2)
	return sv, nil
}

func (q *serviceQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*ServiceListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*ServiceListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.reads.FindFirstPage(ctx, int32(limit+1))
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.reads.FindKeyset(ctx, lastCreatedAt, lastID, int32(limit+1))
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
