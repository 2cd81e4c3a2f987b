package queries

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"

	"github.com/google/uuid"
)

type SlotReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	FindByService(ctx context.Context, serviceID uuid.UUID, date *booking.Date) ([]*SlotView, error)
}

type SlotQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error)
	// ListByService returns a service's slots in slot order, optionally
	// restricted to a single date.
	ListByService(ctx context.Context, serviceID uuid.UUID, date *booking.Date) ([]*SlotView, error)
}

type slotQueriesImpl struct {
	reads SlotReadStore
}

func NewSlotQueries(reads SlotReadStore) SlotQueries {
	return &slotQueriesImpl{reads: reads}
}

func (q *slotQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*SlotView, error) {
	sv, err := q.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return sv, nil
}

func (q *slotQueriesImpl) ListByService(ctx context.Context, serviceID uuid.UUID, date *booking.Date) ([]*SlotView, error) {
	return q.reads.FindByService(ctx, serviceID, date)
}
