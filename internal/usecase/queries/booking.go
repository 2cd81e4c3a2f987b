package queries

import (
	"context"
	"time"

	"slotmarket/internal/domain/user"
	"slotmarket/internal/infra"
	"slotmarket/internal/pkg/clock"

	"github.com/google/uuid"
)

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	FindFirstPage(ctx context.Context, filters BookingFilters, now time.Time, limit int32) ([]*BookingListItem, error)
	FindKeyset(ctx context.Context, filters BookingFilters, now time.Time, lastStartsAt time.Time, lastID uuid.UUID, limit int32) ([]*BookingListItem, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error)
	List(ctx context.Context, actorID uuid.UUID, actorRole user.Role, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error)
}

type bookingQueriesImpl struct {
	reads BookingReadStore
	clock clock.Clock
}

func NewBookingQueries(reads BookingReadStore, clk clock.Clock) BookingQueries {
	return &bookingQueriesImpl{reads: reads, clock: clk}
}

func (q *bookingQueriesImpl) GetByID(ctx context.Context, actorID uuid.UUID, actorRole user.Role, id uuid.UUID) (*BookingView, error) {
	bv, err := q.reads.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if bv.UserID != actorID && !user.Can(actorRole, user.ActionManageAnyBooking) {
		return nil, ErrBookingAccess
	}
	return bv, nil
}

// List pages bookings in slot order. Actors without the list-all
// capability only ever see their own bookings regardless of filters.
func (q *bookingQueriesImpl) List(ctx context.Context, actorID uuid.UUID, actorRole user.Role, filters BookingFilters, cursor *Cursor, limit int) ([]*BookingListItem, *Cursor, error) {
	if !user.Can(actorRole, user.ActionListAllBookings) {
		filters.UserID = &actorID
	}
	limit = ValidateLimit(limit)
	now := q.clock.Now()

	var rows []*BookingListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.reads.FindFirstPage(ctx, filters, now, int32(limit+1))
	} else {
		lastStartsAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, ErrInvalidCursor
		}
		rows, err = q.reads.FindKeyset(ctx, filters, now, lastStartsAt, lastID, int32(limit+1))
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.StartsAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
