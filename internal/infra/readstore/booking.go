package readstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/infra"
	"slotmarket/internal/infra/db"
	"slotmarket/internal/pkg/pgconv"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	const query = `
		SELECT b.id, b.service_id, s.name, b.user_id, u.email, b.date, b.time, b.status, b.notes, b.price, b.created_at, b.updated_at
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		JOIN users u ON u.id = b.user_id
		WHERE b.id = $1 AND NOT b.deleted`

	var (
		bv    queries.BookingView
		date  pgtype.Date
		tod   pgtype.Time
		price pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&bv.ID, &bv.ServiceID, &bv.ServiceName, &bv.UserID, &bv.UserEmail,
		&date, &tod, &bv.Status, &bv.Notes, &price, &bv.CreatedAt, &bv.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking by id", err)
	}
	bv.Date = dateFromPg(date).String()
	bv.Time = timeFromPg(tod).String()
	bv.Price = pgconv.DecimalFromNumeric(price).StringFixed(2)
	return &bv, nil
}

func (r *BookingReadStore) FindFirstPage(ctx context.Context, filters queries.BookingFilters, now time.Time, limit int32) ([]*queries.BookingListItem, error) {
	query, args := buildBookingListQuery(filters, now, nil, nil, limit)
	return r.queryList(ctx, query, args)
}

func (r *BookingReadStore) FindKeyset(ctx context.Context, filters queries.BookingFilters, now time.Time, lastStartsAt time.Time, lastID uuid.UUID, limit int32) ([]*queries.BookingListItem, error) {
	query, args := buildBookingListQuery(filters, now, &lastStartsAt, &lastID, limit)
	return r.queryList(ctx, query, args)
}

func (r *BookingReadStore) queryList(ctx context.Context, query string, args []any) ([]*queries.BookingListItem, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var items []*queries.BookingListItem
	for rows.Next() {
		var (
			item  queries.BookingListItem
			date  pgtype.Date
			tod   pgtype.Time
			price pgtype.Numeric
		)
		if err := rows.Scan(
			&item.ID, &item.ServiceID, &item.ServiceName, &item.UserID,
			&date, &tod, &item.Status, &price, &item.CreatedAt, &item.StartsAt,
		); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking row", err)
		}
		item.Date = dateFromPg(date).String()
		item.Time = timeFromPg(tod).String()
		item.Price = pgconv.DecimalFromNumeric(price).StringFixed(2)
		items = append(items, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking rows", err)
	}
	return items, nil
}

// Bookings list in slot order; the (starts_at, id) pair is the keyset.
func buildBookingListQuery(filters queries.BookingFilters, now time.Time, lastStartsAt *time.Time, lastID *uuid.UUID, limit int32) (string, []any) {
	var sb strings.Builder
	sb.WriteString(`
		SELECT b.id, b.service_id, s.name, b.user_id, b.date, b.time, b.status, b.price, b.created_at, (b.date + b.time)::timestamp AS starts_at
		FROM bookings b
		JOIN services s ON s.id = b.service_id
		WHERE NOT b.deleted`)

	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filters.ServiceID != nil {
		sb.WriteString(" AND b.service_id = " + arg(*filters.ServiceID))
	}
	if filters.UserID != nil {
		sb.WriteString(" AND b.user_id = " + arg(*filters.UserID))
	}
	if filters.Status != nil {
		sb.WriteString(" AND b.status = " + arg(filters.Status.String()))
	}
	if filters.Date != nil {
		sb.WriteString(" AND b.date = " + arg(dateToPg(*filters.Date)))
	}
	if filters.Upcoming {
		d := arg(dateToPg(booking.DateOf(now)))
		t := arg(timeToPg(booking.TimeOfDayOf(now)))
		sb.WriteString(fmt.Sprintf(" AND (b.date > %s OR (b.date = %s AND b.time > %s))", d, d, t))
	}
	if lastStartsAt != nil && lastID != nil {
		sb.WriteString(fmt.Sprintf(" AND ((b.date + b.time)::timestamp, b.id) > (%s, %s)", arg(*lastStartsAt), arg(*lastID)))
	}

	sb.WriteString(" ORDER BY starts_at, b.id LIMIT " + arg(limit))
	return sb.String(), args
}

// SnapshotByID reads the booking row for command validation, soft
// deleted rows included.
func (r *BookingReadStore) SnapshotByID(ctx context.Context, id uuid.UUID) (*shared.BookingSnapshot, error) {
	const query = `
		SELECT id, service_id, user_id, date, time, status, notes, price, deleted, created_at
		FROM bookings
		WHERE id = $1`

	var (
		snap   shared.BookingSnapshot
		date   pgtype.Date
		tod    pgtype.Time
		status string
		price  pgtype.Numeric
	)
	err := r.db.QueryRow(ctx, query, id).Scan(
		&snap.ID, &snap.ServiceID, &snap.UserID,
		&date, &tod, &status, &snap.Notes, &price, &snap.Deleted, &snap.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to get booking snapshot", err)
	}
	snap.Date = dateFromPg(date)
	snap.Time = timeFromPg(tod)
	snap.Status = booking.Status(status)
	snap.Price = pgconv.DecimalFromNumeric(price)
	return &snap, nil
}

// ActiveBookingExists reports whether an occupying booking holds the
// key, optionally excluding one booking id.
func (r *BookingReadStore) ActiveBookingExists(ctx context.Context, key booking.SlotKey, excludeID *uuid.UUID) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM bookings
			WHERE service_id = $1 AND date = $2 AND time = $3
			  AND NOT deleted
			  AND status IN ('pending', 'confirmed', 'completed')
			  AND ($4::uuid IS NULL OR id <> $4)
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query,
		key.ServiceID, dateToPg(key.Date), timeToPg(key.Time), pgconv.UUIDPtrToPgtype(excludeID),
	).Scan(&exists)
	if err != nil {
		return false, infra.WrapRepoErr("failed to check active booking", err)
	}
	return exists, nil
}
