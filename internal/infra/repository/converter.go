package repository

import (
	"slotmarket/internal/domain/booking"

	"github.com/jackc/pgx/v5/pgtype"
)

func dateToPg(d booking.Date) pgtype.Date {
	return pgtype.Date{Time: d.Time(), Valid: true}
}

func timeToPg(t booking.TimeOfDay) pgtype.Time {
	return pgtype.Time{Microseconds: t.Microseconds(), Valid: true}
}
