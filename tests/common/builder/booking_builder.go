//go:build unit || e2e

package builder

import (
	"time"

	dombooking "slotmarket/internal/domain/booking"
	reqdto "slotmarket/internal/handler/dto/request"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type BookingBuilder struct {
	ServiceID   uuid.UUID
	ServiceName string
	UserID      uuid.UUID
	UserEmail   string
	Date        dombooking.Date
	Time        dombooking.TimeOfDay
	Status      dombooking.Status
	Notes       string
	Price       decimal.Decimal
	CreatedAt   time.Time
	Now         time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	slotTime, _ := dombooking.NewTimeOfDay(10, 0, 0)
	return &BookingBuilder{
		ServiceID:   uuid.New(),
		ServiceName: "Test Service",
		UserID:      uuid.New(),
		UserEmail:   "booker@example.com",
		Date:        dombooking.DateOf(now.AddDate(0, 0, 7)),
		Time:        slotTime,
		Status:      dombooking.StatusPending,
		Notes:       "Window seat please",
		Price:       decimal.RequireFromString("100.00"),
		CreatedAt:   now,
		Now:         now,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	return dombooking.NewBooking(b.ServiceID, b.UserID, b.Date, b.Time, b.Notes, b.Price, b.Now)
}

func (b *BookingBuilder) BuildSlotKey() dombooking.SlotKey {
	return dombooking.SlotKey{ServiceID: b.ServiceID, Date: b.Date, Time: b.Time}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	notes := b.Notes
	return reqdto.CreateBookingRequest{
		ServiceID: b.ServiceID,
		Date:      b.Date.String(),
		Time:      b.Time.String(),
		Notes:     &notes,
	}
}

func (b *BookingBuilder) BuildViewQuery() *queries.BookingView {
	return &queries.BookingView{
		ID:          uuid.New(),
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		UserID:      b.UserID,
		UserEmail:   b.UserEmail,
		Date:        b.Date.String(),
		Time:        b.Time.String(),
		Status:      b.Status.String(),
		Notes:       b.Notes,
		Price:       b.Price.StringFixed(2),
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:          uuid.New(),
		ServiceID:   b.ServiceID,
		ServiceName: b.ServiceName,
		UserID:      b.UserID,
		Date:        b.Date.String(),
		Time:        b.Time.String(),
		Status:      b.Status.String(),
		Price:       b.Price.StringFixed(2),
		CreatedAt:   b.CreatedAt,
		StartsAt:    startsAt(b.Date, b.Time),
	}
}

func (b *BookingBuilder) BuildSnapshot() *shared.BookingSnapshot {
	return &shared.BookingSnapshot{
		ID:        uuid.New(),
		ServiceID: b.ServiceID,
		UserID:    b.UserID,
		Date:      b.Date,
		Time:      b.Time,
		Status:    b.Status,
		Notes:     b.Notes,
		Price:     b.Price,
		CreatedAt: b.CreatedAt,
	}
}

func (b *BookingBuilder) WithServiceID(id uuid.UUID) *BookingBuilder {
	b.ServiceID = id
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithDate(date dombooking.Date) *BookingBuilder {
	b.Date = date
	return b
}

func (b *BookingBuilder) WithTime(t dombooking.TimeOfDay) *BookingBuilder {
	b.Time = t
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithNotes(notes string) *BookingBuilder {
	b.Notes = notes
	return b
}

func (b *BookingBuilder) WithPrice(price decimal.Decimal) *BookingBuilder {
	b.Price = price
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) AsCancelled() *BookingBuilder {
	b.Status = dombooking.StatusCancelled
	return b
}

func startsAt(d dombooking.Date, t dombooking.TimeOfDay) time.Time {
	return d.Time().Add(time.Duration(t.Microseconds()) * time.Microsecond)
}
