package shared

import (
	"time"

	"slotmarket/internal/domain/booking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Minimal snapshots for command read operations

type ServiceSnapshot struct {
	ID          uuid.UUID
	Name        string
	Description string
	Category    string
	Location    string
	Price       decimal.Decimal
	IsActive    bool
	Deleted     bool
	AuthorID    uuid.UUID
	CreatedAt   time.Time
}

type UserSnapshot struct {
	ID      uuid.UUID
	Email   string
	Role    string
	Deleted bool
}

type BookingSnapshot struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	UserID    uuid.UUID
	Date      booking.Date
	Time      booking.TimeOfDay
	Status    booking.Status
	Notes     string
	Price     decimal.Decimal
	Deleted   bool
	CreatedAt time.Time
}

func (s *BookingSnapshot) SlotKey() booking.SlotKey {
	return booking.SlotKey{ServiceID: s.ServiceID, Date: s.Date, Time: s.Time}
}

type SlotSnapshot struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	Date      booking.Date
	Time      booking.TimeOfDay
	IsBooked  bool
}

func (s *SlotSnapshot) SlotKey() booking.SlotKey {
	return booking.SlotKey{ServiceID: s.ServiceID, Date: s.Date, Time: s.Time}
}

type RateSnapshot struct {
	ID        uuid.UUID
	ServiceID uuid.UUID
	UserID    uuid.UUID
	Rating    int
	Deleted   bool
}
