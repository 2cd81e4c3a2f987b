package shared

import (
	"context"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/domain/rate"
	"slotmarket/internal/domain/service"
	"slotmarket/internal/infra/db"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Slots() SlotRepository
	Rates() RateRepository
	Services() ServiceRepository
	Users() UserRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ServiceByID(ctx context.Context, id uuid.UUID) (*ServiceSnapshot, error)
	ServiceNameTaken(ctx context.Context, name string, excludeID *uuid.UUID) (bool, error)
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	SlotByKey(ctx context.Context, key booking.SlotKey) (*SlotSnapshot, error)
	RateByID(ctx context.Context, id uuid.UUID) (*RateSnapshot, error)
	// ActiveBookingExists reports whether a conflict-set booking holds
	// the key, optionally excluding one booking (the one being updated).
	ActiveBookingExists(ctx context.Context, key booking.SlotKey, excludeID *uuid.UUID) (bool, error)
}

type BookingRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error
	SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type SlotRepository interface {
	// Ensure creates the slot row for key if absent; no-op when present.
	Ensure(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) error
	// TryReserve atomically flips is_booked false→true. Returns false
	// when the slot was already booked.
	TryReserve(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) (bool, error)
	// Release clears is_booked; no-op when the slot row is absent.
	Release(ctx context.Context, dbtx db.DBTX, key booking.SlotKey) error
	Insert(ctx context.Context, dbtx db.DBTX, key booking.SlotKey, isBooked bool) (uuid.UUID, error)
	UpdateKey(ctx context.Context, dbtx db.DBTX, id uuid.UUID, key booking.SlotKey) error
	Delete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type RateRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, r *rate.Rate) (uuid.UUID, error)
	UpdateRating(ctx context.Context, dbtx db.DBTX, id uuid.UUID, rating int) error
	SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type ServiceRepository interface {
	Create(ctx context.Context, dbtx db.DBTX, s *service.Service) (uuid.UUID, error)
	Update(ctx context.Context, dbtx db.DBTX, s *service.Service) error
	// SoftDelete marks the service deleted and inactive.
	SoftDelete(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error
}

type UserRepository interface {
	UpdateLastLogin(ctx context.Context, dbtx db.DBTX, userID uuid.UUID) error
}
