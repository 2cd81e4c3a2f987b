package queries

import (
	"time"

	"slotmarket/internal/domain/booking"

	"slotmarket/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrInvalidCursor = errs.New("invalid cursor")

	ErrServiceNotFound = errs.New("service not found")
	ErrBookingNotFound = errs.New("booking not found")
	ErrBookingAccess   = errs.New("booking access denied")
	ErrSlotNotFound    = errs.New("slot not found")
	ErrRateNotFound    = errs.New("rate not found")
)

// Read models (DTO for read side)
type BookingView struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`
	UserID      uuid.UUID `json:"user_id"`
	UserEmail   string    `json:"user_email"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type BookingListItem struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"service_id"`
	ServiceName string    `json:"service_name"`
	UserID      uuid.UUID `json:"user_id"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"created_at"`
	// StartsAt combines date and time for keyset pagination.
	StartsAt time.Time `json:"-"`
}

type ServiceView struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"is_active"`
	AuthorID    uuid.UUID `json:"author_id"`
	AvgRating   string    `json:"avg_rating"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type ServiceListItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Price     string    `json:"price"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type SlotView struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"service_id"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	IsBooked  bool      `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RateView struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"service_id"`
	UserID    uuid.UUID `json:"user_id"`
	UserEmail string    `json:"user_email"`
	Rating    int32     `json:"rating"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthorizedUserView struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// BookingFilters narrows booking listings. Nil fields are ignored.
type BookingFilters struct {
	ServiceID *uuid.UUID
	UserID    *uuid.UUID
	Status    *booking.Status
	Date      *booking.Date
	Upcoming  bool
}
