package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrPastTime      = errors.New("cannot book a past time")
	ErrNegativePrice = errors.New("price cannot be negative")
)

// SlotKey identifies one bookable (service, date, time) triple. It is
// the unit of exclusivity: at most one occupying booking may exist per
// key, and the matching slot row's is_booked flag must agree.
type SlotKey struct {
	ServiceID uuid.UUID
	Date      Date
	Time      TimeOfDay
}

func (k SlotKey) Equal(o SlotKey) bool {
	return k.ServiceID == o.ServiceID && k.Date == o.Date && k.Time == o.Time
}

// ValidateFuture rejects keys whose date/time is not strictly after
// now in now's location. A booking at exactly the current time of day
// counts as past.
func ValidateFuture(key SlotKey, now time.Time) error {
	today := DateOf(now)
	if key.Date.Before(today) {
		return ErrPastTime
	}
	if key.Date.Equal(today) && !key.Time.After(TimeOfDayOf(now)) {
		return ErrPastTime
	}
	return nil
}

type Booking struct {
	id        uuid.UUID
	serviceID uuid.UUID
	userID    uuid.UUID
	date      Date
	time      TimeOfDay
	status    Status
	notes     string
	price     decimal.Decimal
	deleted   bool
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a pending booking with the price snapshotted from
// the service at booking time.
func NewBooking(serviceID, userID uuid.UUID, date Date, timeOfDay TimeOfDay, notes string, price decimal.Decimal, now time.Time) (*Booking, error) {
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if err := ValidateFuture(SlotKey{ServiceID: serviceID, Date: date, Time: timeOfDay}, now); err != nil {
		return nil, err
	}

	return &Booking{
		id:        uuid.New(),
		serviceID: serviceID,
		userID:    userID,
		date:      date,
		time:      timeOfDay,
		status:    StatusPending,
		notes:     notes,
		price:     price,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(
	id, serviceID, userID uuid.UUID,
	date Date,
	timeOfDay TimeOfDay,
	status Status,
	notes string,
	price decimal.Decimal,
	deleted bool,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		serviceID: serviceID,
		userID:    userID,
		date:      date,
		time:      timeOfDay,
		status:    status,
		notes:     notes,
		price:     price,
		deleted:   deleted,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) ServiceID() uuid.UUID  { return b.serviceID }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) Date() Date            { return b.date }
func (b *Booking) Time() TimeOfDay       { return b.time }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) Notes() string         { return b.notes }
func (b *Booking) Price() decimal.Decimal { return b.price }
func (b *Booking) IsDeleted() bool       { return b.deleted }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }

func (b *Booking) SlotKey() SlotKey {
	return SlotKey{ServiceID: b.serviceID, Date: b.date, Time: b.time}
}

// Occupies reports whether this booking is in the conflict set.
func (b *Booking) Occupies() bool {
	return !b.deleted && b.status.Occupies()
}
