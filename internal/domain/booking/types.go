package booking

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidStatus    = errors.New("invalid booking status")
	ErrInvalidDate      = errors.New("invalid date")
	ErrInvalidTimeOfDay = errors.New("invalid time of day")
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// Occupies reports whether a booking in this status holds its slot.
// Cancelled bookings never conflict.
func (s Status) Occupies() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCompleted:
		return true
	default:
		return false
	}
}

func NewStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

// ConflictStatuses is the set of statuses that occupy a slot.
func ConflictStatuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusCompleted}
}

// Date is a civil calendar date without a time zone.
type Date struct {
	year  int
	month time.Month
	day   int
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{year: year, month: month, day: day}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, ErrInvalidDate
	}
	return DateOf(t), nil
}

// DateOf extracts the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.year, d.month, d.day)
}

// Time returns the date as midnight UTC, the representation used for
// the postgres date column.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

func (d Date) Equal(o Date) bool {
	return d == o
}

func (d Date) IsZero() bool {
	return d == Date{}
}

// TimeOfDay is a wall-clock time with second resolution.
type TimeOfDay struct {
	seconds int
}

func NewTimeOfDay(hour, minute, second int) (TimeOfDay, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return TimeOfDay{}, ErrInvalidTimeOfDay
	}
	return TimeOfDay{seconds: hour*3600 + minute*60 + second}, nil
}

// ParseTimeOfDay accepts "15:04" and "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return TimeOfDayOf(t), nil
		}
	}
	return TimeOfDay{}, ErrInvalidTimeOfDay
}

// TimeOfDayOf extracts the wall-clock time of t in t's location.
func TimeOfDayOf(t time.Time) TimeOfDay {
	return TimeOfDay{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}
}

func (t TimeOfDay) Hour() int   { return t.seconds / 3600 }
func (t TimeOfDay) Minute() int { return (t.seconds % 3600) / 60 }
func (t TimeOfDay) Second() int { return t.seconds % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
}

// Microseconds since midnight, the representation used for the
// postgres time column.
func (t TimeOfDay) Microseconds() int64 {
	return int64(t.seconds) * 1_000_000
}

func TimeOfDayFromMicroseconds(us int64) TimeOfDay {
	return TimeOfDay{seconds: int(us / 1_000_000)}
}

func (t TimeOfDay) Before(o TimeOfDay) bool {
	return t.seconds < o.seconds
}

func (t TimeOfDay) After(o TimeOfDay) bool {
	return t.seconds > o.seconds
}
