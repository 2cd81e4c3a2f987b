package rate

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

const (
	MinRating = 1
	MaxRating = 5
)

type Rating struct {
	value int
}

func NewRating(value int) (Rating, error) {
	if value < MinRating || value > MaxRating {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: value}, nil
}

func (r Rating) Value() int {
	return r.value
}

// Rate is one user's rating of one service. At most one non-deleted
// rate may exist per (service, user) pair.
type Rate struct {
	id        uuid.UUID
	serviceID uuid.UUID
	userID    uuid.UUID
	rating    Rating
	deleted   bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRate(serviceID, userID uuid.UUID, ratingValue int, now time.Time) (*Rate, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	return &Rate{
		id:        uuid.New(),
		serviceID: serviceID,
		userID:    userID,
		rating:    rating,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func Reconstruct(id, serviceID, userID uuid.UUID, ratingValue int, deleted bool, createdAt, updatedAt time.Time) (*Rate, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}
	return &Rate{
		id:        id,
		serviceID: serviceID,
		userID:    userID,
		rating:    rating,
		deleted:   deleted,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (r *Rate) ID() uuid.UUID        { return r.id }
func (r *Rate) ServiceID() uuid.UUID { return r.serviceID }
func (r *Rate) UserID() uuid.UUID    { return r.userID }
func (r *Rate) Rating() Rating       { return r.rating }
func (r *Rate) IsDeleted() bool      { return r.deleted }
func (r *Rate) CreatedAt() time.Time { return r.createdAt }
func (r *Rate) UpdatedAt() time.Time { return r.updatedAt }
