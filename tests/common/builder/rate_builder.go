//go:build unit || e2e

package builder

import (
	"time"

	domrate "slotmarket/internal/domain/rate"
	reqdto "slotmarket/internal/handler/dto/request"
	"slotmarket/internal/usecase/queries"
	"slotmarket/internal/usecase/shared"

	"github.com/google/uuid"
)

type RateBuilder struct {
	ServiceID uuid.UUID
	UserID    uuid.UUID
	UserEmail string
	Rating    int
	CreatedAt time.Time
}

func NewRateBuilder() *RateBuilder {
	return &RateBuilder{
		ServiceID: uuid.New(),
		UserID:    uuid.New(),
		UserEmail: "rater@example.com",
		Rating:    5,
		CreatedAt: time.Now(),
	}
}

func (r *RateBuilder) BuildDomain() (*domrate.Rate, error) {
	return domrate.NewRate(r.ServiceID, r.UserID, r.Rating, r.CreatedAt)
}

func (r *RateBuilder) BuildCreateRequestDTO() reqdto.CreateRateRequest {
	return reqdto.CreateRateRequest{
		ServiceID: r.ServiceID,
		Rating:    r.Rating,
	}
}

func (r *RateBuilder) BuildViewQuery() *queries.RateView {
	return &queries.RateView{
		ID:        uuid.New(),
		ServiceID: r.ServiceID,
		UserID:    r.UserID,
		UserEmail: r.UserEmail,
		Rating:    int32(r.Rating),
		CreatedAt: r.CreatedAt,
	}
}

func (r *RateBuilder) BuildSnapshot() *shared.RateSnapshot {
	return &shared.RateSnapshot{
		ID:        uuid.New(),
		ServiceID: r.ServiceID,
		UserID:    r.UserID,
		Rating:    r.Rating,
	}
}

func (r *RateBuilder) WithServiceID(id uuid.UUID) *RateBuilder {
	r.ServiceID = id
	return r
}

func (r *RateBuilder) WithUserID(id uuid.UUID) *RateBuilder {
	r.UserID = id
	return r
}

func (r *RateBuilder) WithRating(rating int) *RateBuilder {
	r.Rating = rating
	return r
}
