package response

import (
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type RateResponse struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"serviceId"`
	UserID    uuid.UUID `json:"userId"`
	UserEmail string    `json:"userEmail"`
	Rating    int32     `json:"rating"`
	CreatedAt time.Time `json:"createdAt"`
}

type RateListResponse struct {
	Items      []*RateResponse `json:"items"`
	NextCursor *string         `json:"nextCursor,omitempty"`
}

func FromRateView(rv *queries.RateView) *RateResponse {
	return &RateResponse{
		ID:        rv.ID,
		ServiceID: rv.ServiceID,
		UserID:    rv.UserID,
		UserEmail: rv.UserEmail,
		Rating:    rv.Rating,
		CreatedAt: rv.CreatedAt,
	}
}

func FromRateList(items []*queries.RateView, next *queries.Cursor) *RateListResponse {
	resp := &RateListResponse{Items: make([]*RateResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, FromRateView(item))
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
