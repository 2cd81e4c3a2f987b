package response

import (
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type ServiceResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Location    string    `json:"location"`
	Price       string    `json:"price"`
	IsActive    bool      `json:"isActive"`
	AuthorID    uuid.UUID `json:"authorId"`
	AvgRating   string    `json:"avgRating"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ServiceListItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	Location  string    `json:"location"`
	Price     string    `json:"price"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
}

type ServiceListResponse struct {
	Items      []*ServiceListItemResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

type AvgRatingResponse struct {
	ServiceID uuid.UUID `json:"serviceId"`
	AvgRating string    `json:"avgRating"`
}

func FromServiceView(sv *queries.ServiceView) *ServiceResponse {
	return &ServiceResponse{
		ID:          sv.ID,
		Name:        sv.Name,
		Description: sv.Description,
		Category:    sv.Category,
		Location:    sv.Location,
		Price:       sv.Price,
		IsActive:    sv.IsActive,
		AuthorID:    sv.AuthorID,
		AvgRating:   sv.AvgRating,
		CreatedAt:   sv.CreatedAt,
		UpdatedAt:   sv.UpdatedAt,
	}
}

func FromServiceList(items []*queries.ServiceListItem, next *queries.Cursor) *ServiceListResponse {
	resp := &ServiceListResponse{Items: make([]*ServiceListItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, &ServiceListItemResponse{
			ID:        item.ID,
			Name:      item.Name,
			Category:  item.Category,
			Location:  item.Location,
			Price:     item.Price,
			IsActive:  item.IsActive,
			CreatedAt: item.CreatedAt,
		})
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
