package response

import (
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	UserID      uuid.UUID `json:"userId"`
	UserEmail   string    `json:"userEmail"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type BookingListItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ServiceID   uuid.UUID `json:"serviceId"`
	ServiceName string    `json:"serviceName"`
	UserID      uuid.UUID `json:"userId"`
	Date        string    `json:"date"`
	Time        string    `json:"time"`
	Status      string    `json:"status"`
	Price       string    `json:"price"`
	CreatedAt   time.Time `json:"createdAt"`
}

type BookingListResponse struct {
	Items      []*BookingListItemResponse `json:"items"`
	NextCursor *string                    `json:"nextCursor,omitempty"`
}

type CheckSlotResponse struct {
	Available bool `json:"available"`
}

func FromBookingView(bv *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:          bv.ID,
		ServiceID:   bv.ServiceID,
		ServiceName: bv.ServiceName,
		UserID:      bv.UserID,
		UserEmail:   bv.UserEmail,
		Date:        bv.Date,
		Time:        bv.Time,
		Status:      bv.Status,
		Notes:       bv.Notes,
		Price:       bv.Price,
		CreatedAt:   bv.CreatedAt,
		UpdatedAt:   bv.UpdatedAt,
	}
}

func FromBookingList(items []*queries.BookingListItem, next *queries.Cursor) *BookingListResponse {
	resp := &BookingListResponse{Items: make([]*BookingListItemResponse, 0, len(items))}
	for _, item := range items {
		resp.Items = append(resp.Items, &BookingListItemResponse{
			ID:          item.ID,
			ServiceID:   item.ServiceID,
			ServiceName: item.ServiceName,
			UserID:      item.UserID,
			Date:        item.Date,
			Time:        item.Time,
			Status:      item.Status,
			Price:       item.Price,
			CreatedAt:   item.CreatedAt,
		})
	}
	if next != nil {
		resp.NextCursor = &next.After
	}
	return resp
}
