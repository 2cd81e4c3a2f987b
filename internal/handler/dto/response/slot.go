package response

import (
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type SlotResponse struct {
	ID        uuid.UUID `json:"id"`
	ServiceID uuid.UUID `json:"serviceId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	IsBooked  bool      `json:"isBooked"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromSlotView(sv *queries.SlotView) *SlotResponse {
	return &SlotResponse{
		ID:        sv.ID,
		ServiceID: sv.ServiceID,
		Date:      sv.Date,
		Time:      sv.Time,
		IsBooked:  sv.IsBooked,
		CreatedAt: sv.CreatedAt,
		UpdatedAt: sv.UpdatedAt,
	}
}

func FromSlotViews(items []*queries.SlotView) []*SlotResponse {
	resp := make([]*SlotResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, FromSlotView(item))
	}
	return resp
}
