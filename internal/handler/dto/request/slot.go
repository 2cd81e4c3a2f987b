package request

import (
	"slotmarket/internal/domain/booking"
	"slotmarket/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateSlotRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
}

func (r CreateSlotRequest) ToCommand() (commands.CreateSlotRequest, error) {
	date, err := booking.ParseDate(r.Date)
	if err != nil {
		return commands.CreateSlotRequest{}, err
	}
	timeOfDay, err := booking.ParseTimeOfDay(r.Time)
	if err != nil {
		return commands.CreateSlotRequest{}, err
	}
	return commands.CreateSlotRequest{
		ServiceID: r.ServiceID,
		Date:      date,
		Time:      timeOfDay,
	}, nil
}

type UpdateSlotRequest struct {
	Date *string `json:"date,omitempty"`
	Time *string `json:"time,omitempty"`
}

func (r UpdateSlotRequest) ToCommand() (commands.UpdateSlotRequest, error) {
	var cmd commands.UpdateSlotRequest
	if r.Date != nil {
		date, err := booking.ParseDate(*r.Date)
		if err != nil {
			return commands.UpdateSlotRequest{}, err
		}
		cmd.Date = &date
	}
	if r.Time != nil {
		timeOfDay, err := booking.ParseTimeOfDay(*r.Time)
		if err != nil {
			return commands.UpdateSlotRequest{}, err
		}
		cmd.Time = &timeOfDay
	}
	return cmd, nil
}
