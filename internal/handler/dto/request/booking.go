package request

import (
	"strings"

	"slotmarket/internal/domain/booking"
	"slotmarket/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ServiceID uuid.UUID `json:"service" binding:"required"`
	Date      string    `json:"date" binding:"required"`
	Time      string    `json:"time" binding:"required"`
	Notes     *string   `json:"notes,omitempty"`
}

func (r CreateBookingRequest) ToCommand() (commands.CreateBookingRequest, error) {
	date, err := booking.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}
	timeOfDay, err := booking.ParseTimeOfDay(r.Time)
	if err != nil {
		return commands.CreateBookingRequest{}, err
	}

	notes := ""
	if r.Notes != nil {
		notes = strings.TrimSpace(*r.Notes)
	}

	return commands.CreateBookingRequest{
		ServiceID: r.ServiceID,
		Date:      date,
		Time:      timeOfDay,
		Notes:     notes,
	}, nil
}

type UpdateBookingRequest struct {
	ServiceID *uuid.UUID `json:"service,omitempty"`
	Date      *string    `json:"date,omitempty"`
	Time      *string    `json:"time,omitempty"`
	Status    *string    `json:"status,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

func (r UpdateBookingRequest) ToCommand() (commands.UpdateBookingRequest, error) {
	cmd := commands.UpdateBookingRequest{
		ServiceID: r.ServiceID,
		Notes:     r.Notes,
	}
	if r.Date != nil {
		date, err := booking.ParseDate(*r.Date)
		if err != nil {
			return commands.UpdateBookingRequest{}, err
		}
		cmd.Date = &date
	}
	if r.Time != nil {
		timeOfDay, err := booking.ParseTimeOfDay(*r.Time)
		if err != nil {
			return commands.UpdateBookingRequest{}, err
		}
		cmd.Time = &timeOfDay
	}
	if r.Status != nil {
		status, err := booking.NewStatus(*r.Status)
		if err != nil {
			return commands.UpdateBookingRequest{}, err
		}
		cmd.Status = &status
	}
	return cmd, nil
}
