package request

import (
	"github.com/google/uuid"
)

type CreateRateRequest struct {
	ServiceID uuid.UUID `json:"service_id" binding:"required"`
	Rating    int       `json:"rating" binding:"required,min=1,max=5"`
}

type UpdateRateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}
