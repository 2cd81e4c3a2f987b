package response

import (
	"time"

	"slotmarket/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Role      string     `json:"role"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

func FromAuthorizedUserView(uv *queries.AuthorizedUserView) *UserResponse {
	return &UserResponse{
		ID:        uv.ID,
		Email:     uv.Email,
		Role:      uv.Role,
		LastLogin: uv.LastLogin,
	}
}

type LoginResponse struct {
	UserID uuid.UUID `json:"userId"`
}
