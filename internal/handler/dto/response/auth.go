package response

import (
	"time"

	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

type LoginResponse struct {
	AccessToken string        `json:"access_token"`
	User        *UserResponse `json:"user"`
}

func FromUserRM(rm *readmodel.UserRM) *UserResponse {
	return &UserResponse{
		ID:        rm.ID,
		Email:     rm.Email,
		Name:      rm.Name,
		Role:      rm.Role,
		CreatedAt: rm.CreatedAt,
	}
}
