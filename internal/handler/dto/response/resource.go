package response

import (
	"time"

	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ResourceResponse struct {
	ID        uuid.UUID `json:"id"`
	Kind      string    `json:"kind"`
	Name      string    `json:"name"`
	Capacity  int32     `json:"capacity"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func FromResourceRM(rm *readmodel.ResourceRM) *ResourceResponse {
	return &ResourceResponse{
		ID:        rm.ID,
		Kind:      rm.Kind,
		Name:      rm.Name,
		Capacity:  rm.Capacity,
		Status:    rm.Status,
		CreatedAt: rm.CreatedAt,
		UpdatedAt: rm.UpdatedAt,
	}
}
