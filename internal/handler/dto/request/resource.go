package request

type CreateResourceRequest struct {
	Kind     string `json:"kind" binding:"required,oneof=vehicle room"`
	Name     string `json:"name" binding:"required,max=255"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	Status   string `json:"status" binding:"omitempty,oneof=available in_use maintenance"`
}

type UpdateResourceRequest struct {
	Name     *string `json:"name,omitempty"`
	Capacity *int    `json:"capacity,omitempty" binding:"omitempty,min=1"`
	Status   *string `json:"status,omitempty" binding:"omitempty,oneof=available in_use maintenance"`
}
