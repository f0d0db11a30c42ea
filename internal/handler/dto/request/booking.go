package request

import (
	"time"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	Kind        string    `json:"kind" binding:"required,oneof=vehicle room"`
	ResourceID  uuid.UUID `json:"resource_id" binding:"required"`
	StartTime   time.Time `json:"start_time" binding:"required"`
	EndTime     time.Time `json:"end_time" binding:"required"`
	Purpose     string    `json:"purpose" binding:"required"`
	Destination *string   `json:"destination,omitempty"`
	Attendees   *int      `json:"attendees,omitempty"`
}

type CreateBatchBookingsRequest struct {
	Kind        string      `json:"kind" binding:"required,oneof=vehicle room"`
	ResourceIDs []uuid.UUID `json:"resource_ids" binding:"required,min=1,max=10"`
	StartTime   time.Time   `json:"start_time" binding:"required"`
	EndTime     time.Time   `json:"end_time" binding:"required"`
	Purpose     string      `json:"purpose" binding:"required"`
	Destination *string     `json:"destination,omitempty"`
	Attendees   *int        `json:"attendees,omitempty"`
}

type UpdateBookingRequest struct {
	StartTime   *time.Time `json:"start_time,omitempty"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Purpose     *string    `json:"purpose,omitempty"`
	Destination *string    `json:"destination,omitempty"`
	Attendees   *int       `json:"attendees,omitempty"`
}

type ChangeBookingStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=approved rejected cancelled"`
}

type ListBookingsQuery struct {
	Kind string     `form:"kind" binding:"omitempty,oneof=vehicle room"`
	Mine bool       `form:"mine"`
	From *time.Time `form:"from" time_format:"2006-01-02T15:04:05Z07:00"`
	To   *time.Time `form:"to" time_format:"2006-01-02T15:04:05Z07:00"`
}
