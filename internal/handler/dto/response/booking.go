package response

import (
	"time"

	"reservehub/internal/usecase"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	Kind         string    `json:"kind"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	UserID       uuid.UUID `json:"userId"`
	UserName     string    `json:"userName"`
	StartTime    time.Time `json:"startTime"`
	EndTime      time.Time `json:"endTime"`
	Purpose      string    `json:"purpose"`
	Destination  *string   `json:"destination,omitempty"`
	Attendees    *int32    `json:"attendees,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

type BatchFailureResponse struct {
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	Reason       string    `json:"reason"`
}

type BatchBookingsResponse struct {
	Succeeded []*BookingResponse     `json:"succeeded"`
	Failed    []BatchFailureResponse `json:"failed"`
}

func FromBookingRM(rm *readmodel.BookingRM) *BookingResponse {
	return &BookingResponse{
		ID:           rm.ID,
		Kind:         rm.Kind,
		ResourceID:   rm.ResourceID,
		ResourceName: rm.ResourceName,
		UserID:       rm.UserID,
		UserName:     rm.UserName,
		StartTime:    rm.StartTime,
		EndTime:      rm.EndTime,
		Purpose:      rm.Purpose,
		Destination:  rm.Destination,
		Attendees:    rm.Attendees,
		Status:       rm.Status,
		CreatedAt:    rm.CreatedAt,
		UpdatedAt:    rm.UpdatedAt,
	}
}

func FromBatchResult(result *usecase.BatchResult) *BatchBookingsResponse {
	// Empty slices keep the JSON arrays present even when nothing landed
	resp := &BatchBookingsResponse{
		Succeeded: make([]*BookingResponse, 0, len(result.Succeeded)),
		Failed:    make([]BatchFailureResponse, 0, len(result.Failed)),
	}
	for _, rm := range result.Succeeded {
		resp.Succeeded = append(resp.Succeeded, FromBookingRM(rm))
	}
	for _, f := range result.Failed {
		resp.Failed = append(resp.Failed, BatchFailureResponse{
			ResourceID:   f.ResourceID,
			ResourceName: f.ResourceName,
			Reason:       string(f.Reason),
		})
	}
	return resp
}
