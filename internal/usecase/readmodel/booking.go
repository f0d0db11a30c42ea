package readmodel

import (
	"time"

	"github.com/google/uuid"
)

// BookingRM is the read model returned across the API boundary. Destination
// is set for vehicle bookings, Attendees for room bookings.
type BookingRM struct {
	ID           uuid.UUID
	Kind         string
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	UserName     string
	StartTime    time.Time
	EndTime      time.Time
	Purpose      string
	Destination  *string
	Attendees    *int32
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// BookingFilter narrows list queries. The date range is containment: a
// booking qualifies when its own window lies entirely inside [From, To].
type BookingFilter struct {
	UserID *uuid.UUID
	Kind   *string
	From   *time.Time
	To     *time.Time
}
