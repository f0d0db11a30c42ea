//go:build unit

package builder

import (
	"time"

	dombooking "reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	reqdto "reservehub/internal/handler/dto/request"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	Kind         resource.Kind
	ResourceID   uuid.UUID
	ResourceName string
	UserID       uuid.UUID
	UserName     string
	StartTime    time.Time
	EndTime      time.Time
	Purpose      string
	Destination  string
	Attendees    int
	Status       dombooking.Status
	Now          time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &BookingBuilder{
		Kind:         resource.KindVehicle,
		ResourceID:   uuid.New(),
		ResourceName: "Van 1",
		UserID:       uuid.New(),
		UserName:     "Test User",
		StartTime:    now.Add(1 * time.Hour),
		EndTime:      now.Add(2 * time.Hour),
		Purpose:      "Client visit",
		Destination:  "Downtown office",
		Attendees:    5,
		Status:       dombooking.StatusPending,
		Now:          now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func (b *BookingBuilder) BuildDomain() (*dombooking.Booking, error) {
	slot, err := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	if err != nil {
		return nil, err
	}
	details, err := b.buildDetails()
	if err != nil {
		return nil, err
	}
	return dombooking.NewBooking(
		b.Kind, b.ResourceID, b.ResourceName,
		b.UserID, b.UserName,
		slot, b.Purpose, details, b.Now,
	)
}

// BuildReconstructed skips creation-time validation, so it can assemble
// bookings in any status for lifecycle tests.
func (b *BookingBuilder) BuildReconstructed() *dombooking.Booking {
	slot, _ := dombooking.NewTimeSlot(b.StartTime, b.EndTime)
	details, _ := b.buildDetails()
	return dombooking.ReconstructBooking(
		uuid.New(), b.Kind, b.ResourceID, b.ResourceName,
		b.UserID, b.UserName,
		slot, b.Purpose, details, b.Status,
		b.CreatedAt, b.UpdatedAt,
	)
}

func (b *BookingBuilder) BuildRM() *readmodel.BookingRM {
	rm := &readmodel.BookingRM{
		ID:           uuid.New(),
		Kind:         b.Kind.String(),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		UserID:       b.UserID,
		UserName:     b.UserName,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Purpose:      b.Purpose,
		Status:       b.Status.String(),
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
	if b.Kind == resource.KindVehicle {
		destination := b.Destination
		rm.Destination = &destination
	} else {
		attendees := int32(b.Attendees)
		rm.Attendees = &attendees
	}
	return rm
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	req := reqdto.CreateBookingRequest{
		Kind:       b.Kind.String(),
		ResourceID: b.ResourceID,
		StartTime:  b.StartTime,
		EndTime:    b.EndTime,
		Purpose:    b.Purpose,
	}
	if b.Kind == resource.KindVehicle {
		destination := b.Destination
		req.Destination = &destination
	} else {
		attendees := b.Attendees
		req.Attendees = &attendees
	}
	return req
}

func (b *BookingBuilder) buildDetails() (dombooking.Details, error) {
	if b.Kind == resource.KindVehicle {
		return dombooking.NewVehicleDetails(b.Destination)
	}
	return dombooking.NewRoomDetails(b.Attendees)
}

func (b *BookingBuilder) WithKind(kind resource.Kind) *BookingBuilder {
	b.Kind = kind
	return b
}

func (b *BookingBuilder) WithResourceID(id uuid.UUID) *BookingBuilder {
	b.ResourceID = id
	return b
}

func (b *BookingBuilder) WithUserID(id uuid.UUID) *BookingBuilder {
	b.UserID = id
	return b
}

func (b *BookingBuilder) WithWindow(start, end time.Time) *BookingBuilder {
	b.StartTime = start
	b.EndTime = end
	return b
}

func (b *BookingBuilder) WithPurpose(purpose string) *BookingBuilder {
	b.Purpose = purpose
	return b
}

func (b *BookingBuilder) WithDestination(destination string) *BookingBuilder {
	b.Destination = destination
	return b
}

func (b *BookingBuilder) WithAttendees(attendees int) *BookingBuilder {
	b.Attendees = attendees
	return b
}

func (b *BookingBuilder) WithStatus(status dombooking.Status) *BookingBuilder {
	b.Status = status
	return b
}

func (b *BookingBuilder) WithNow(now time.Time) *BookingBuilder {
	b.Now = now
	return b
}

func (b *BookingBuilder) AsRoom() *BookingBuilder {
	b.Kind = resource.KindRoom
	b.ResourceName = "Conference Room A"
	return b
}
