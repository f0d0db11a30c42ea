package booking

import (
	"errors"
	"strings"
	"time"

	"reservehub/internal/domain/resource"

	"github.com/google/uuid"
)

var (
	ErrInvalidTimeSlot     = errors.New("end time must be after start time")
	ErrStartNotInFuture    = errors.New("start time must be in the future")
	ErrEmptyPurpose        = errors.New("purpose cannot be empty")
	ErrPurposeTooLong      = errors.New("purpose is too long (max 500 characters)")
	ErrEmptyDestination    = errors.New("destination cannot be empty")
	ErrDestinationTooLong  = errors.New("destination is too long (max 200 characters)")
	ErrInvalidAttendees    = errors.New("attendees must be between 1 and 500")
	ErrDetailsKindMismatch = errors.New("details do not match booking kind")
	ErrInvalidStatus       = errors.New("invalid booking status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

// Booking is a time-bounded claim on one resource by one user. The
// resource name is captured at creation time and never synced with later
// renames; kind and resourceID are immutable for the lifetime of the
// booking.
type Booking struct {
	id           uuid.UUID
	kind         resource.Kind
	resourceID   uuid.UUID
	resourceName string
	userID       uuid.UUID
	userName     string
	slot         TimeSlot
	purpose      string
	details      Details
	status       Status
	createdAt    time.Time
	updatedAt    time.Time
}

func NewBooking(
	kind resource.Kind,
	resourceID uuid.UUID,
	resourceName string,
	userID uuid.UUID,
	userName string,
	slot TimeSlot,
	purpose string,
	details Details,
	now time.Time,
) (*Booking, error) {
	if err := slot.ValidateFutureStart(now); err != nil {
		return nil, err
	}
	if err := validatePurpose(purpose); err != nil {
		return nil, err
	}
	if details.Kind() != kind {
		return nil, ErrDetailsKindMismatch
	}

	return &Booking{
		id:           uuid.New(),
		kind:         kind,
		resourceID:   resourceID,
		resourceName: resourceName,
		userID:       userID,
		userName:     userName,
		slot:         slot,
		purpose:      strings.TrimSpace(purpose),
		details:      details,
		status:       StatusPending,
	}, nil
}

func ReconstructBooking(
	id uuid.UUID,
	kind resource.Kind,
	resourceID uuid.UUID,
	resourceName string,
	userID uuid.UUID,
	userName string,
	slot TimeSlot,
	purpose string,
	details Details,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		kind:         kind,
		resourceID:   resourceID,
		resourceName: resourceName,
		userID:       userID,
		userName:     userName,
		slot:         slot,
		purpose:      purpose,
		details:      details,
		status:       status,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// ChangeStatus applies a lifecycle transition. Illegal transitions leave
// the booking untouched.
func (b *Booking) ChangeStatus(to Status, now time.Time) error {
	if !to.IsValid() {
		return ErrInvalidStatus
	}
	if !b.status.CanTransitionTo(to) {
		return ErrInvalidTransition
	}
	b.status = to
	b.updatedAt = now
	return nil
}

// Reschedule moves the booking to a new slot. Conflict checking against
// sibling bookings is the caller's responsibility.
func (b *Booking) Reschedule(slot TimeSlot, now time.Time) error {
	if err := slot.ValidateFutureStart(now); err != nil {
		return err
	}
	b.slot = slot
	b.updatedAt = now
	return nil
}

func (b *Booking) ChangePurpose(purpose string, now time.Time) error {
	if err := validatePurpose(purpose); err != nil {
		return err
	}
	b.purpose = strings.TrimSpace(purpose)
	b.updatedAt = now
	return nil
}

func (b *Booking) ChangeDetails(details Details, now time.Time) error {
	if details.Kind() != b.kind {
		return ErrDetailsKindMismatch
	}
	b.details = details
	b.updatedAt = now
	return nil
}

// IsLive reports whether the booking participates in conflict scans.
// Cancelled bookings release their slot; every other status holds it.
func (b *Booking) IsLive() bool {
	return b.status != StatusCancelled
}

func (b *Booking) ConflictsWith(other *Booking) bool {
	if b.kind != other.kind || b.resourceID != other.resourceID {
		return false
	}
	if b.id == other.id {
		return false
	}
	if !b.IsLive() || !other.IsLive() {
		return false
	}
	return b.slot.Overlaps(other.slot)
}

func validatePurpose(purpose string) error {
	purpose = strings.TrimSpace(purpose)
	if purpose == "" {
		return ErrEmptyPurpose
	}
	if len([]rune(purpose)) > MaxPurposeLength {
		return ErrPurposeTooLong
	}
	return nil
}

func (b *Booking) ID() uuid.UUID         { return b.id }
func (b *Booking) Kind() resource.Kind   { return b.kind }
func (b *Booking) ResourceID() uuid.UUID { return b.resourceID }
func (b *Booking) ResourceName() string  { return b.resourceName }
func (b *Booking) UserID() uuid.UUID     { return b.userID }
func (b *Booking) UserName() string      { return b.userName }
func (b *Booking) Slot() TimeSlot        { return b.slot }
func (b *Booking) Purpose() string       { return b.purpose }
func (b *Booking) Details() Details      { return b.details }
func (b *Booking) Status() Status        { return b.status }
func (b *Booking) CreatedAt() time.Time  { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time  { return b.updatedAt }
