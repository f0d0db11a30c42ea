package booking

import (
	"time"

	"reservehub/internal/domain/resource"
)

type TimeSlot struct {
	start time.Time
	end   time.Time
}

func NewTimeSlot(start, end time.Time) (TimeSlot, error) {
	if !end.After(start) {
		return TimeSlot{}, ErrInvalidTimeSlot
	}

	return TimeSlot{
		start: start,
		end:   end,
	}, nil
}

func (ts TimeSlot) Start() time.Time {
	return ts.start
}

func (ts TimeSlot) End() time.Time {
	return ts.end
}

func (ts TimeSlot) Duration() time.Duration {
	return ts.end.Sub(ts.start)
}

// ValidateFutureStart requires the slot to begin strictly after now.
func (ts TimeSlot) ValidateFutureStart(now time.Time) error {
	if !ts.start.After(now) {
		return ErrStartNotInFuture
	}
	return nil
}

func (ts TimeSlot) Overlaps(other TimeSlot) bool {
	return Overlaps(ts.start, ts.end, other.start, other.end)
}

// Overlaps reports whether two slots conflict. The policy is stricter than
// half-open interval intersection: windows sharing a start or an end
// instant conflict even when identical, while a window ending exactly as
// another begins does not.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return (startA.After(startB) && startA.Before(endB)) ||
		(endA.After(startB) && endA.Before(endB)) ||
		(startA.Before(startB) && endA.After(endB)) ||
		startA.Equal(startB) ||
		endA.Equal(endB)
}

const (
	MaxPurposeLength     = 500
	MaxDestinationLength = 200
	MaxAttendees         = 500
)

// Details carries the kind-specific payload of a booking: destination for
// vehicles, attendee count for rooms.
type Details struct {
	kind        resource.Kind
	destination string
	attendees   int
}

func NewVehicleDetails(destination string) (Details, error) {
	if destination == "" {
		return Details{}, ErrEmptyDestination
	}
	if len([]rune(destination)) > MaxDestinationLength {
		return Details{}, ErrDestinationTooLong
	}
	return Details{kind: resource.KindVehicle, destination: destination}, nil
}

func NewRoomDetails(attendees int) (Details, error) {
	if attendees < 1 || attendees > MaxAttendees {
		return Details{}, ErrInvalidAttendees
	}
	return Details{kind: resource.KindRoom, attendees: attendees}, nil
}

func (d Details) Kind() resource.Kind {
	return d.kind
}

func (d Details) Destination() string {
	return d.destination
}

func (d Details) Attendees() int {
	return d.attendees
}
