//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 9, 1, hour, minute, 0, 0, time.UTC)
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		startA   time.Time
		endA     time.Time
		startB   time.Time
		endB     time.Time
		expected bool
	}{
		{
			name:   "identical windows",
			startA: at(10, 0), endA: at(11, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "A starts inside B",
			startA: at(10, 30), endA: at(11, 30),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "A ends inside B",
			startA: at(9, 30), endA: at(10, 30),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "A fully contains B",
			startA: at(9, 0), endA: at(12, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "A fully inside B",
			startA: at(10, 15), endA: at(10, 45),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "back to back, A then B",
			startA: at(10, 0), endA: at(11, 0),
			startB: at(11, 0), endB: at(12, 0),
			expected: false,
		},
		{
			name:   "back to back, B then A",
			startA: at(11, 0), endA: at(12, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: false,
		},
		{
			name:   "shared start only",
			startA: at(10, 0), endA: at(10, 30),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "shared end only",
			startA: at(10, 30), endA: at(11, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: true,
		},
		{
			name:   "disjoint, A before B",
			startA: at(8, 0), endA: at(9, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: false,
		},
		{
			name:   "disjoint, A after B",
			startA: at(12, 0), endA: at(13, 0),
			startB: at(10, 0), endB: at(11, 0),
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actual := booking.Overlaps(tt.startA, tt.endA, tt.startB, tt.endB)
			assert.Equal(t, tt.expected, actual)

			// The predicate is symmetric
			assert.Equal(t, tt.expected, booking.Overlaps(tt.startB, tt.endB, tt.startA, tt.endA))
		})
	}
}

func TestTimeSlot(t *testing.T) {
	t.Run("valid slot", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(at(10, 0), at(11, 0))
		require.NoError(t, err)
		assert.Equal(t, at(10, 0), slot.Start())
		assert.Equal(t, at(11, 0), slot.End())
		assert.Equal(t, time.Hour, slot.Duration())
	})

	t.Run("end before start", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(11, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("zero duration", func(t *testing.T) {
		_, err := booking.NewTimeSlot(at(10, 0), at(10, 0))
		assert.ErrorIs(t, err, booking.ErrInvalidTimeSlot)
	})

	t.Run("future start check", func(t *testing.T) {
		slot, err := booking.NewTimeSlot(at(10, 0), at(11, 0))
		require.NoError(t, err)

		assert.NoError(t, slot.ValidateFutureStart(at(9, 0)))
		assert.ErrorIs(t, slot.ValidateFutureStart(at(10, 0)), booking.ErrStartNotInFuture)
		assert.ErrorIs(t, slot.ValidateFutureStart(at(10, 30)), booking.ErrStartNotInFuture)
	})
}

func TestDetails(t *testing.T) {
	t.Run("vehicle details", func(t *testing.T) {
		details, err := booking.NewVehicleDetails("Airport run")
		require.NoError(t, err)
		assert.Equal(t, resource.KindVehicle, details.Kind())
		assert.Equal(t, "Airport run", details.Destination())
	})

	t.Run("empty destination", func(t *testing.T) {
		_, err := booking.NewVehicleDetails("")
		assert.ErrorIs(t, err, booking.ErrEmptyDestination)
	})

	t.Run("destination too long", func(t *testing.T) {
		_, err := booking.NewVehicleDetails(strings.Repeat("a", booking.MaxDestinationLength+1))
		assert.ErrorIs(t, err, booking.ErrDestinationTooLong)
	})

	t.Run("destination at maximum length", func(t *testing.T) {
		_, err := booking.NewVehicleDetails(strings.Repeat("a", booking.MaxDestinationLength))
		assert.NoError(t, err)
	})

	t.Run("room details", func(t *testing.T) {
		details, err := booking.NewRoomDetails(8)
		require.NoError(t, err)
		assert.Equal(t, resource.KindRoom, details.Kind())
		assert.Equal(t, 8, details.Attendees())
	})

	t.Run("attendee bounds", func(t *testing.T) {
		_, err := booking.NewRoomDetails(0)
		assert.ErrorIs(t, err, booking.ErrInvalidAttendees)

		_, err = booking.NewRoomDetails(booking.MaxAttendees + 1)
		assert.ErrorIs(t, err, booking.ErrInvalidAttendees)

		_, err = booking.NewRoomDetails(1)
		assert.NoError(t, err)

		_, err = booking.NewRoomDetails(booking.MaxAttendees)
		assert.NoError(t, err)
	})
}
