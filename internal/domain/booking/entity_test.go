//go:build unit

package booking_test

import (
	"strings"
	"testing"
	"time"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	"reservehub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type bookingCase struct {
	name   string
	mutate func(*builder.BookingBuilder)
	errIs  error
}

func runBookingCases(t *testing.T, cases []bookingCase) {
	t.Helper()
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			b := builder.NewBookingBuilder()
			tt.mutate(b)
			_, err := b.BuildDomain()
			if tt.errIs != nil {
				assert.ErrorIs(t, err, tt.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewBooking(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, booking.StatusPending, actual.Status())
		assert.Equal(t, resource.KindVehicle, actual.Kind())
		assert.Equal(t, "Client visit", actual.Purpose())
		assert.Equal(t, "Downtown office", actual.Details().Destination())
	})

	t.Run("window validation", func(t *testing.T) {
		runBookingCases(t, []bookingCase{
			{
				name: "start in the past",
				mutate: func(b *builder.BookingBuilder) {
					b.WithWindow(b.Now.Add(-time.Hour), b.Now.Add(time.Hour))
				},
				errIs: booking.ErrStartNotInFuture,
			},
			{
				name: "start exactly now",
				mutate: func(b *builder.BookingBuilder) {
					b.WithWindow(b.Now, b.Now.Add(time.Hour))
				},
				errIs: booking.ErrStartNotInFuture,
			},
			{
				name: "start one second in the future",
				mutate: func(b *builder.BookingBuilder) {
					b.WithWindow(b.Now.Add(time.Second), b.Now.Add(time.Hour))
				},
			},
		})
	})

	t.Run("purpose validation", func(t *testing.T) {
		runBookingCases(t, []bookingCase{
			{
				name:   "empty purpose",
				mutate: func(b *builder.BookingBuilder) { b.WithPurpose("") },
				errIs:  booking.ErrEmptyPurpose,
			},
			{
				name:   "whitespace only purpose",
				mutate: func(b *builder.BookingBuilder) { b.WithPurpose("   ") },
				errIs:  booking.ErrEmptyPurpose,
			},
			{
				name: "purpose at maximum length",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPurpose(strings.Repeat("a", booking.MaxPurposeLength))
				},
			},
			{
				name: "purpose exceeds maximum length",
				mutate: func(b *builder.BookingBuilder) {
					b.WithPurpose(strings.Repeat("a", booking.MaxPurposeLength+1))
				},
				errIs: booking.ErrPurposeTooLong,
			},
		})
	})

	t.Run("details must match kind", func(t *testing.T) {
		b := builder.NewBookingBuilder()
		slot, err := booking.NewTimeSlot(b.StartTime, b.EndTime)
		require.NoError(t, err)
		roomDetails, err := booking.NewRoomDetails(4)
		require.NoError(t, err)

		_, err = booking.NewBooking(
			resource.KindVehicle, b.ResourceID, b.ResourceName,
			b.UserID, b.UserName,
			slot, b.Purpose, roomDetails, b.Now,
		)
		assert.ErrorIs(t, err, booking.ErrDetailsKindMismatch)
	})

	t.Run("purpose trimming", func(t *testing.T) {
		actual, err := builder.NewBookingBuilder().WithPurpose("  Site survey  ").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Site survey", actual.Purpose())
	})
}

func TestChangeStatus(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("pending to approved", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		require.NoError(t, b.ChangeStatus(booking.StatusApproved, now))
		assert.Equal(t, booking.StatusApproved, b.Status())
		assert.Equal(t, now, b.UpdatedAt())
	})

	t.Run("illegal transition leaves booking untouched", func(t *testing.T) {
		b := builder.NewBookingBuilder().WithStatus(booking.StatusRejected).BuildReconstructed()
		err := b.ChangeStatus(booking.StatusApproved, now)
		assert.ErrorIs(t, err, booking.ErrInvalidTransition)
		assert.Equal(t, booking.StatusRejected, b.Status())
	})

	t.Run("invalid target status", func(t *testing.T) {
		b := builder.NewBookingBuilder().BuildReconstructed()
		err := b.ChangeStatus(booking.Status("archived"), now)
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})
}

func TestIsLive(t *testing.T) {
	for _, tt := range []struct {
		status booking.Status
		live   bool
	}{
		{booking.StatusPending, true},
		{booking.StatusApproved, true},
		{booking.StatusRejected, true},
		{booking.StatusCancelled, false},
	} {
		t.Run(tt.status.String(), func(t *testing.T) {
			b := builder.NewBookingBuilder().WithStatus(tt.status).BuildReconstructed()
			assert.Equal(t, tt.live, b.IsLive())
		})
	}
}

func TestConflictsWith(t *testing.T) {
	resourceID := uuid.New()

	t.Run("same resource, overlapping windows", func(t *testing.T) {
		a := builder.NewBookingBuilder().WithResourceID(resourceID).BuildReconstructed()
		b := builder.NewBookingBuilder().WithResourceID(resourceID).BuildReconstructed()
		assert.True(t, a.ConflictsWith(b))
	})

	t.Run("different resources never conflict", func(t *testing.T) {
		a := builder.NewBookingBuilder().BuildReconstructed()
		b := builder.NewBookingBuilder().BuildReconstructed()
		assert.False(t, a.ConflictsWith(b))
	})

	t.Run("cancelled booking releases its slot", func(t *testing.T) {
		a := builder.NewBookingBuilder().WithResourceID(resourceID).BuildReconstructed()
		b := builder.NewBookingBuilder().
			WithResourceID(resourceID).
			WithStatus(booking.StatusCancelled).
			BuildReconstructed()
		assert.False(t, a.ConflictsWith(b))
	})

	t.Run("a booking never conflicts with itself", func(t *testing.T) {
		a := builder.NewBookingBuilder().WithResourceID(resourceID).BuildReconstructed()
		assert.False(t, a.ConflictsWith(a))
	})
}
