//go:build unit

package booking_test

import (
	"testing"

	"reservehub/internal/domain/booking"

	"github.com/stretchr/testify/assert"
)

func TestStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    booking.Status
		to      booking.Status
		allowed bool
	}{
		{"pending to approved", booking.StatusPending, booking.StatusApproved, true},
		{"pending to rejected", booking.StatusPending, booking.StatusRejected, true},
		{"pending to cancelled", booking.StatusPending, booking.StatusCancelled, false},
		{"pending to pending", booking.StatusPending, booking.StatusPending, false},
		{"approved to cancelled", booking.StatusApproved, booking.StatusCancelled, true},
		{"approved to rejected", booking.StatusApproved, booking.StatusRejected, false},
		{"approved to pending", booking.StatusApproved, booking.StatusPending, false},
		{"rejected to approved", booking.StatusRejected, booking.StatusApproved, false},
		{"rejected to cancelled", booking.StatusRejected, booking.StatusCancelled, false},
		{"cancelled to approved", booking.StatusCancelled, booking.StatusApproved, false},
		{"cancelled to pending", booking.StatusCancelled, booking.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestStatus(t *testing.T) {
	t.Run("valid values", func(t *testing.T) {
		for _, value := range []string{"pending", "approved", "rejected", "cancelled"} {
			status, err := booking.NewStatus(value)
			assert.NoError(t, err)
			assert.Equal(t, value, status.String())
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := booking.NewStatus("archived")
		assert.ErrorIs(t, err, booking.ErrInvalidStatus)
	})

	t.Run("terminal statuses", func(t *testing.T) {
		assert.False(t, booking.StatusPending.IsTerminal())
		assert.False(t, booking.StatusApproved.IsTerminal())
		assert.True(t, booking.StatusRejected.IsTerminal())
		assert.True(t, booking.StatusCancelled.IsTerminal())
	})
}
