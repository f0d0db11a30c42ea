//go:build unit

package booking_test

import (
	"testing"

	"reservehub/internal/domain/booking"
	"reservehub/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPermissions(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	build := func(status booking.Status) *booking.Booking {
		return builder.NewBookingBuilder().
			WithUserID(owner).
			WithStatus(status).
			BuildReconstructed()
	}

	t.Run("edit", func(t *testing.T) {
		assert.True(t, booking.CanEdit(build(booking.StatusPending), owner))
		assert.False(t, booking.CanEdit(build(booking.StatusPending), stranger))
		assert.False(t, booking.CanEdit(build(booking.StatusApproved), owner))
		assert.False(t, booking.CanEdit(build(booking.StatusRejected), owner))
		assert.False(t, booking.CanEdit(build(booking.StatusCancelled), owner))
	})

	t.Run("cancel", func(t *testing.T) {
		assert.True(t, booking.CanCancel(build(booking.StatusApproved), owner))
		assert.False(t, booking.CanCancel(build(booking.StatusApproved), stranger))
		assert.False(t, booking.CanCancel(build(booking.StatusPending), owner))
		assert.False(t, booking.CanCancel(build(booking.StatusCancelled), owner))
	})

	t.Run("delete", func(t *testing.T) {
		assert.True(t, booking.CanDelete(build(booking.StatusPending), owner))
		assert.False(t, booking.CanDelete(build(booking.StatusPending), stranger))
		assert.False(t, booking.CanDelete(build(booking.StatusApproved), owner))
	})

	t.Run("cancel and delete are mutually exclusive", func(t *testing.T) {
		for _, status := range []booking.Status{
			booking.StatusPending, booking.StatusApproved,
			booking.StatusRejected, booking.StatusCancelled,
		} {
			b := build(status)
			assert.False(t, booking.CanCancel(b, owner) && booking.CanDelete(b, owner),
				"status %s", status)
		}
	})
}
