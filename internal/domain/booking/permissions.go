package booking

import "github.com/google/uuid"

// Ownership permission predicates. These are pure and independent: cancel
// and delete are mutually exclusive by status, never both true for the
// same booking.

// CanEdit allows the owner to modify a booking while it awaits approval.
func CanEdit(b *Booking, actingUserID uuid.UUID) bool {
	return b.userID == actingUserID && b.status == StatusPending
}

// CanCancel allows the owner to cancel an approved booking.
func CanCancel(b *Booking, actingUserID uuid.UUID) bool {
	return b.userID == actingUserID && b.status == StatusApproved
}

// CanDelete allows the owner to remove a booking that was never approved.
func CanDelete(b *Booking, actingUserID uuid.UUID) bool {
	return b.userID == actingUserID && b.status == StatusPending
}
