package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	"reservehub/internal/domain/user"
	"reservehub/internal/infra"
	"reservehub/internal/infra/db"
	"reservehub/internal/pkg/clock"
	"reservehub/internal/pkg/errs"
	"reservehub/internal/pkg/patch"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound   = errors.New("booking not found")
	ErrResourceNotFound  = errors.New("resource not found")
	ErrBookingConflict   = errors.New("time slot conflict")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrBatchTooLarge     = errors.New("too many resources in one batch")

	// Error markers for categorization
	ErrDomainValidationFailed  = errors.New("domain validation failed")
	ErrDatabaseOperationFailed = errors.New("database operation failed")
)

// MaxBatchSize is the hard input-validation limit on batch requests.
const MaxBatchSize = 10

type BookingRepository interface {
	LockResource(ctx context.Context, tx db.DBTX, kind resource.Kind, resourceID uuid.UUID) error
	FindLiveSlotsByResource(ctx context.Context, tx db.DBTX, kind resource.Kind, resourceID uuid.UUID, excludeID *uuid.UUID) ([]booking.TimeSlot, error)
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error
	Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error
	FindDomainByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
	List(ctx context.Context, filter readmodel.BookingFilter) ([]*readmodel.BookingRM, error)
}

type BookingResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ResourceRM, error)
	NamesByIDs(ctx context.Context, tx db.DBTX, kind resource.Kind, ids []uuid.UUID) (map[uuid.UUID]string, error)
}

type CreateBookingParams struct {
	Kind        resource.Kind
	ResourceID  uuid.UUID
	UserID      uuid.UUID
	UserName    string
	StartTime   time.Time
	EndTime     time.Time
	Purpose     string
	Destination *string
	Attendees   *int
}

type CreateBatchParams struct {
	Kind        resource.Kind
	ResourceIDs []uuid.UUID
	UserID      uuid.UUID
	UserName    string
	StartTime   time.Time
	EndTime     time.Time
	Purpose     string
	Destination *string
	Attendees   *int
}

type UpdateBookingParams struct {
	StartTime   *time.Time
	EndTime     *time.Time
	Purpose     *string
	Destination *string
	Attendees   *int
}

type BatchFailureReason string

const (
	ReasonResourceNotFound BatchFailureReason = "resource_not_found"
	ReasonConflictDetected BatchFailureReason = "conflict_detected"
)

type BatchFailure struct {
	ResourceID   uuid.UUID
	ResourceName string
	Reason       BatchFailureReason
}

// BatchResult reports per-resource outcomes. Partial success is the
// designed outcome of a batch, not an error state.
type BatchResult struct {
	Succeeded []*readmodel.BookingRM
	Failed    []BatchFailure
}

type BookingUseCase interface {
	CreateBooking(ctx context.Context, params CreateBookingParams) (*readmodel.BookingRM, error)
	CreateBatchBookings(ctx context.Context, params CreateBatchParams) (*BatchResult, error)
	GetBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error)
	ListBookings(ctx context.Context, filter readmodel.BookingFilter) ([]*readmodel.BookingRM, error)
	UpdateBooking(ctx context.Context, id uuid.UUID, actingUserID uuid.UUID, params UpdateBookingParams) (*readmodel.BookingRM, error)
	ChangeStatus(ctx context.Context, id uuid.UUID, to booking.Status, actingUserID uuid.UUID, actingRole user.Role) (*readmodel.BookingRM, error)
	DeleteBooking(ctx context.Context, id uuid.UUID, actingUserID uuid.UUID) error
}

type bookingUseCaseImpl struct {
	bookingRepo  BookingRepository
	resourceRepo BookingResourceRepository
	txManager    db.TxManager
	clock        clock.Clock
}

func NewBookingUseCase(
	bookingRepo BookingRepository,
	resourceRepo BookingResourceRepository,
	txManager db.TxManager,
	clock clock.Clock,
) BookingUseCase {
	return &bookingUseCaseImpl{
		bookingRepo:  bookingRepo,
		resourceRepo: resourceRepo,
		txManager:    txManager,
		clock:        clock,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, params CreateBookingParams) (*readmodel.BookingRM, error) {
	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	details, err := buildDetails(params.Kind, params.Destination, params.Attendees)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	resourceRM, err := u.findResourceOfKind(ctx, params.Kind, params.ResourceID)
	if err != nil {
		return nil, err
	}

	bookingEntity, err := booking.NewBooking(
		params.Kind, params.ResourceID, resourceRM.Name,
		params.UserID, params.UserName,
		slot, params.Purpose, details, u.clock.Now(),
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	if err := u.bookingRepo.LockResource(ctx, tx, params.Kind, params.ResourceID); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	conflict, err := u.hasConflict(ctx, tx, params.Kind, params.ResourceID, slot, nil)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if conflict {
		return nil, ErrBookingConflict
	}

	if err := u.bookingRepo.Create(ctx, tx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Read-after-write so DB-assigned timestamps reach the caller
	return u.bookingRepo.FindByID(ctx, bookingEntity.ID())
}

func (u *bookingUseCaseImpl) CreateBatchBookings(ctx context.Context, params CreateBatchParams) (*BatchResult, error) {
	if len(params.ResourceIDs) == 0 || len(params.ResourceIDs) > MaxBatchSize {
		return nil, ErrBatchTooLarge
	}

	// The shared window and payload are validated once up front; a failure
	// here aborts the whole batch before any item is attempted.
	slot, err := booking.NewTimeSlot(params.StartTime, params.EndTime)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}
	if err := slot.ValidateFutureStart(u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}
	details, err := buildDetails(params.Kind, params.Destination, params.Attendees)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	names, err := u.resourceRepo.NamesByIDs(ctx, tx, params.Kind, params.ResourceIDs)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// Locks are taken up front in one canonical order; two batches naming
	// the same resources in different input orders could otherwise deadlock.
	lockIDs := make([]uuid.UUID, 0, len(params.ResourceIDs))
	for _, resourceID := range params.ResourceIDs {
		if _, ok := names[resourceID]; ok {
			lockIDs = append(lockIDs, resourceID)
		}
	}
	slices.SortFunc(lockIDs, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
	for _, resourceID := range lockIDs {
		if err := u.bookingRepo.LockResource(ctx, tx, params.Kind, resourceID); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	result := &BatchResult{}
	var succeededIDs []uuid.UUID

	for _, resourceID := range params.ResourceIDs {
		name, ok := names[resourceID]
		if !ok {
			result.Failed = append(result.Failed, BatchFailure{
				ResourceID:   resourceID,
				ResourceName: "unknown",
				Reason:       ReasonResourceNotFound,
			})
			continue
		}

		conflict, err := u.hasConflict(ctx, tx, params.Kind, resourceID, slot, nil)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict {
			result.Failed = append(result.Failed, BatchFailure{
				ResourceID:   resourceID,
				ResourceName: name,
				Reason:       ReasonConflictDetected,
			})
			continue
		}

		bookingEntity, err := booking.NewBooking(
			params.Kind, resourceID, name,
			params.UserID, params.UserName,
			slot, params.Purpose, details, u.clock.Now(),
		)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}

		if err := u.bookingRepo.Create(ctx, tx, bookingEntity); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		succeededIDs = append(succeededIDs, bookingEntity.ID())
	}

	// Failed items never roll back their siblings; commit whenever at
	// least one booking landed.
	if len(succeededIDs) > 0 {
		if err := tx.Commit(ctx); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		for _, id := range succeededIDs {
			rm, err := u.bookingRepo.FindByID(ctx, id)
			if err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
			result.Succeeded = append(result.Succeeded, rm)
		}
	}

	return result, nil
}

func (u *bookingUseCaseImpl) GetBooking(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	rm, err := u.bookingRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Wrap(err, "failed to find booking")
	}

	return rm, nil
}

func (u *bookingUseCaseImpl) ListBookings(ctx context.Context, filter readmodel.BookingFilter) ([]*readmodel.BookingRM, error) {
	bookings, err := u.bookingRepo.List(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list bookings")
	}

	return bookings, nil
}

func (u *bookingUseCaseImpl) UpdateBooking(
	ctx context.Context,
	id uuid.UUID,
	actingUserID uuid.UUID,
	params UpdateBookingParams,
) (*readmodel.BookingRM, error) {
	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	bookingEntity, err := u.bookingRepo.FindDomainByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !booking.CanEdit(bookingEntity, actingUserID) {
		return nil, ErrPermissionDenied
	}

	now := u.clock.Now()

	// A changed window re-validates and re-runs the conflict check against
	// the booking's own (immutable) resource, excluding itself. Touching
	// only purpose or details never triggers the conflict scan.
	if params.StartTime != nil || params.EndTime != nil {
		newSlot, err := booking.NewTimeSlot(
			patch.Coalesce(params.StartTime, bookingEntity.Slot().Start()),
			patch.Coalesce(params.EndTime, bookingEntity.Slot().End()),
		)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
		// Validate before the lock and conflict scan so a bad window is a
		// validation failure even when the slot is also taken
		if err := newSlot.ValidateFutureStart(now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}

		if err := u.bookingRepo.LockResource(ctx, tx, bookingEntity.Kind(), bookingEntity.ResourceID()); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		excludeID := bookingEntity.ID()
		conflict, err := u.hasConflict(ctx, tx, bookingEntity.Kind(), bookingEntity.ResourceID(), newSlot, &excludeID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if conflict {
			return nil, ErrBookingConflict
		}

		if err := bookingEntity.Reschedule(newSlot, now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}

	if params.Purpose != nil {
		if err := bookingEntity.ChangePurpose(*params.Purpose, now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}

	if params.Destination != nil || params.Attendees != nil {
		details, err := buildDetails(bookingEntity.Kind(), params.Destination, params.Attendees)
		if err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
		if err := bookingEntity.ChangeDetails(details, now); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}

	if err := u.bookingRepo.Update(ctx, tx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.bookingRepo.FindByID(ctx, id)
}

func (u *bookingUseCaseImpl) ChangeStatus(
	ctx context.Context,
	id uuid.UUID,
	to booking.Status,
	actingUserID uuid.UUID,
	actingRole user.Role,
) (*readmodel.BookingRM, error) {
	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	bookingEntity, err := u.bookingRepo.FindDomainByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	switch to {
	case booking.StatusCancelled:
		if !booking.CanCancel(bookingEntity, actingUserID) {
			return nil, ErrPermissionDenied
		}
	case booking.StatusApproved, booking.StatusRejected:
		if actingRole != user.RoleAdmin {
			return nil, ErrPermissionDenied
		}
	}

	if err := bookingEntity.ChangeStatus(to, u.clock.Now()); err != nil {
		return nil, errs.Mark(err, ErrInvalidTransition)
	}

	if err := u.bookingRepo.Update(ctx, tx, bookingEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.bookingRepo.FindByID(ctx, id)
}

func (u *bookingUseCaseImpl) DeleteBooking(ctx context.Context, id uuid.UUID, actingUserID uuid.UUID) error {
	tx, err := u.txManager.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollback(ctx, tx)

	bookingEntity, err := u.bookingRepo.FindDomainByID(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrBookingNotFound
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if !booking.CanDelete(bookingEntity, actingUserID) {
		return ErrPermissionDenied
	}

	if err := u.bookingRepo.Delete(ctx, tx, id); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return nil
}

// hasConflict is an existence check, not an enumeration: the first
// overlapping live booking wins.
func (u *bookingUseCaseImpl) hasConflict(
	ctx context.Context,
	tx db.DBTX,
	kind resource.Kind,
	resourceID uuid.UUID,
	slot booking.TimeSlot,
	excludeID *uuid.UUID,
) (bool, error) {
	slots, err := u.bookingRepo.FindLiveSlotsByResource(ctx, tx, kind, resourceID, excludeID)
	if err != nil {
		return false, err
	}

	for _, existing := range slots {
		if existing.Overlaps(slot) {
			return true, nil
		}
	}

	return false, nil
}

func (u *bookingUseCaseImpl) findResourceOfKind(ctx context.Context, kind resource.Kind, resourceID uuid.UUID) (*readmodel.ResourceRM, error) {
	resourceRM, err := u.resourceRepo.FindByID(ctx, resourceID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}

	// A vehicle id submitted as a room booking (or vice versa) is treated
	// as an unknown resource for that kind.
	if resourceRM.Kind != kind.String() {
		return nil, ErrResourceNotFound
	}

	return resourceRM, nil
}

func buildDetails(kind resource.Kind, destination *string, attendees *int) (booking.Details, error) {
	switch kind {
	case resource.KindVehicle:
		if destination == nil {
			return booking.Details{}, booking.ErrEmptyDestination
		}
		return booking.NewVehicleDetails(*destination)
	default:
		if attendees == nil {
			return booking.Details{}, booking.ErrInvalidAttendees
		}
		return booking.NewRoomDetails(*attendees)
	}
}

func rollback(ctx context.Context, tx db.Tx) {
	if err := tx.Rollback(ctx); err != nil {
		slog.Warn("failed to rollback transaction", "error", err)
	}
}
