//go:build unit

package usecase_test

import (
	"bytes"
	"context"
	"slices"
	"testing"
	"time"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	"reservehub/internal/domain/user"
	"reservehub/internal/infra"
	"reservehub/internal/infra/db"
	"reservehub/internal/pkg/clock"
	"reservehub/internal/usecase"
	"reservehub/internal/usecase/readmodel"
	"reservehub/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

type fakeTx struct {
	commits   int
	rollbacks int
}

func (t *fakeTx) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (t *fakeTx) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (t *fakeTx) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (t *fakeTx) Commit(context.Context) error {
	t.commits++
	return nil
}
func (t *fakeTx) Rollback(context.Context) error {
	t.rollbacks++
	return nil
}

type fakeTxManager struct {
	tx *fakeTx
}

func (m *fakeTxManager) Begin(context.Context) (db.Tx, error) { return m.tx, nil }

type slotEntry struct {
	id   uuid.UUID
	slot booking.TimeSlot
}

type fakeBookingRepo struct {
	slots     map[uuid.UUID][]slotEntry
	domain    map[uuid.UUID]*booking.Booking
	rms       map[uuid.UUID]*readmodel.BookingRM
	created   []*booking.Booking
	updated   []*booking.Booking
	deleted   []uuid.UUID
	lockCalls int
	lockOrder []uuid.UUID
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{
		slots:  make(map[uuid.UUID][]slotEntry),
		domain: make(map[uuid.UUID]*booking.Booking),
		rms:    make(map[uuid.UUID]*readmodel.BookingRM),
	}
}

func (r *fakeBookingRepo) seed(b *booking.Booking) {
	r.domain[b.ID()] = b
	r.rms[b.ID()] = rmFromEntity(b)
	if b.IsLive() {
		r.slots[b.ResourceID()] = append(r.slots[b.ResourceID()], slotEntry{id: b.ID(), slot: b.Slot()})
	}
}

func (r *fakeBookingRepo) LockResource(_ context.Context, _ db.DBTX, _ resource.Kind, resourceID uuid.UUID) error {
	r.lockCalls++
	r.lockOrder = append(r.lockOrder, resourceID)
	return nil
}

func (r *fakeBookingRepo) FindLiveSlotsByResource(_ context.Context, _ db.DBTX, _ resource.Kind, resourceID uuid.UUID, excludeID *uuid.UUID) ([]booking.TimeSlot, error) {
	var result []booking.TimeSlot
	for _, entry := range r.slots[resourceID] {
		if excludeID != nil && entry.id == *excludeID {
			continue
		}
		result = append(result, entry.slot)
	}
	return result, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.created = append(r.created, b)
	r.seed(b)
	return nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	r.updated = append(r.updated, b)
	r.rms[b.ID()] = rmFromEntity(b)
	return nil
}

func (r *fakeBookingRepo) Delete(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	r.deleted = append(r.deleted, id)
	delete(r.domain, id)
	delete(r.rms, id)
	return nil
}

func (r *fakeBookingRepo) FindDomainByID(_ context.Context, _ db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.domain[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return b, nil
}

func (r *fakeBookingRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	rm, ok := r.rms[id]
	if !ok {
		return nil, infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (r *fakeBookingRepo) List(_ context.Context, filter readmodel.BookingFilter) ([]*readmodel.BookingRM, error) {
	var result []*readmodel.BookingRM
	for _, rm := range r.rms {
		if filter.UserID != nil && rm.UserID != *filter.UserID {
			continue
		}
		if filter.Kind != nil && rm.Kind != *filter.Kind {
			continue
		}
		// Containment, not intersection: the whole window must sit inside [From, To]
		if filter.From != nil && rm.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && rm.EndTime.After(*filter.To) {
			continue
		}
		result = append(result, rm)
	}
	return result, nil
}

type fakeResourceRepo struct {
	resources map[uuid.UUID]*readmodel.ResourceRM
}

func newFakeResourceRepo(rms ...*readmodel.ResourceRM) *fakeResourceRepo {
	repo := &fakeResourceRepo{resources: make(map[uuid.UUID]*readmodel.ResourceRM)}
	for _, rm := range rms {
		repo.resources[rm.ID] = rm
	}
	return repo
}

func (r *fakeResourceRepo) FindByID(_ context.Context, id uuid.UUID) (*readmodel.ResourceRM, error) {
	rm, ok := r.resources[id]
	if !ok {
		return nil, infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}
	return rm, nil
}

func (r *fakeResourceRepo) NamesByIDs(_ context.Context, _ db.DBTX, kind resource.Kind, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string)
	for _, id := range ids {
		if rm, ok := r.resources[id]; ok && rm.Kind == kind.String() {
			names[id] = rm.Name
		}
	}
	return names, nil
}

func rmFromEntity(b *booking.Booking) *readmodel.BookingRM {
	rm := &readmodel.BookingRM{
		ID:           b.ID(),
		Kind:         b.Kind().String(),
		ResourceID:   b.ResourceID(),
		ResourceName: b.ResourceName(),
		UserID:       b.UserID(),
		UserName:     b.UserName(),
		StartTime:    b.Slot().Start(),
		EndTime:      b.Slot().End(),
		Purpose:      b.Purpose(),
		Status:       b.Status().String(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
	if b.Kind() == resource.KindVehicle {
		destination := b.Details().Destination()
		rm.Destination = &destination
	} else {
		attendees := int32(b.Details().Attendees())
		rm.Attendees = &attendees
	}
	return rm
}

type bookingFixture struct {
	uc           usecase.BookingUseCase
	bookingRepo  *fakeBookingRepo
	resourceRepo *fakeResourceRepo
	tx           *fakeTx
	clock        *clock.MockClock
}

func newBookingFixture(resources ...*readmodel.ResourceRM) *bookingFixture {
	f := &bookingFixture{
		bookingRepo:  newFakeBookingRepo(),
		resourceRepo: newFakeResourceRepo(resources...),
		tx:           &fakeTx{},
		clock:        clock.NewMockClock(baseTime),
	}
	f.uc = usecase.NewBookingUseCase(f.bookingRepo, f.resourceRepo, &fakeTxManager{tx: f.tx}, f.clock)
	return f
}

func vehicleRM() *readmodel.ResourceRM {
	return builder.NewResourceBuilder().BuildRM()
}

func createParams(resourceRM *readmodel.ResourceRM) usecase.CreateBookingParams {
	destination := "Downtown office"
	return usecase.CreateBookingParams{
		Kind:        resource.KindVehicle,
		ResourceID:  resourceRM.ID,
		UserID:      uuid.New(),
		UserName:    "Test User",
		StartTime:   baseTime.Add(1 * time.Hour),
		EndTime:     baseTime.Add(2 * time.Hour),
		Purpose:     "Client visit",
		Destination: &destination,
	}
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		rm, err := f.uc.CreateBooking(ctx, createParams(resourceRM))
		require.NoError(t, err)
		require.NotNil(t, rm)

		assert.Equal(t, resourceRM.ID, rm.ResourceID)
		assert.Equal(t, resourceRM.Name, rm.ResourceName)
		assert.Equal(t, "pending", rm.Status)
		assert.Equal(t, 1, f.tx.commits)

		// Read-after-write returns exactly what was persisted
		require.Len(t, f.bookingRepo.created, 1)
		assert.Empty(t, cmp.Diff(rmFromEntity(f.bookingRepo.created[0]), rm))
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newBookingFixture()

		params := createParams(vehicleRM())
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrResourceNotFound)
		assert.Empty(t, f.bookingRepo.created)
	})

	t.Run("kind mismatch treated as unknown resource", func(t *testing.T) {
		roomRM := builder.NewResourceBuilder().AsRoom().BuildRM()
		f := newBookingFixture(roomRM)

		params := createParams(roomRM) // vehicle params against a room id
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrResourceNotFound)
	})

	t.Run("overlapping booking rejected", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		existing := builder.NewBookingBuilder().
			WithResourceID(resourceRM.ID).
			WithWindow(baseTime.Add(90*time.Minute), baseTime.Add(150*time.Minute)).
			BuildReconstructed()
		f.bookingRepo.seed(existing)

		_, err := f.uc.CreateBooking(ctx, createParams(resourceRM))
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
		assert.Empty(t, f.bookingRepo.created)
		assert.Equal(t, 0, f.tx.commits)
	})

	t.Run("identical window conflicts", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		existing := builder.NewBookingBuilder().
			WithResourceID(resourceRM.ID).
			WithWindow(baseTime.Add(1*time.Hour), baseTime.Add(2*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(existing)

		_, err := f.uc.CreateBooking(ctx, createParams(resourceRM))
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
	})

	t.Run("back-to-back window is allowed", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		// Existing booking starts exactly where the new one ends
		existing := builder.NewBookingBuilder().
			WithResourceID(resourceRM.ID).
			WithWindow(baseTime.Add(2*time.Hour), baseTime.Add(3*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(existing)

		_, err := f.uc.CreateBooking(ctx, createParams(resourceRM))
		assert.NoError(t, err)
	})

	t.Run("cancelled booking releases its window", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		cancelled := builder.NewBookingBuilder().
			WithResourceID(resourceRM.ID).
			WithWindow(baseTime.Add(1*time.Hour), baseTime.Add(2*time.Hour)).
			WithStatus(booking.StatusCancelled).
			BuildReconstructed()
		f.bookingRepo.seed(cancelled)

		rm, err := f.uc.CreateBooking(ctx, createParams(resourceRM))
		require.NoError(t, err)
		assert.Equal(t, "pending", rm.Status)
	})

	t.Run("invalid window", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		params := createParams(resourceRM)
		params.EndTime = params.StartTime
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrDomainValidationFailed)
	})

	t.Run("start in the past", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		params := createParams(resourceRM)
		params.StartTime = baseTime.Add(-2 * time.Hour)
		params.EndTime = baseTime.Add(-1 * time.Hour)
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrDomainValidationFailed)
	})

	t.Run("vehicle booking without destination", func(t *testing.T) {
		resourceRM := vehicleRM()
		f := newBookingFixture(resourceRM)

		params := createParams(resourceRM)
		params.Destination = nil
		_, err := f.uc.CreateBooking(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrDomainValidationFailed)
	})
}

func TestUpdateBooking(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	seedOwned := func(f *bookingFixture, resourceID uuid.UUID) *booking.Booking {
		b := builder.NewBookingBuilder().
			WithUserID(owner).
			WithResourceID(resourceID).
			WithWindow(baseTime.Add(1*time.Hour), baseTime.Add(2*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(b)
		return b
	}

	t.Run("purpose change skips conflict check", func(t *testing.T) {
		f := newBookingFixture()
		b := seedOwned(f, uuid.New())

		purpose := "Updated purpose"
		rm, err := f.uc.UpdateBooking(ctx, b.ID(), owner, usecase.UpdateBookingParams{Purpose: &purpose})
		require.NoError(t, err)

		assert.Equal(t, "Updated purpose", rm.Purpose)
		assert.Equal(t, 0, f.bookingRepo.lockCalls)
		assert.Equal(t, 1, f.tx.commits)
	})

	t.Run("window change excludes own booking from conflict scan", func(t *testing.T) {
		f := newBookingFixture()
		b := seedOwned(f, uuid.New())

		// Shift by 30 minutes; the only overlapping booking is itself
		newStart := baseTime.Add(90 * time.Minute)
		newEnd := baseTime.Add(150 * time.Minute)
		rm, err := f.uc.UpdateBooking(ctx, b.ID(), owner, usecase.UpdateBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		require.NoError(t, err)

		assert.Equal(t, newStart, rm.StartTime)
		assert.Equal(t, newEnd, rm.EndTime)
		assert.Equal(t, 1, f.bookingRepo.lockCalls)
	})

	t.Run("window change conflicting with sibling", func(t *testing.T) {
		f := newBookingFixture()
		resourceID := uuid.New()
		b := seedOwned(f, resourceID)

		sibling := builder.NewBookingBuilder().
			WithResourceID(resourceID).
			WithWindow(baseTime.Add(3*time.Hour), baseTime.Add(4*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(sibling)

		newStart := baseTime.Add(150 * time.Minute)
		newEnd := baseTime.Add(210 * time.Minute)
		_, err := f.uc.UpdateBooking(ctx, b.ID(), owner, usecase.UpdateBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		assert.ErrorIs(t, err, usecase.ErrBookingConflict)
		assert.Equal(t, 0, f.tx.commits)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		f := newBookingFixture()
		b := seedOwned(f, uuid.New())

		purpose := "Hijacked"
		_, err := f.uc.UpdateBooking(ctx, b.ID(), uuid.New(), usecase.UpdateBookingParams{Purpose: &purpose})
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})

	t.Run("approved booking cannot be edited", func(t *testing.T) {
		f := newBookingFixture()
		b := builder.NewBookingBuilder().
			WithUserID(owner).
			WithStatus(booking.StatusApproved).
			BuildReconstructed()
		f.bookingRepo.seed(b)

		purpose := "Too late"
		_, err := f.uc.UpdateBooking(ctx, b.ID(), owner, usecase.UpdateBookingParams{Purpose: &purpose})
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})

	t.Run("past window fails validation before the conflict scan", func(t *testing.T) {
		f := newBookingFixture()
		resourceID := uuid.New()
		b := seedOwned(f, resourceID)

		// A sibling occupies the same past window; validation must win over conflict
		sibling := builder.NewBookingBuilder().
			WithResourceID(resourceID).
			WithWindow(baseTime.Add(-3*time.Hour), baseTime.Add(-1*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(sibling)

		newStart := baseTime.Add(-2 * time.Hour)
		newEnd := baseTime.Add(-1 * time.Hour)
		_, err := f.uc.UpdateBooking(ctx, b.ID(), owner, usecase.UpdateBookingParams{
			StartTime: &newStart,
			EndTime:   &newEnd,
		})
		assert.ErrorIs(t, err, usecase.ErrDomainValidationFailed)
		assert.NotErrorIs(t, err, usecase.ErrBookingConflict)
		assert.Equal(t, 0, f.bookingRepo.lockCalls)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newBookingFixture()

		purpose := "Nothing here"
		_, err := f.uc.UpdateBooking(ctx, uuid.New(), owner, usecase.UpdateBookingParams{Purpose: &purpose})
		assert.ErrorIs(t, err, usecase.ErrBookingNotFound)
	})
}

func TestListBookings(t *testing.T) {
	ctx := context.Background()

	seedWindow := func(f *bookingFixture, start, end time.Time) *booking.Booking {
		b := builder.NewBookingBuilder().WithWindow(start, end).BuildReconstructed()
		f.bookingRepo.seed(b)
		return b
	}

	listedIDs := func(rms []*readmodel.BookingRM) []uuid.UUID {
		ids := make([]uuid.UUID, len(rms))
		for i, rm := range rms {
			ids[i] = rm.ID
		}
		return ids
	}

	t.Run("date range keeps only fully contained bookings", func(t *testing.T) {
		f := newBookingFixture()

		inside := seedWindow(f, baseTime.Add(2*time.Hour), baseTime.Add(3*time.Hour))
		exact := seedWindow(f, baseTime.Add(1*time.Hour), baseTime.Add(4*time.Hour))
		seedWindow(f, baseTime.Add(30*time.Minute), baseTime.Add(2*time.Hour)) // starts before the range
		seedWindow(f, baseTime.Add(3*time.Hour), baseTime.Add(5*time.Hour))    // ends after the range
		seedWindow(f, baseTime.Add(6*time.Hour), baseTime.Add(7*time.Hour))    // disjoint

		from := baseTime.Add(1 * time.Hour)
		to := baseTime.Add(4 * time.Hour)
		result, err := f.uc.ListBookings(ctx, readmodel.BookingFilter{From: &from, To: &to})
		require.NoError(t, err)

		assert.ElementsMatch(t, []uuid.UUID{inside.ID(), exact.ID()}, listedIDs(result))
	})

	t.Run("open-ended lower bound", func(t *testing.T) {
		f := newBookingFixture()

		early := seedWindow(f, baseTime.Add(1*time.Hour), baseTime.Add(2*time.Hour))
		seedWindow(f, baseTime.Add(3*time.Hour), baseTime.Add(5*time.Hour)) // ends past the bound

		to := baseTime.Add(4 * time.Hour)
		result, err := f.uc.ListBookings(ctx, readmodel.BookingFilter{To: &to})
		require.NoError(t, err)

		assert.ElementsMatch(t, []uuid.UUID{early.ID()}, listedIDs(result))
	})
}

func TestChangeStatus(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()
	admin := uuid.New()

	seedWithStatus := func(f *bookingFixture, status booking.Status) *booking.Booking {
		b := builder.NewBookingBuilder().
			WithUserID(owner).
			WithStatus(status).
			BuildReconstructed()
		f.bookingRepo.seed(b)
		return b
	}

	t.Run("admin approves pending", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusPending)

		rm, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusApproved, admin, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "approved", rm.Status)
	})

	t.Run("member cannot approve", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusPending)

		_, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusApproved, owner, user.RoleMember)
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})

	t.Run("admin rejects pending", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusPending)

		rm, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusRejected, admin, user.RoleAdmin)
		require.NoError(t, err)
		assert.Equal(t, "rejected", rm.Status)
	})

	t.Run("owner cancels approved", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusApproved)

		rm, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusCancelled, owner, user.RoleMember)
		require.NoError(t, err)
		assert.Equal(t, "cancelled", rm.Status)
	})

	t.Run("owner cannot cancel pending", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusPending)

		_, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusCancelled, owner, user.RoleMember)
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})

	t.Run("stranger cannot cancel", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusApproved)

		_, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusCancelled, uuid.New(), user.RoleMember)
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})

	t.Run("rejected is terminal", func(t *testing.T) {
		f := newBookingFixture()
		b := seedWithStatus(f, booking.StatusRejected)

		_, err := f.uc.ChangeStatus(ctx, b.ID(), booking.StatusApproved, admin, user.RoleAdmin)
		assert.ErrorIs(t, err, usecase.ErrInvalidTransition)
	})
}

func TestDeleteBooking(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	t.Run("owner deletes pending", func(t *testing.T) {
		f := newBookingFixture()
		b := builder.NewBookingBuilder().WithUserID(owner).BuildReconstructed()
		f.bookingRepo.seed(b)

		require.NoError(t, f.uc.DeleteBooking(ctx, b.ID(), owner))
		assert.Equal(t, []uuid.UUID{b.ID()}, f.bookingRepo.deleted)
		assert.Equal(t, 1, f.tx.commits)
	})

	t.Run("approved booking cannot be deleted", func(t *testing.T) {
		f := newBookingFixture()
		b := builder.NewBookingBuilder().
			WithUserID(owner).
			WithStatus(booking.StatusApproved).
			BuildReconstructed()
		f.bookingRepo.seed(b)

		err := f.uc.DeleteBooking(ctx, b.ID(), owner)
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
		assert.Empty(t, f.bookingRepo.deleted)
	})

	t.Run("non-owner denied", func(t *testing.T) {
		f := newBookingFixture()
		b := builder.NewBookingBuilder().WithUserID(owner).BuildReconstructed()
		f.bookingRepo.seed(b)

		err := f.uc.DeleteBooking(ctx, b.ID(), uuid.New())
		assert.ErrorIs(t, err, usecase.ErrPermissionDenied)
	})
}

func TestCreateBatchBookings(t *testing.T) {
	ctx := context.Background()

	batchParams := func(ids ...uuid.UUID) usecase.CreateBatchParams {
		destination := "Regional depot"
		return usecase.CreateBatchParams{
			Kind:        resource.KindVehicle,
			ResourceIDs: ids,
			UserID:      uuid.New(),
			UserName:    "Batch User",
			StartTime:   baseTime.Add(1 * time.Hour),
			EndTime:     baseTime.Add(2 * time.Hour),
			Purpose:     "Team offsite",
			Destination: &destination,
		}
	}

	t.Run("partial success", func(t *testing.T) {
		okRM := vehicleRM()
		busyRM := builder.NewResourceBuilder().WithName("Van 2").BuildRM()
		f := newBookingFixture(okRM, busyRM)

		// Van 2 already has an overlapping booking
		existing := builder.NewBookingBuilder().
			WithResourceID(busyRM.ID).
			WithWindow(baseTime.Add(1*time.Hour), baseTime.Add(2*time.Hour)).
			BuildReconstructed()
		f.bookingRepo.seed(existing)

		missingID := uuid.New()
		result, err := f.uc.CreateBatchBookings(ctx, batchParams(okRM.ID, busyRM.ID, missingID))
		require.NoError(t, err)

		require.Len(t, result.Succeeded, 1)
		assert.Equal(t, okRM.ID, result.Succeeded[0].ResourceID)

		require.Len(t, result.Failed, 2)
		failures := make(map[uuid.UUID]usecase.BatchFailureReason)
		for _, failure := range result.Failed {
			failures[failure.ResourceID] = failure.Reason
		}
		assert.Equal(t, usecase.ReasonConflictDetected, failures[busyRM.ID])
		assert.Equal(t, usecase.ReasonResourceNotFound, failures[missingID])

		assert.Equal(t, 1, f.tx.commits)
	})

	t.Run("all items fail leaves nothing committed", func(t *testing.T) {
		f := newBookingFixture()

		result, err := f.uc.CreateBatchBookings(ctx, batchParams(uuid.New(), uuid.New()))
		require.NoError(t, err)

		assert.Empty(t, result.Succeeded)
		assert.Len(t, result.Failed, 2)
		assert.Equal(t, 0, f.tx.commits)
	})

	t.Run("all items succeed", func(t *testing.T) {
		rm1 := vehicleRM()
		rm2 := builder.NewResourceBuilder().WithName("Van 2").BuildRM()
		f := newBookingFixture(rm1, rm2)

		result, err := f.uc.CreateBatchBookings(ctx, batchParams(rm1.ID, rm2.ID))
		require.NoError(t, err)

		assert.Len(t, result.Succeeded, 2)
		assert.Empty(t, result.Failed)
		assert.Equal(t, 1, f.tx.commits)
	})

	t.Run("locks follow one canonical order", func(t *testing.T) {
		rms := []*readmodel.ResourceRM{
			vehicleRM(),
			builder.NewResourceBuilder().WithName("Van 2").BuildRM(),
			builder.NewResourceBuilder().WithName("Van 3").BuildRM(),
		}
		f := newBookingFixture(rms...)

		sorted := []uuid.UUID{rms[0].ID, rms[1].ID, rms[2].ID}
		slices.SortFunc(sorted, func(a, b uuid.UUID) int { return bytes.Compare(a[:], b[:]) })
		input := []uuid.UUID{sorted[2], sorted[0], sorted[1]}

		result, err := f.uc.CreateBatchBookings(ctx, batchParams(input...))
		require.NoError(t, err)

		// Lock acquisition ignores input order; results keep it
		assert.Equal(t, sorted, f.bookingRepo.lockOrder)
		require.Len(t, result.Succeeded, 3)
		for i, rm := range result.Succeeded {
			assert.Equal(t, input[i], rm.ResourceID)
		}
	})

	t.Run("batch size limits", func(t *testing.T) {
		f := newBookingFixture()

		_, err := f.uc.CreateBatchBookings(ctx, batchParams())
		assert.ErrorIs(t, err, usecase.ErrBatchTooLarge)

		ids := make([]uuid.UUID, usecase.MaxBatchSize+1)
		for i := range ids {
			ids[i] = uuid.New()
		}
		_, err = f.uc.CreateBatchBookings(ctx, batchParams(ids...))
		assert.ErrorIs(t, err, usecase.ErrBatchTooLarge)
	})

	t.Run("invalid shared window aborts whole batch", func(t *testing.T) {
		rm1 := vehicleRM()
		f := newBookingFixture(rm1)

		params := batchParams(rm1.ID)
		params.EndTime = params.StartTime
		_, err := f.uc.CreateBatchBookings(ctx, params)
		assert.ErrorIs(t, err, usecase.ErrDomainValidationFailed)
		assert.Empty(t, f.bookingRepo.created)
	})
}
