package repository

import (
	"context"
	"errors"
	"strconv"
	"time"

	"reservehub/internal/domain/booking"
	"reservehub/internal/domain/resource"
	"reservehub/internal/infra"
	"reservehub/internal/infra/db"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const bookingColumns = `id, kind, resource_id, resource_name, user_id, user_name,
	start_time, end_time, purpose, destination, attendees, status, created_at, updated_at`

type BookingRepository struct {
	db db.DBTX
}

func NewBookingRepository(pool db.DBTX) *BookingRepository {
	return &BookingRepository{db: pool}
}

// LockResource takes a transaction-scoped advisory lock for one resource so
// that the conflict scan and the subsequent insert are atomic with respect
// to other writers on the same resource.
func (r *BookingRepository) LockResource(ctx context.Context, tx db.DBTX, kind resource.Kind, resourceID uuid.UUID) error {
	key := kind.String() + ":" + resourceID.String()
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtextextended($1, 0))`, key); err != nil {
		return infra.WrapRepoErr("failed to lock resource", err)
	}
	return nil
}

// FindLiveSlotsByResource returns the time slots of all non-cancelled
// bookings on a resource, optionally excluding one booking id.
func (r *BookingRepository) FindLiveSlotsByResource(
	ctx context.Context,
	tx db.DBTX,
	kind resource.Kind,
	resourceID uuid.UUID,
	excludeID *uuid.UUID,
) ([]booking.TimeSlot, error) {
	rows, err := tx.Query(ctx, `
		SELECT start_time, end_time
		FROM bookings
		WHERE kind = $1 AND resource_id = $2 AND status <> $3 AND id <> COALESCE($4, '00000000-0000-0000-0000-000000000000'::uuid)`,
		kind.String(), resourceID, booking.StatusCancelled.String(), excludeID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query live bookings", err)
	}
	defer rows.Close()

	var slots []booking.TimeSlot
	for rows.Next() {
		var start, end time.Time
		if err := rows.Scan(&start, &end); err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking slot", err)
		}
		slot, err := booking.NewTimeSlot(start, end)
		if err != nil {
			return nil, infra.WrapRepoErr("stored booking has invalid slot", err)
		}
		slots = append(slots, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking slots", err)
	}

	return slots, nil
}

func (r *BookingRepository) Create(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	destination, attendees := detailsToColumns(b.Details())

	_, err := tx.Exec(ctx, `
		INSERT INTO bookings (id, kind, resource_id, resource_name, user_id, user_name,
			start_time, end_time, purpose, destination, attendees, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID(), b.Kind().String(), b.ResourceID(), b.ResourceName(), b.UserID(), b.UserName(),
		b.Slot().Start(), b.Slot().End(), b.Purpose(), destination, attendees, b.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}

	return nil
}

func (r *BookingRepository) Update(ctx context.Context, tx db.DBTX, b *booking.Booking) error {
	destination, attendees := detailsToColumns(b.Details())

	tag, err := tx.Exec(ctx, `
		UPDATE bookings
		SET start_time = $2, end_time = $3, purpose = $4, destination = $5,
			attendees = $6, status = $7, updated_at = now()
		WHERE id = $1`,
		b.ID(), b.Slot().Start(), b.Slot().End(), b.Purpose(), destination,
		attendees, b.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *BookingRepository) Delete(ctx context.Context, tx db.DBTX, id uuid.UUID) error {
	tag, err := tx.Exec(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}

	return nil
}

// FindDomainByID reconstructs the aggregate for command handling. It runs
// on the given DBTX so commands can read inside their own transaction.
func (r *BookingRepository) FindDomainByID(ctx context.Context, tx db.DBTX, id uuid.UUID) (*booking.Booking, error) {
	row := tx.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	rm, err := scanBookingRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return domainFromRM(rm)
}

func (r *BookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.BookingRM, error) {
	row := r.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, id)

	rm, err := scanBookingRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return rm, nil
}

func (r *BookingRepository) List(ctx context.Context, filter readmodel.BookingFilter) ([]*readmodel.BookingRM, error) {
	query := `SELECT ` + bookingColumns + ` FROM bookings WHERE 1=1`
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		query += ` AND user_id = $` + strconv.Itoa(len(args))
	}
	if filter.Kind != nil {
		args = append(args, *filter.Kind)
		query += ` AND kind = $` + strconv.Itoa(len(args))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		query += ` AND start_time >= $` + strconv.Itoa(len(args))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		query += ` AND end_time <= $` + strconv.Itoa(len(args))
	}
	query += ` ORDER BY start_time`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var result []*readmodel.BookingRM
	for rows.Next() {
		rm, err := scanBookingRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	return result, nil
}

func scanBookingRow(row pgx.Row) (*readmodel.BookingRM, error) {
	var rm readmodel.BookingRM
	err := row.Scan(
		&rm.ID, &rm.Kind, &rm.ResourceID, &rm.ResourceName, &rm.UserID, &rm.UserName,
		&rm.StartTime, &rm.EndTime, &rm.Purpose, &rm.Destination, &rm.Attendees,
		&rm.Status, &rm.CreatedAt, &rm.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}

func domainFromRM(rm *readmodel.BookingRM) (*booking.Booking, error) {
	kind, err := resource.NewKind(rm.Kind)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid kind", err)
	}

	slot, err := booking.NewTimeSlot(rm.StartTime, rm.EndTime)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid slot", err)
	}

	details, err := detailsFromColumns(kind, rm.Destination, rm.Attendees)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid details", err)
	}

	status, err := booking.NewStatus(rm.Status)
	if err != nil {
		return nil, infra.WrapRepoErr("stored booking has invalid status", err)
	}

	return booking.ReconstructBooking(
		rm.ID, kind, rm.ResourceID, rm.ResourceName, rm.UserID, rm.UserName,
		slot, rm.Purpose, details, status, rm.CreatedAt, rm.UpdatedAt,
	), nil
}

func detailsToColumns(d booking.Details) (destination *string, attendees *int32) {
	switch d.Kind() {
	case resource.KindVehicle:
		v := d.Destination()
		destination = &v
	case resource.KindRoom:
		v := int32(d.Attendees())
		attendees = &v
	}
	return destination, attendees
}

func detailsFromColumns(kind resource.Kind, destination *string, attendees *int32) (booking.Details, error) {
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
		return booking.NewRoomDetails(int(*attendees))
	}
}