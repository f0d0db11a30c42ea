package repository

import (
	"context"
	"errors"

	"reservehub/internal/domain/resource"
	"reservehub/internal/infra"
	"reservehub/internal/infra/db"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const resourceColumns = `id, kind, name, capacity, status, created_at, updated_at`

type ResourceRepository struct {
	db db.DBTX
}

func NewResourceRepository(pool db.DBTX) *ResourceRepository {
	return &ResourceRepository{db: pool}
}

func (r *ResourceRepository) Create(ctx context.Context, res *resource.Resource) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO resources (id, kind, name, capacity, status)
		VALUES ($1, $2, $3, $4, $5)`,
		res.ID(), res.Kind().String(), res.Name(), res.Capacity(), res.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to create resource", err)
	}

	return nil
}

func (r *ResourceRepository) Update(ctx context.Context, res *resource.Resource) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE resources
		SET name = $2, capacity = $3, status = $4, updated_at = now()
		WHERE id = $1`,
		res.ID(), res.Name(), res.Capacity(), res.Status().String())
	if err != nil {
		return infra.WrapRepoErr("failed to update resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *ResourceRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return infra.WrapRepoErr("resource has bookings", err, infra.KindForeignKeyViolated)
		}
		return infra.WrapRepoErr("failed to delete resource", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("resource not found", nil, infra.KindNotFound)
	}

	return nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ResourceRM, error) {
	row := r.db.QueryRow(ctx, `SELECT `+resourceColumns+` FROM resources WHERE id = $1`, id)

	rm, err := scanResourceRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource by ID", err)
	}

	return rm, nil
}

func (r *ResourceRepository) List(ctx context.Context, kind *resource.Kind) ([]*readmodel.ResourceRM, error) {
	query := `SELECT ` + resourceColumns + ` FROM resources`
	args := []any{}
	if kind != nil {
		query += ` WHERE kind = $1`
		args = append(args, kind.String())
	}
	query += ` ORDER BY name`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var result []*readmodel.ResourceRM
	for rows.Next() {
		rm, err := scanResourceRow(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource", err)
		}
		result = append(result, rm)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}

	return result, nil
}

// NamesByIDs resolves display names for a batch of resource ids of one
// kind. Unknown ids are simply absent from the returned map.
func (r *ResourceRepository) NamesByIDs(ctx context.Context, tx db.DBTX, kind resource.Kind, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	rows, err := tx.Query(ctx, `SELECT id, name FROM resources WHERE kind = $1 AND id = ANY($2)`,
		kind.String(), ids)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to resolve resource names", err)
	}
	defer rows.Close()

	names := make(map[uuid.UUID]string, len(ids))
	for rows.Next() {
		var id uuid.UUID
		var name string
		if err := rows.Scan(&id, &name); err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource name", err)
		}
		names[id] = name
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resource names", err)
	}

	return names, nil
}

func scanResourceRow(row pgx.Row) (*readmodel.ResourceRM, error) {
	var rm readmodel.ResourceRM
	err := row.Scan(&rm.ID, &rm.Kind, &rm.Name, &rm.Capacity, &rm.Status, &rm.CreatedAt, &rm.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}
