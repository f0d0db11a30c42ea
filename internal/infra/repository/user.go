package repository

import (
	"context"
	"errors"

	"reservehub/internal/infra"
	"reservehub/internal/infra/db"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, email, name, role, password_hash, created_at`

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(pool db.DBTX) *UserRepository {
	return &UserRepository{db: pool}
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*readmodel.UserRM, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)

	rm, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}

	return rm, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	rm, err := scanUserRow(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return rm, nil
}

func scanUserRow(row pgx.Row) (*readmodel.UserRM, error) {
	var rm readmodel.UserRM
	err := row.Scan(&rm.ID, &rm.Email, &rm.Name, &rm.Role, &rm.PasswordHash, &rm.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &rm, nil
}
