package usecase

import (
	"context"
	"errors"

	"reservehub/internal/domain/user"
	"reservehub/internal/infra"
	"reservehub/internal/pkg/errs"
	"reservehub/internal/pkg/jwt"
	"reservehub/internal/pkg/password"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*readmodel.UserRM, error)
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.UserRM, error)
}

type LoginResult struct {
	Token string
	User  *readmodel.UserRM
}

type AuthUseCase interface {
	Login(ctx context.Context, email, plainPassword string) (*LoginResult, error)
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.UserRM, error)
}

type authUseCaseImpl struct {
	userRepo   UserRepository
	jwtService *jwt.Service
}

func NewAuthUseCase(userRepo UserRepository, jwtService *jwt.Service) AuthUseCase {
	return &authUseCaseImpl{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

func (u *authUseCaseImpl) Login(ctx context.Context, email, plainPassword string) (*LoginResult, error) {
	userRM, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			// Same failure as a wrong password so the response does not
			// reveal which accounts exist.
			return nil, ErrInvalidCredentials
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	if err := password.ComparePassword(userRM.PasswordHash, plainPassword); err != nil {
		return nil, ErrInvalidCredentials
	}

	role, err := user.NewRole(userRM.Role)
	if err != nil {
		return nil, errs.Wrap(err, "stored user has invalid role")
	}

	token, err := u.jwtService.GenerateToken(userRM.ID, userRM.Name, role)
	if err != nil {
		return nil, errs.Wrap(err, "failed to generate token")
	}

	return &LoginResult{Token: token, User: userRM}, nil
}

func (u *authUseCaseImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*readmodel.UserRM, error) {
	userRM, err := u.userRepo.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Wrap(err, "failed to find user")
	}

	return userRM, nil
}
