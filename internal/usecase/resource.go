package usecase

import (
	"context"
	"errors"

	"reservehub/internal/domain/resource"
	"reservehub/internal/infra"
	"reservehub/internal/pkg/errs"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

var ErrResourceHasBookings = errors.New("resource still has bookings")

type ResourceRepository interface {
	Create(ctx context.Context, res *resource.Resource) error
	Update(ctx context.Context, res *resource.Resource) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*readmodel.ResourceRM, error)
	List(ctx context.Context, kind *resource.Kind) ([]*readmodel.ResourceRM, error)
}

type CreateResourceParams struct {
	Kind     resource.Kind
	Name     string
	Capacity int
	Status   resource.Status
}

type UpdateResourceParams struct {
	Name     *string
	Capacity *int
	Status   *resource.Status
}

type ResourceUseCase interface {
	CreateResource(ctx context.Context, params CreateResourceParams) (*readmodel.ResourceRM, error)
	UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*readmodel.ResourceRM, error)
	DeleteResource(ctx context.Context, id uuid.UUID) error
	GetResource(ctx context.Context, id uuid.UUID) (*readmodel.ResourceRM, error)
	ListResources(ctx context.Context, kind *resource.Kind) ([]*readmodel.ResourceRM, error)
}

type resourceUseCaseImpl struct {
	resourceRepo ResourceRepository
}

func NewResourceUseCase(resourceRepo ResourceRepository) ResourceUseCase {
	return &resourceUseCaseImpl{resourceRepo: resourceRepo}
}

func (u *resourceUseCaseImpl) CreateResource(ctx context.Context, params CreateResourceParams) (*readmodel.ResourceRM, error) {
	resourceEntity, err := resource.NewResource(params.Kind, params.Name, params.Capacity, params.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidationFailed)
	}

	if err := u.resourceRepo.Create(ctx, resourceEntity); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.resourceRepo.FindByID(ctx, resourceEntity.ID())
}

func (u *resourceUseCaseImpl) UpdateResource(ctx context.Context, id uuid.UUID, params UpdateResourceParams) (*readmodel.ResourceRM, error) {
	rm, err := u.GetResource(ctx, id)
	if err != nil {
		return nil, err
	}

	kind, err := resource.NewKind(rm.Kind)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	status, err := resource.NewStatus(rm.Status)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	resourceEntity := resource.ReconstructResource(
		rm.ID, kind, rm.Name, int(rm.Capacity), status, rm.CreatedAt, rm.UpdatedAt,
	)

	if params.Name != nil {
		if err := resourceEntity.Rename(*params.Name); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}
	if params.Capacity != nil {
		if err := resourceEntity.ChangeCapacity(*params.Capacity); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}
	if params.Status != nil {
		if err := resourceEntity.ChangeStatus(*params.Status); err != nil {
			return nil, errs.Mark(err, ErrDomainValidationFailed)
		}
	}

	if err := u.resourceRepo.Update(ctx, resourceEntity); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return u.resourceRepo.FindByID(ctx, id)
}

func (u *resourceUseCaseImpl) DeleteResource(ctx context.Context, id uuid.UUID) error {
	if err := u.resourceRepo.Delete(ctx, id); err != nil {
		switch {
		case infra.IsKind(err, infra.KindNotFound):
			return ErrResourceNotFound
		case infra.IsKind(err, infra.KindForeignKeyViolated):
			return ErrResourceHasBookings
		default:
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}

	return nil
}

func (u *resourceUseCaseImpl) GetResource(ctx context.Context, id uuid.UUID) (*readmodel.ResourceRM, error) {
	rm, err := u.resourceRepo.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}

	return rm, nil
}

func (u *resourceUseCaseImpl) ListResources(ctx context.Context, kind *resource.Kind) ([]*readmodel.ResourceRM, error) {
	resources, err := u.resourceRepo.List(ctx, kind)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list resources")
	}

	return resources, nil
}
