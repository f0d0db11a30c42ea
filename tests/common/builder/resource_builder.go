//go:build unit

package builder

import (
	"time"

	"reservehub/internal/domain/resource"
	"reservehub/internal/usecase/readmodel"

	"github.com/google/uuid"
)

type ResourceBuilder struct {
	ID        uuid.UUID
	Kind      resource.Kind
	Name      string
	Capacity  int
	Status    resource.Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewResourceBuilder() *ResourceBuilder {
	now := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	return &ResourceBuilder{
		ID:        uuid.New(),
		Kind:      resource.KindVehicle,
		Name:      "Van 1",
		Capacity:  7,
		Status:    resource.StatusAvailable,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (r *ResourceBuilder) BuildDomain() (*resource.Resource, error) {
	return resource.NewResource(r.Kind, r.Name, r.Capacity, r.Status)
}

func (r *ResourceBuilder) BuildReconstructed() *resource.Resource {
	return resource.ReconstructResource(r.ID, r.Kind, r.Name, r.Capacity, r.Status, r.CreatedAt, r.UpdatedAt)
}

func (r *ResourceBuilder) BuildRM() *readmodel.ResourceRM {
	return &readmodel.ResourceRM{
		ID:        r.ID,
		Kind:      r.Kind.String(),
		Name:      r.Name,
		Capacity:  int32(r.Capacity),
		Status:    r.Status.String(),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (r *ResourceBuilder) WithID(id uuid.UUID) *ResourceBuilder {
	r.ID = id
	return r
}

func (r *ResourceBuilder) WithKind(kind resource.Kind) *ResourceBuilder {
	r.Kind = kind
	return r
}

func (r *ResourceBuilder) WithName(name string) *ResourceBuilder {
	r.Name = name
	return r
}

func (r *ResourceBuilder) WithCapacity(capacity int) *ResourceBuilder {
	r.Capacity = capacity
	return r
}

func (r *ResourceBuilder) WithStatus(status resource.Status) *ResourceBuilder {
	r.Status = status
	return r
}

func (r *ResourceBuilder) AsRoom() *ResourceBuilder {
	r.Kind = resource.KindRoom
	r.Name = "Conference Room A"
	r.Capacity = 12
	return r
}
