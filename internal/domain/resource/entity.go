package resource

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyResourceName   = errors.New("resource name cannot be empty")
	ErrResourceNameTooLong = errors.New("resource name is too long (max 255 characters)")
	ErrInvalidKind         = errors.New("invalid resource kind")
	ErrInvalidStatus       = errors.New("invalid resource status")
	ErrInvalidCapacity     = errors.New("capacity must be positive")
)

const MaxResourceNameLength = 255

// Kind distinguishes the two bookable resource variants. There is no
// behavioral polymorphism between them; the tag plus a kind-specific
// booking payload is all the engine needs.
type Kind string

const (
	KindVehicle Kind = "vehicle"
	KindRoom    Kind = "room"
)

func NewKind(value string) (Kind, error) {
	kind := Kind(value)
	if !kind.IsValid() {
		return "", ErrInvalidKind
	}
	return kind, nil
}

func (k Kind) String() string {
	return string(k)
}

func (k Kind) IsValid() bool {
	switch k {
	case KindVehicle, KindRoom:
		return true
	default:
		return false
	}
}

// Status is informational only. Availability for booking purposes is
// decided by the reservation conflict check, never by this field.
type Status string

const (
	StatusAvailable   Status = "available"
	StatusInUse       Status = "in_use"
	StatusMaintenance Status = "maintenance"
)

func NewStatus(value string) (Status, error) {
	status := Status(value)
	if !status.IsValid() {
		return "", ErrInvalidStatus
	}
	return status, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusAvailable, StatusInUse, StatusMaintenance:
		return true
	default:
		return false
	}
}

type Resource struct {
	id        uuid.UUID
	kind      Kind
	name      string
	capacity  int
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

func NewResource(kind Kind, name string, capacity int, status Status) (*Resource, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if !kind.IsValid() {
		return nil, ErrInvalidKind
	}
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}

	return &Resource{
		id:       uuid.New(),
		kind:     kind,
		name:     strings.TrimSpace(name),
		capacity: capacity,
		status:   status,
	}, nil
}

func ReconstructResource(id uuid.UUID, kind Kind, name string, capacity int, status Status, createdAt, updatedAt time.Time) *Resource {
	return &Resource{
		id:        id,
		kind:      kind,
		name:      name,
		capacity:  capacity,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (r *Resource) Rename(name string) error {
	if err := validateName(name); err != nil {
		return err
	}
	r.name = strings.TrimSpace(name)
	return nil
}

func (r *Resource) ChangeCapacity(capacity int) error {
	if capacity <= 0 {
		return ErrInvalidCapacity
	}
	r.capacity = capacity
	return nil
}

func (r *Resource) ChangeStatus(status Status) error {
	if !status.IsValid() {
		return ErrInvalidStatus
	}
	r.status = status
	return nil
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyResourceName
	}
	if len([]rune(name)) > MaxResourceNameLength {
		return ErrResourceNameTooLong
	}
	return nil
}

func (r *Resource) ID() uuid.UUID        { return r.id }
func (r *Resource) Kind() Kind           { return r.kind }
func (r *Resource) Name() string         { return r.name }
func (r *Resource) Capacity() int        { return r.capacity }
func (r *Resource) Status() Status       { return r.status }
func (r *Resource) CreatedAt() time.Time { return r.createdAt }
func (r *Resource) UpdatedAt() time.Time { return r.updatedAt }
