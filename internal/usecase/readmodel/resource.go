package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type ResourceRM struct {
	ID        uuid.UUID
	Kind      string
	Name      string
	Capacity  int32
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}
