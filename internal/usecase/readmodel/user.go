package readmodel

import (
	"time"

	"github.com/google/uuid"
)

type UserRM struct {
	ID           uuid.UUID
	Email        string
	Name         string
	Role         string
	PasswordHash string
	CreatedAt    time.Time
}
