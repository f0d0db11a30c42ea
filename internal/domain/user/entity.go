package user

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")
	ErrInvalidRole  = errors.New("invalid role")
	ErrEmptyName    = errors.New("user name cannot be empty")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

func NewRole(value string) (Role, error) {
	role := Role(value)
	if !role.IsValid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsValid() bool {
	switch r {
	case RoleMember, RoleAdmin:
		return true
	default:
		return false
	}
}

type Email struct {
	value string
}

func NewEmail(value string) (Email, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" || !emailPattern.MatchString(trimmed) {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: trimmed}, nil
}

func (e Email) String() string {
	return e.value
}

type User struct {
	id           uuid.UUID
	email        Email
	name         string
	role         Role
	passwordHash string
	createdAt    time.Time
}

func NewUser(email Email, name string, role Role, passwordHash string) (*User, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	return &User{
		id:           uuid.New(),
		email:        email,
		name:         strings.TrimSpace(name),
		role:         role,
		passwordHash: passwordHash,
	}, nil
}

func ReconstructUser(id uuid.UUID, email Email, name string, role Role, passwordHash string, createdAt time.Time) *User {
	return &User{
		id:           id,
		email:        email,
		name:         name,
		role:         role,
		passwordHash: passwordHash,
		createdAt:    createdAt,
	}
}

func (u *User) IsAdmin() bool {
	return u.role == RoleAdmin
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Email() Email         { return u.email }
func (u *User) Name() string         { return u.name }
func (u *User) Role() Role           { return u.role }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) CreatedAt() time.Time { return u.createdAt }
