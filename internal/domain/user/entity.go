package user

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSeeker Role = "seeker"
	RoleGuide  Role = "guide"
)

func (r Role) Valid() bool {
	return r == RoleSeeker || r == RoleGuide
}

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	HourlyRate   float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
