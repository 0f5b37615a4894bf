package dto

import (
	"time"

	"github.com/google/uuid"
)

type UserResponse struct {
	ID         uuid.UUID `json:"id"`
	Email      string    `json:"email"`
	Role       string    `json:"role"`
	HourlyRate float64   `json:"hourly_rate,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
