package dto

import (
	"time"

	"github.com/google/uuid"
)

type CallResponse struct {
	ID              uuid.UUID `json:"id"`
	GuideID         uuid.UUID `json:"guide_id"`
	SeekerID        uuid.UUID `json:"seeker_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Price           float64   `json:"price"`
	PlatformFee     float64   `json:"platform_fee"`
	Payout          float64   `json:"payout"`
	CreatedAt       time.Time `json:"created_at"`
}
