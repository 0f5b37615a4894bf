package dto

import "github.com/google/uuid"

type AvailabilityWindowResponse struct {
	ID        uuid.UUID `json:"id"`
	DayOfWeek int       `json:"day_of_week"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Timezone  string    `json:"timezone"`
}

type BlockedDateResponse struct {
	ID   uuid.UUID `json:"id"`
	Date string    `json:"date"`
}
