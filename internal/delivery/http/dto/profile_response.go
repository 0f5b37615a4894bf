package dto

import (
	"time"

	"github.com/google/uuid"
)

type RecoveryProfileResponse struct {
	ID                  uuid.UUID `json:"id"`
	UserID              uuid.UUID `json:"user_id"`
	ProcedureType       string    `json:"procedure_type"`
	ProcedureTypes      []string  `json:"procedure_types"`
	ProcedureDetails    string    `json:"procedure_details,omitempty"`
	AgeRange            string    `json:"age_range"`
	Gender              string    `json:"gender,omitempty"`
	ActivityLevel       string    `json:"activity_level"`
	RecoveryGoals       []string  `json:"recovery_goals"`
	ComplicatingFactors []string  `json:"complicating_factors"`
	LifestyleContext    []string  `json:"lifestyle_context"`
	TimeSinceSurgery    string    `json:"time_since_surgery,omitempty"`
	UpdatedAt           time.Time `json:"updated_at"`
}
