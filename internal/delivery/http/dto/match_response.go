package dto

import "github.com/google/uuid"

type MatchBreakdownItem struct {
	Attribute string  `json:"attribute"`
	Matched   bool    `json:"matched"`
	Weight    float64 `json:"weight"`
}

type MatchResultResponse struct {
	Score     int                  `json:"score"`
	Breakdown []MatchBreakdownItem `json:"breakdown"`
}

type GuideListItemResponse struct {
	GuideID        uuid.UUID `json:"guide_id"`
	HourlyRate     float64   `json:"hourly_rate"`
	ProcedureType  string    `json:"procedure_type"`
	ProcedureTypes []string  `json:"procedure_types"`
	AgeRange       string    `json:"age_range"`
	Gender         string    `json:"gender,omitempty"`
	ActivityLevel  string    `json:"activity_level"`

	MatchScore int                  `json:"match_score"`
	Breakdown  []MatchBreakdownItem `json:"breakdown"`
}
