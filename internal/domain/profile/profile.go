package profile

import (
	"context"
	"errors"
	"time"

	"recovery-connect/internal/domain/matching"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("recovery profile not found")

// RecoveryProfile describes a user's procedure and recovery context.
// Guides may support several procedures; a seeker has one active
// ProcedureType at a time.
type RecoveryProfile struct {
	ID                  uuid.UUID
	UserID              uuid.UUID
	ProcedureType       string
	ProcedureTypes      []string
	ProcedureDetails    string
	AgeRange            string
	Gender              string
	ActivityLevel       string
	RecoveryGoals       []string
	ComplicatingFactors []string
	LifestyleContext    []string
	TimeSinceSurgery    string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func (p RecoveryProfile) MatchAttributes() matching.Profile {
	return matching.Profile{
		ProcedureType:       p.ProcedureType,
		ProcedureTypes:      p.ProcedureTypes,
		ProcedureDetails:    p.ProcedureDetails,
		AgeRange:            p.AgeRange,
		Gender:              p.Gender,
		ActivityLevel:       p.ActivityLevel,
		RecoveryGoals:       p.RecoveryGoals,
		ComplicatingFactors: p.ComplicatingFactors,
		LifestyleContext:    p.LifestyleContext,
	}
}

type Repository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (RecoveryProfile, error)
	Upsert(ctx context.Context, p RecoveryProfile) (RecoveryProfile, error)
}
