package repository

import (
	"context"
	"database/sql"
	"errors"

	"recovery-connect/internal/database"
	"recovery-connect/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrGuideNotFound = errors.New("guide not found")

// Guide is a listing row: the guide's account joined with their
// recovery profile.
type Guide struct {
	UserID     uuid.UUID
	Email      string
	HourlyRate float64
	Profile    profile.RecoveryProfile
}

type GuideRepository interface {
	ListGuides(ctx context.Context) ([]Guide, error)
	GetGuide(ctx context.Context, userID uuid.UUID) (Guide, error)
}

type PostgresGuideRepository struct {
	db database.DB
}

func NewPostgresGuideRepository(db database.DB) *PostgresGuideRepository {
	return &PostgresGuideRepository{db: db}
}

const guideColumns = `u.id, u.email, COALESCE(u.hourly_rate, 0),
	p.id, p.user_id, p.procedure_type, COALESCE(p.procedure_types, '{}'),
	COALESCE(p.procedure_details, ''), p.age_range, COALESCE(p.gender, ''), p.activity_level,
	COALESCE(p.recovery_goals, '{}'), COALESCE(p.complicating_factors, '{}'),
	COALESCE(p.lifestyle_context, '{}'), COALESCE(p.time_since_surgery, ''), p.created_at, p.updated_at`

func (r *PostgresGuideRepository) ListGuides(ctx context.Context) ([]Guide, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+guideColumns+`
		 FROM users u
		 JOIN recovery_profiles p ON p.user_id = u.id
		 WHERE u.role = 'guide'
		 ORDER BY u.created_at ASC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Guide, 0)
	for rows.Next() {
		g, err := scanGuide(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresGuideRepository) GetGuide(ctx context.Context, userID uuid.UUID) (Guide, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+guideColumns+`
		 FROM users u
		 JOIN recovery_profiles p ON p.user_id = u.id
		 WHERE u.role = 'guide' AND u.id = $1`,
		userID,
	)
	g, err := scanGuide(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return Guide{}, ErrGuideNotFound
		}
		return Guide{}, err
	}
	return g, nil
}

func scanGuide(row database.Row) (Guide, error) {
	var g Guide
	p := &g.Profile
	err := row.Scan(
		&g.UserID, &g.Email, &g.HourlyRate,
		&p.ID, &p.UserID, &p.ProcedureType, &p.ProcedureTypes, &p.ProcedureDetails,
		&p.AgeRange, &p.Gender, &p.ActivityLevel, &p.RecoveryGoals, &p.ComplicatingFactors,
		&p.LifestyleContext, &p.TimeSinceSurgery, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return Guide{}, err
	}
	return g, nil
}
