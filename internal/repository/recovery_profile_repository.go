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

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

const profileColumns = `id, user_id, procedure_type, COALESCE(procedure_types, '{}'),
	COALESCE(procedure_details, ''), age_range, COALESCE(gender, ''), activity_level,
	COALESCE(recovery_goals, '{}'), COALESCE(complicating_factors, '{}'),
	COALESCE(lifestyle_context, '{}'), COALESCE(time_since_surgery, ''), created_at, updated_at`

func (r *PostgresProfileRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (profile.RecoveryProfile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM recovery_profiles WHERE user_id = $1`,
		userID,
	)
	return scanProfile(row)
}

func (r *PostgresProfileRepository) Upsert(ctx context.Context, p profile.RecoveryProfile) (profile.RecoveryProfile, error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO recovery_profiles
		 (id, user_id, procedure_type, procedure_types, procedure_details, age_range, gender,
		  activity_level, recovery_goals, complicating_factors, lifestyle_context, time_since_surgery)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 ON CONFLICT (user_id) DO UPDATE SET
		   procedure_type = EXCLUDED.procedure_type,
		   procedure_types = EXCLUDED.procedure_types,
		   procedure_details = EXCLUDED.procedure_details,
		   age_range = EXCLUDED.age_range,
		   gender = EXCLUDED.gender,
		   activity_level = EXCLUDED.activity_level,
		   recovery_goals = EXCLUDED.recovery_goals,
		   complicating_factors = EXCLUDED.complicating_factors,
		   lifestyle_context = EXCLUDED.lifestyle_context,
		   time_since_surgery = EXCLUDED.time_since_surgery,
		   updated_at = now()`,
		p.ID, p.UserID, p.ProcedureType, p.ProcedureTypes, p.ProcedureDetails, p.AgeRange,
		p.Gender, p.ActivityLevel, p.RecoveryGoals, p.ComplicatingFactors, p.LifestyleContext,
		p.TimeSinceSurgery,
	)
	if err != nil {
		return profile.RecoveryProfile{}, err
	}

	return r.GetByUserID(ctx, p.UserID)
}

func scanProfile(row database.Row) (profile.RecoveryProfile, error) {
	var p profile.RecoveryProfile
	err := row.Scan(
		&p.ID, &p.UserID, &p.ProcedureType, &p.ProcedureTypes, &p.ProcedureDetails,
		&p.AgeRange, &p.Gender, &p.ActivityLevel, &p.RecoveryGoals, &p.ComplicatingFactors,
		&p.LifestyleContext, &p.TimeSinceSurgery, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return profile.RecoveryProfile{}, profile.ErrNotFound
		}
		return profile.RecoveryProfile{}, err
	}
	return p, nil
}
