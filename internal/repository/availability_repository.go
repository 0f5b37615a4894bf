package repository

import (
	"context"
	"errors"

	"recovery-connect/internal/database"
	"recovery-connect/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrWindowNotFound       = errors.New("availability window not found")
	ErrBlockedDateNotFound  = errors.New("blocked date not found")
	ErrDuplicateBlockedDate = errors.New("date already blocked")
)

type AvailabilityRepository interface {
	WindowsByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Window, error)
	CreateWindow(ctx context.Context, w scheduling.Window) (scheduling.Window, error)
	DeleteWindow(ctx context.Context, guideID, id uuid.UUID) error

	BlockedDatesByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, b scheduling.BlockedDate) (scheduling.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, guideID, id uuid.UUID) error
}

type PostgresAvailabilityRepository struct {
	db database.DB
}

func NewPostgresAvailabilityRepository(db database.DB) *PostgresAvailabilityRepository {
	return &PostgresAvailabilityRepository{db: db}
}

func (r *PostgresAvailabilityRepository) WindowsByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Window, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, guide_id, day_of_week, start_time, end_time, timezone
		 FROM availability_windows
		 WHERE guide_id = $1
		 ORDER BY day_of_week ASC, start_time ASC`,
		guideID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scheduling.Window, 0)
	for rows.Next() {
		var w scheduling.Window
		if err := rows.Scan(&w.ID, &w.GuideID, &w.DayOfWeek, &w.StartTime, &w.EndTime, &w.Timezone); err != nil {
			return nil, err
		}
		out = append(out, w)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAvailabilityRepository) CreateWindow(ctx context.Context, w scheduling.Window) (scheduling.Window, error) {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	if w.Timezone == "" {
		w.Timezone = scheduling.DefaultTimezone
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO availability_windows (id, guide_id, day_of_week, start_time, end_time, timezone)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		w.ID, w.GuideID, w.DayOfWeek, w.StartTime, w.EndTime, w.Timezone,
	)
	if err != nil {
		return scheduling.Window{}, err
	}
	return w, nil
}

func (r *PostgresAvailabilityRepository) DeleteWindow(ctx context.Context, guideID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM availability_windows WHERE id = $1 AND guide_id = $2`,
		id, guideID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrWindowNotFound
	}
	return nil
}

func (r *PostgresAvailabilityRepository) BlockedDatesByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.BlockedDate, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, guide_id, blocked_on
		 FROM blocked_dates
		 WHERE guide_id = $1
		 ORDER BY blocked_on ASC`,
		guideID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scheduling.BlockedDate, 0)
	for rows.Next() {
		var b scheduling.BlockedDate
		if err := rows.Scan(&b.ID, &b.GuideID, &b.Date); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresAvailabilityRepository) CreateBlockedDate(ctx context.Context, b scheduling.BlockedDate) (scheduling.BlockedDate, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO blocked_dates (id, guide_id, blocked_on) VALUES ($1, $2, $3)`,
		b.ID, b.GuideID, b.Date,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return scheduling.BlockedDate{}, ErrDuplicateBlockedDate
		}
		return scheduling.BlockedDate{}, err
	}
	return b, nil
}

func (r *PostgresAvailabilityRepository) DeleteBlockedDate(ctx context.Context, guideID, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx,
		`DELETE FROM blocked_dates WHERE id = $1 AND guide_id = $2`,
		id, guideID,
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrBlockedDateNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
