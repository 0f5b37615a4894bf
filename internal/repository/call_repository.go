package repository

import (
	"context"
	"database/sql"
	"errors"

	"recovery-connect/internal/database"
	"recovery-connect/internal/domain/scheduling"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrCallNotFound      = errors.New("call not found")
	ErrSlotTaken         = errors.New("slot already taken")
	ErrCallStatusChanged = errors.New("call status changed concurrently")
)

type CallRepository interface {
	ActiveByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error)
	CreateIfFree(ctx context.Context, c scheduling.Call) (scheduling.Call, error)
	GetByID(ctx context.Context, id uuid.UUID) (scheduling.Call, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, from, to scheduling.CallStatus) error
	ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]scheduling.Call, error)
	ListByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error)
}

type PostgresCallRepository struct {
	db database.DB
}

func NewPostgresCallRepository(db database.DB) *PostgresCallRepository {
	return &PostgresCallRepository{db: db}
}

const callColumns = `id, guide_id, seeker_id, scheduled_at, duration_minutes, status,
	price, platform_fee, payout, created_at, updated_at`

func (r *PostgresCallRepository) ActiveByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error) {
	return r.list(ctx,
		`SELECT `+callColumns+` FROM calls
		 WHERE guide_id = $1 AND status IN ('REQUESTED', 'CONFIRMED')
		 ORDER BY scheduled_at ASC`,
		guideID,
	)
}

// CreateIfFree is the reserve-if-free write: the partial unique index on
// (guide_id, scheduled_at) over active calls rejects a concurrent winner
// with a unique violation, which surfaces here as ErrSlotTaken.
func (r *PostgresCallRepository) CreateIfFree(ctx context.Context, c scheduling.Call) (scheduling.Call, error) {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	_, err := r.db.Exec(ctx,
		`INSERT INTO calls (id, guide_id, seeker_id, scheduled_at, duration_minutes, status, price, platform_fee, payout)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, c.GuideID, c.SeekerID, c.ScheduledAt, c.DurationMinutes, string(c.Status),
		c.Price, c.PlatformFee, c.Payout,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return scheduling.Call{}, ErrSlotTaken
		}
		return scheduling.Call{}, err
	}

	return r.GetByID(ctx, c.ID)
}

func (r *PostgresCallRepository) GetByID(ctx context.Context, id uuid.UUID) (scheduling.Call, error) {
	row := r.db.QueryRow(ctx, `SELECT `+callColumns+` FROM calls WHERE id = $1`, id)
	return scanCall(row)
}

// UpdateStatus only moves the row if it still holds the expected status,
// so two concurrent transitions cannot both win.
func (r *PostgresCallRepository) UpdateStatus(ctx context.Context, id uuid.UUID, from, to scheduling.CallStatus) error {
	affected, err := r.db.Exec(ctx,
		`UPDATE calls SET status = $1, updated_at = now() WHERE id = $2 AND status = $3`,
		string(to), id, string(from),
	)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrCallStatusChanged
	}
	return nil
}

func (r *PostgresCallRepository) ListBySeeker(ctx context.Context, seekerID uuid.UUID) ([]scheduling.Call, error) {
	return r.list(ctx,
		`SELECT `+callColumns+` FROM calls WHERE seeker_id = $1 ORDER BY scheduled_at DESC`,
		seekerID,
	)
}

func (r *PostgresCallRepository) ListByGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error) {
	return r.list(ctx,
		`SELECT `+callColumns+` FROM calls WHERE guide_id = $1 ORDER BY scheduled_at DESC`,
		guideID,
	)
}

func (r *PostgresCallRepository) list(ctx context.Context, query string, args ...any) ([]scheduling.Call, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]scheduling.Call, 0)
	for rows.Next() {
		var c scheduling.Call
		var status string
		err := rows.Scan(
			&c.ID, &c.GuideID, &c.SeekerID, &c.ScheduledAt, &c.DurationMinutes, &status,
			&c.Price, &c.PlatformFee, &c.Payout, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		c.Status = scheduling.CallStatus(status)
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanCall(row database.Row) (scheduling.Call, error) {
	var c scheduling.Call
	var status string
	err := row.Scan(
		&c.ID, &c.GuideID, &c.SeekerID, &c.ScheduledAt, &c.DurationMinutes, &status,
		&c.Price, &c.PlatformFee, &c.Payout, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return scheduling.Call{}, ErrCallNotFound
		}
		return scheduling.Call{}, err
	}
	c.Status = scheduling.CallStatus(status)
	return c, nil
}
