package usecase

import (
	"context"
	"errors"
	"time"

	"recovery-connect/internal/domain/scheduling"
	"recovery-connect/internal/repository"

	"github.com/google/uuid"
)

var ErrBlockedDateInPast = errors.New("blocked date must be in the future")

type AvailabilityUsecase interface {
	ListWindows(ctx context.Context, guideID uuid.UUID) ([]scheduling.Window, error)
	CreateWindow(ctx context.Context, w scheduling.Window) (scheduling.Window, error)
	DeleteWindow(ctx context.Context, guideID, id uuid.UUID) error

	ListBlockedDates(ctx context.Context, guideID uuid.UUID) ([]scheduling.BlockedDate, error)
	CreateBlockedDate(ctx context.Context, guideID uuid.UUID, date time.Time) (scheduling.BlockedDate, error)
	DeleteBlockedDate(ctx context.Context, guideID, id uuid.UUID) error
}

type Availability struct {
	repo  repository.AvailabilityRepository
	cache ListingCache
	now   func() time.Time
}

func NewAvailabilityUsecase(repo repository.AvailabilityRepository, cache ListingCache) *Availability {
	return &Availability{repo: repo, cache: cache, now: time.Now}
}

func (u *Availability) ListWindows(ctx context.Context, guideID uuid.UUID) ([]scheduling.Window, error) {
	if guideID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.repo.WindowsByGuide(ctx, guideID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Availability) CreateWindow(ctx context.Context, w scheduling.Window) (scheduling.Window, error) {
	if w.GuideID == uuid.Nil {
		return scheduling.Window{}, ErrUnauthorized
	}

	existing, err := u.repo.WindowsByGuide(ctx, w.GuideID)
	if err != nil {
		return scheduling.Window{}, ErrInternal
	}

	if err := scheduling.ValidateNewWindow(existing, w); err != nil {
		return scheduling.Window{}, err
	}

	created, err := u.repo.CreateWindow(ctx, w)
	if err != nil {
		return scheduling.Window{}, ErrInternal
	}

	InvalidateGuideListings(ctx, u.cache)

	return created, nil
}

func (u *Availability) DeleteWindow(ctx context.Context, guideID, id uuid.UUID) error {
	if guideID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.repo.DeleteWindow(ctx, guideID, id); err != nil {
		if errors.Is(err, repository.ErrWindowNotFound) {
			return err
		}
		return ErrInternal
	}
	InvalidateGuideListings(ctx, u.cache)
	return nil
}

func (u *Availability) ListBlockedDates(ctx context.Context, guideID uuid.UUID) ([]scheduling.BlockedDate, error) {
	if guideID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.repo.BlockedDatesByGuide(ctx, guideID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Availability) CreateBlockedDate(ctx context.Context, guideID uuid.UUID, date time.Time) (scheduling.BlockedDate, error) {
	if guideID == uuid.Nil {
		return scheduling.BlockedDate{}, ErrUnauthorized
	}

	day := truncateToDay(date)
	if !day.After(truncateToDay(u.now())) {
		return scheduling.BlockedDate{}, ErrBlockedDateInPast
	}

	created, err := u.repo.CreateBlockedDate(ctx, scheduling.BlockedDate{GuideID: guideID, Date: day})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateBlockedDate) {
			return scheduling.BlockedDate{}, err
		}
		return scheduling.BlockedDate{}, ErrInternal
	}
	return created, nil
}

func (u *Availability) DeleteBlockedDate(ctx context.Context, guideID, id uuid.UUID) error {
	if guideID == uuid.Nil {
		return ErrUnauthorized
	}
	if err := u.repo.DeleteBlockedDate(ctx, guideID, id); err != nil {
		if errors.Is(err, repository.ErrBlockedDateNotFound) {
			return err
		}
		return ErrInternal
	}
	return nil
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
