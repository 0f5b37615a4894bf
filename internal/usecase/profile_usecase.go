package usecase

import (
	"context"
	"errors"
	"strings"

	"recovery-connect/internal/domain/profile"

	"github.com/google/uuid"
)

type ProfileUsecase interface {
	Get(ctx context.Context, userID uuid.UUID) (profile.RecoveryProfile, error)
	Upsert(ctx context.Context, userID uuid.UUID, p profile.RecoveryProfile) (profile.RecoveryProfile, error)
}

type Profiles struct {
	repo  profile.Repository
	cache ListingCache
}

func NewProfileUsecase(repo profile.Repository, cache ListingCache) *Profiles {
	return &Profiles{repo: repo, cache: cache}
}

func (u *Profiles) Get(ctx context.Context, userID uuid.UUID) (profile.RecoveryProfile, error) {
	if userID == uuid.Nil {
		return profile.RecoveryProfile{}, ErrUnauthorized
	}

	p, err := u.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return profile.RecoveryProfile{}, ErrProfileNotFound
		}
		return profile.RecoveryProfile{}, ErrInternal
	}
	return p, nil
}

func (u *Profiles) Upsert(ctx context.Context, userID uuid.UUID, p profile.RecoveryProfile) (profile.RecoveryProfile, error) {
	if userID == uuid.Nil {
		return profile.RecoveryProfile{}, ErrUnauthorized
	}

	p.UserID = userID
	p.ProcedureType = strings.TrimSpace(p.ProcedureType)
	if p.ProcedureType == "" || strings.TrimSpace(p.AgeRange) == "" || strings.TrimSpace(p.ActivityLevel) == "" {
		return profile.RecoveryProfile{}, ErrInvalidInput
	}

	// A guide's active procedure is always among the procedures they
	// support.
	if len(p.ProcedureTypes) > 0 && !containsFold(p.ProcedureTypes, p.ProcedureType) {
		p.ProcedureTypes = append(p.ProcedureTypes, p.ProcedureType)
	}

	saved, err := u.repo.Upsert(ctx, p)
	if err != nil {
		return profile.RecoveryProfile{}, ErrInternal
	}

	InvalidateGuideListings(ctx, u.cache)

	return saved, nil
}

func containsFold(items []string, target string) bool {
	for _, it := range items {
		if strings.EqualFold(it, target) {
			return true
		}
	}
	return false
}
