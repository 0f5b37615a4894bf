package usecase

import (
	"context"
	"errors"
	"sort"
	"time"

	"recovery-connect/internal/domain/matching"
	"recovery-connect/internal/domain/profile"
	"recovery-connect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrGuideNotFound   = errors.New("guide not found")
	ErrProfileNotFound = errors.New("recovery profile not found")
)

const guideListingTTL = 5 * time.Minute

// ListingCache is the slice of the Redis cache the discovery flow needs;
// a nil cache disables caching.
type ListingCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	DeleteByPattern(ctx context.Context, pattern string) error
}

type RankedGuide struct {
	Guide repository.Guide
	Match matching.Result
}

type DiscoveryUsecase interface {
	ListGuides(ctx context.Context, seekerID uuid.UUID) ([]RankedGuide, error)
	MatchGuide(ctx context.Context, seekerID, guideID uuid.UUID) (matching.Result, error)
}

type Discovery struct {
	profiles profile.Repository
	guides   repository.GuideRepository
	cache    ListingCache
}

func NewDiscoveryUsecase(profiles profile.Repository, guides repository.GuideRepository, cache ListingCache) *Discovery {
	return &Discovery{profiles: profiles, guides: guides, cache: cache}
}

// ListGuides scores every guide against the seeker's profile and returns
// them sorted by score descending. The sort is stable so equal scores
// keep the repository's ordering.
func (u *Discovery) ListGuides(ctx context.Context, seekerID uuid.UUID) ([]RankedGuide, error) {
	if seekerID == uuid.Nil {
		return nil, ErrUnauthorized
	}

	key := GuideListingCacheKey(seekerID)
	if u.cache != nil {
		var cached []RankedGuide
		if ok, err := u.cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	seeker, err := u.profiles.GetByUserID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, ErrInternal
	}

	guides, err := u.guides.ListGuides(ctx)
	if err != nil {
		return nil, ErrInternal
	}

	ranked := make([]RankedGuide, 0, len(guides))
	seekerAttrs := seeker.MatchAttributes()
	for _, g := range guides {
		if g.UserID == seekerID {
			continue
		}
		ranked = append(ranked, RankedGuide{
			Guide: g,
			Match: matching.Score(seekerAttrs, g.Profile.MatchAttributes()),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Match.Score > ranked[j].Match.Score
	})

	if u.cache != nil {
		_ = u.cache.SetJSON(ctx, key, ranked, guideListingTTL)
	}

	return ranked, nil
}

func (u *Discovery) MatchGuide(ctx context.Context, seekerID, guideID uuid.UUID) (matching.Result, error) {
	if seekerID == uuid.Nil {
		return matching.Result{}, ErrUnauthorized
	}
	if guideID == uuid.Nil {
		return matching.Result{}, ErrGuideNotFound
	}

	seeker, err := u.profiles.GetByUserID(ctx, seekerID)
	if err != nil {
		if errors.Is(err, profile.ErrNotFound) {
			return matching.Result{}, ErrProfileNotFound
		}
		return matching.Result{}, ErrInternal
	}

	guide, err := u.guides.GetGuide(ctx, guideID)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return matching.Result{}, ErrGuideNotFound
		}
		return matching.Result{}, ErrInternal
	}

	return matching.Score(seeker.MatchAttributes(), guide.Profile.MatchAttributes()), nil
}

func GuideListingCacheKey(seekerID uuid.UUID) string {
	return "guides:list:" + seekerID.String()
}

// InvalidateGuideListings drops every cached ranking; profile and
// availability writes call this so stale scores never outlive a change.
func InvalidateGuideListings(ctx context.Context, cache ListingCache) {
	if cache == nil {
		return
	}
	_ = cache.DeleteByPattern(ctx, "guides:list:*")
}
