package usecase

import (
	"context"
	"errors"
	"testing"

	"recovery-connect/internal/domain/profile"
	"recovery-connect/internal/repository"

	"github.com/google/uuid"
)

type mockProfileRepo struct {
	profiles map[uuid.UUID]profile.RecoveryProfile
	upserted *profile.RecoveryProfile
	err      error
}

func (m *mockProfileRepo) GetByUserID(_ context.Context, userID uuid.UUID) (profile.RecoveryProfile, error) {
	if m.err != nil {
		return profile.RecoveryProfile{}, m.err
	}
	if p, ok := m.profiles[userID]; ok {
		return p, nil
	}
	return profile.RecoveryProfile{}, profile.ErrNotFound
}

func (m *mockProfileRepo) Upsert(_ context.Context, p profile.RecoveryProfile) (profile.RecoveryProfile, error) {
	if m.err != nil {
		return profile.RecoveryProfile{}, m.err
	}
	m.upserted = &p
	return p, nil
}

func seekerProfile(userID uuid.UUID) profile.RecoveryProfile {
	return profile.RecoveryProfile{
		UserID:        userID,
		ProcedureType: "ACL Reconstruction",
		AgeRange:      "30s",
		ActivityLevel: "RECREATIONAL",
	}
}

func guideRow(procedure, ageRange string) repository.Guide {
	id := uuid.New()
	return repository.Guide{
		UserID:     id,
		HourlyRate: 60,
		Profile: profile.RecoveryProfile{
			UserID:         id,
			ProcedureType:  procedure,
			ProcedureTypes: []string{procedure},
			AgeRange:       ageRange,
			ActivityLevel:  "RECREATIONAL",
		},
	}
}

func TestListGuidesSortedByScoreDesc(t *testing.T) {
	seekerID := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]profile.RecoveryProfile{
		seekerID: seekerProfile(seekerID),
	}}

	weak := guideRow("Hip Replacement", "70s+")
	strong := guideRow("ACL Reconstruction", "30s")
	middling := guideRow("ACL Reconstruction", "50s")

	uc := NewDiscoveryUsecase(profiles, mockGuideRepo{guides: []repository.Guide{weak, strong, middling}}, nil)

	ranked, err := uc.ListGuides(context.Background(), seekerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 3 {
		t.Fatalf("expected 3 guides, got %d", len(ranked))
	}
	for i := 1; i < len(ranked); i++ {
		if ranked[i-1].Match.Score < ranked[i].Match.Score {
			t.Fatalf("guides not sorted by score descending: %d < %d at %d",
				ranked[i-1].Match.Score, ranked[i].Match.Score, i)
		}
	}
	if ranked[0].Guide.UserID != strong.UserID {
		t.Fatalf("expected the full match to rank first")
	}
}

func TestListGuidesExcludesCaller(t *testing.T) {
	seekerID := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]profile.RecoveryProfile{
		seekerID: seekerProfile(seekerID),
	}}

	self := guideRow("ACL Reconstruction", "30s")
	self.UserID = seekerID
	other := guideRow("ACL Reconstruction", "30s")

	uc := NewDiscoveryUsecase(profiles, mockGuideRepo{guides: []repository.Guide{self, other}}, nil)

	ranked, err := uc.ListGuides(context.Background(), seekerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(ranked) != 1 || ranked[0].Guide.UserID != other.UserID {
		t.Fatalf("expected caller's own listing to be excluded")
	}
}

func TestListGuidesWithoutProfile(t *testing.T) {
	uc := NewDiscoveryUsecase(&mockProfileRepo{}, mockGuideRepo{}, nil)

	_, err := uc.ListGuides(context.Background(), uuid.New())
	if !errors.Is(err, ErrProfileNotFound) {
		t.Fatalf("expected ErrProfileNotFound, got %v", err)
	}
}

func TestMatchGuideUnknownGuide(t *testing.T) {
	seekerID := uuid.New()
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]profile.RecoveryProfile{
		seekerID: seekerProfile(seekerID),
	}}
	uc := NewDiscoveryUsecase(profiles, mockGuideRepo{}, nil)

	_, err := uc.MatchGuide(context.Background(), seekerID, uuid.New())
	if !errors.Is(err, ErrGuideNotFound) {
		t.Fatalf("expected ErrGuideNotFound, got %v", err)
	}
}

func TestMatchGuideScoresPair(t *testing.T) {
	seekerID := uuid.New()
	guide := guideRow("ACL Reconstruction", "30s")
	profiles := &mockProfileRepo{profiles: map[uuid.UUID]profile.RecoveryProfile{
		seekerID: seekerProfile(seekerID),
	}}
	uc := NewDiscoveryUsecase(profiles, mockGuideRepo{guides: []repository.Guide{guide}}, nil)

	res, err := uc.MatchGuide(context.Background(), seekerID, guide.UserID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if res.Score < 0 || res.Score > 100 {
		t.Fatalf("score out of bounds: %d", res.Score)
	}
	if len(res.Breakdown) != 8 {
		t.Fatalf("expected 8 breakdown attributes, got %d", len(res.Breakdown))
	}
}
