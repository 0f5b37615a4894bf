package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"recovery-connect/internal/domain/scheduling"
	"recovery-connect/internal/repository"

	"github.com/google/uuid"
)

type mockGuideRepo struct {
	guides []repository.Guide
	err    error
}

func (m mockGuideRepo) ListGuides(context.Context) ([]repository.Guide, error) {
	return m.guides, m.err
}

func (m mockGuideRepo) GetGuide(_ context.Context, userID uuid.UUID) (repository.Guide, error) {
	if m.err != nil {
		return repository.Guide{}, m.err
	}
	for _, g := range m.guides {
		if g.UserID == userID {
			return g, nil
		}
	}
	return repository.Guide{}, repository.ErrGuideNotFound
}

type mockAvailabilityRepo struct {
	windows []scheduling.Window
	blocked []scheduling.BlockedDate

	createdWindows []scheduling.Window
	createdBlocked []scheduling.BlockedDate
	createErr      error
}

func (m *mockAvailabilityRepo) WindowsByGuide(context.Context, uuid.UUID) ([]scheduling.Window, error) {
	return m.windows, nil
}

func (m *mockAvailabilityRepo) CreateWindow(_ context.Context, w scheduling.Window) (scheduling.Window, error) {
	if m.createErr != nil {
		return scheduling.Window{}, m.createErr
	}
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	m.createdWindows = append(m.createdWindows, w)
	return w, nil
}

func (m *mockAvailabilityRepo) DeleteWindow(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

func (m *mockAvailabilityRepo) BlockedDatesByGuide(context.Context, uuid.UUID) ([]scheduling.BlockedDate, error) {
	return m.blocked, nil
}

func (m *mockAvailabilityRepo) CreateBlockedDate(_ context.Context, b scheduling.BlockedDate) (scheduling.BlockedDate, error) {
	if m.createErr != nil {
		return scheduling.BlockedDate{}, m.createErr
	}
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	m.createdBlocked = append(m.createdBlocked, b)
	return b, nil
}

func (m *mockAvailabilityRepo) DeleteBlockedDate(context.Context, uuid.UUID, uuid.UUID) error {
	return nil
}

type mockCallRepo struct {
	active    []scheduling.Call
	byID      map[uuid.UUID]scheduling.Call
	createErr error

	created *scheduling.Call
}

func (m *mockCallRepo) ActiveByGuide(context.Context, uuid.UUID) ([]scheduling.Call, error) {
	return m.active, nil
}

func (m *mockCallRepo) CreateIfFree(_ context.Context, c scheduling.Call) (scheduling.Call, error) {
	if m.createErr != nil {
		return scheduling.Call{}, m.createErr
	}
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	m.created = &c
	return c, nil
}

func (m *mockCallRepo) GetByID(_ context.Context, id uuid.UUID) (scheduling.Call, error) {
	if c, ok := m.byID[id]; ok {
		return c, nil
	}
	return scheduling.Call{}, repository.ErrCallNotFound
}

func (m *mockCallRepo) UpdateStatus(_ context.Context, id uuid.UUID, from, to scheduling.CallStatus) error {
	c, ok := m.byID[id]
	if !ok || c.Status != from {
		return repository.ErrCallStatusChanged
	}
	c.Status = to
	m.byID[id] = c
	return nil
}

func (m *mockCallRepo) ListBySeeker(context.Context, uuid.UUID) ([]scheduling.Call, error) {
	return nil, nil
}

func (m *mockCallRepo) ListByGuide(context.Context, uuid.UUID) ([]scheduling.Call, error) {
	return nil, nil
}

var bookingTestNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newBookingFixture(calls *mockCallRepo, avail *mockAvailabilityRepo, guideID uuid.UUID) *Booking {
	uc := NewBookingUsecase(
		mockGuideRepo{guides: []repository.Guide{{UserID: guideID, HourlyRate: 60}}},
		avail,
		calls,
		25,
	)
	uc.now = func() time.Time { return bookingTestNow }
	return uc
}

func TestCreateBookingPricesAndRequests(t *testing.T) {
	guideID := uuid.New()
	calls := &mockCallRepo{}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	got, err := uc.CreateBooking(context.Background(), CreateBookingInput{
		SeekerID:        uuid.New(),
		GuideID:         guideID,
		ScheduledAt:     bookingTestNow.Add(48 * time.Hour),
		DurationMinutes: 30,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != scheduling.StatusRequested {
		t.Fatalf("expected REQUESTED, got %s", got.Status)
	}
	if got.Price != 30 || got.PlatformFee != 7.5 || got.Payout != 22.5 {
		t.Fatalf("unexpected pricing: %+v", got)
	}
	if calls.created == nil {
		t.Fatalf("expected call to be persisted")
	}
}

func TestCreateBookingImmediateConfirm(t *testing.T) {
	guideID := uuid.New()
	uc := newBookingFixture(&mockCallRepo{}, &mockAvailabilityRepo{}, guideID)

	got, err := uc.CreateBooking(context.Background(), CreateBookingInput{
		SeekerID:           uuid.New(),
		GuideID:            guideID,
		ScheduledAt:        bookingTestNow.Add(48 * time.Hour),
		DurationMinutes:    60,
		ConfirmImmediately: true,
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != scheduling.StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", got.Status)
	}
	if got.Price != 60 || got.PlatformFee != 15 || got.Payout != 45 {
		t.Fatalf("unexpected pricing: %+v", got)
	}
}

func TestCreateBookingValidationFailurePropagates(t *testing.T) {
	guideID := uuid.New()
	calls := &mockCallRepo{}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	_, err := uc.CreateBooking(context.Background(), CreateBookingInput{
		SeekerID:        uuid.New(),
		GuideID:         guideID,
		ScheduledAt:     bookingTestNow.Add(-time.Hour),
		DurationMinutes: 30,
	})
	if !errors.Is(err, scheduling.ErrPastDate) {
		t.Fatalf("expected ErrPastDate, got %v", err)
	}
	if calls.created != nil {
		t.Fatalf("no call may be persisted on validation failure")
	}
}

func TestCreateBookingConflictAgainstActiveCall(t *testing.T) {
	guideID := uuid.New()
	slot := bookingTestNow.Add(48 * time.Hour)
	calls := &mockCallRepo{active: []scheduling.Call{{
		ScheduledAt:     slot,
		DurationMinutes: 30,
		Status:          scheduling.StatusConfirmed,
	}}}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	_, err := uc.CreateBooking(context.Background(), CreateBookingInput{
		SeekerID:        uuid.New(),
		GuideID:         guideID,
		ScheduledAt:     slot.Add(15 * time.Minute),
		DurationMinutes: 30,
	})
	if !errors.Is(err, scheduling.ErrBookingConflict) {
		t.Fatalf("expected ErrBookingConflict, got %v", err)
	}
}

func TestCreateBookingRaceLoserMapsToConflict(t *testing.T) {
	guideID := uuid.New()
	calls := &mockCallRepo{createErr: repository.ErrSlotTaken}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	_, err := uc.CreateBooking(context.Background(), CreateBookingInput{
		SeekerID:        uuid.New(),
		GuideID:         guideID,
		ScheduledAt:     bookingTestNow.Add(48 * time.Hour),
		DurationMinutes: 30,
	})
	if !errors.Is(err, scheduling.ErrBookingConflict) {
		t.Fatalf("expected unique-index loser to surface as ErrBookingConflict, got %v", err)
	}
}

func TestConfirmRequiresOwningGuide(t *testing.T) {
	guideID := uuid.New()
	callID := uuid.New()
	calls := &mockCallRepo{byID: map[uuid.UUID]scheduling.Call{callID: {
		ID:      callID,
		GuideID: guideID,
		Status:  scheduling.StatusRequested,
	}}}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	if _, err := uc.Confirm(context.Background(), uuid.New(), callID); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for foreign guide, got %v", err)
	}

	got, err := uc.Confirm(context.Background(), guideID, callID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != scheduling.StatusConfirmed {
		t.Fatalf("expected CONFIRMED, got %s", got.Status)
	}
}

func TestTerminalCallCannotTransition(t *testing.T) {
	guideID := uuid.New()
	callID := uuid.New()
	calls := &mockCallRepo{byID: map[uuid.UUID]scheduling.Call{callID: {
		ID:      callID,
		GuideID: guideID,
		Status:  scheduling.StatusCompleted,
	}}}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	if _, err := uc.Cancel(context.Background(), guideID, callID); !errors.Is(err, scheduling.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestCancelAllowedForSeeker(t *testing.T) {
	guideID := uuid.New()
	seekerID := uuid.New()
	callID := uuid.New()
	calls := &mockCallRepo{byID: map[uuid.UUID]scheduling.Call{callID: {
		ID:       callID,
		GuideID:  guideID,
		SeekerID: seekerID,
		Status:   scheduling.StatusConfirmed,
	}}}
	uc := newBookingFixture(calls, &mockAvailabilityRepo{}, guideID)

	got, err := uc.Cancel(context.Background(), seekerID, callID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if got.Status != scheduling.StatusCancelled {
		t.Fatalf("expected CANCELLED, got %s", got.Status)
	}
}
