package usecase

import (
	"context"
	"errors"
	"time"

	"recovery-connect/internal/domain/scheduling"
	"recovery-connect/internal/repository"

	"github.com/google/uuid"
)

var ErrCallNotFound = errors.New("call not found")

type CreateBookingInput struct {
	SeekerID        uuid.UUID
	GuideID         uuid.UUID
	ScheduledAt     time.Time
	DurationMinutes int

	// ConfirmImmediately creates the call directly CONFIRMED, used when
	// the checkout collaborator has already settled payment.
	ConfirmImmediately bool
}

type BookingUsecase interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (scheduling.Call, error)
	Confirm(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error)
	Decline(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error)
	Cancel(ctx context.Context, userID, callID uuid.UUID) (scheduling.Call, error)
	Complete(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error)
	ListForSeeker(ctx context.Context, seekerID uuid.UUID) ([]scheduling.Call, error)
	ListForGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error)
}

type Booking struct {
	guides       repository.GuideRepository
	availability repository.AvailabilityRepository
	calls        repository.CallRepository

	feePercent float64
	now        func() time.Time
}

func NewBookingUsecase(guides repository.GuideRepository, availability repository.AvailabilityRepository, calls repository.CallRepository, feePercent float64) *Booking {
	return &Booking{
		guides:       guides,
		availability: availability,
		calls:        calls,
		feePercent:   feePercent,
		now:          time.Now,
	}
}

// CreateBooking runs the full validation sequence and then performs the
// reserve-if-free insert. A unique-index loss in the race window surfaces
// as the same conflict error the read-path check produces.
func (u *Booking) CreateBooking(ctx context.Context, in CreateBookingInput) (scheduling.Call, error) {
	if in.SeekerID == uuid.Nil {
		return scheduling.Call{}, ErrUnauthorized
	}
	if in.GuideID == uuid.Nil || in.GuideID == in.SeekerID {
		return scheduling.Call{}, ErrGuideNotFound
	}

	guide, err := u.guides.GetGuide(ctx, in.GuideID)
	if err != nil {
		if errors.Is(err, repository.ErrGuideNotFound) {
			return scheduling.Call{}, ErrGuideNotFound
		}
		return scheduling.Call{}, ErrInternal
	}

	windows, err := u.availability.WindowsByGuide(ctx, in.GuideID)
	if err != nil {
		return scheduling.Call{}, ErrInternal
	}
	blocked, err := u.availability.BlockedDatesByGuide(ctx, in.GuideID)
	if err != nil {
		return scheduling.Call{}, ErrInternal
	}
	existing, err := u.calls.ActiveByGuide(ctx, in.GuideID)
	if err != nil {
		return scheduling.Call{}, ErrInternal
	}

	if err := scheduling.ValidateBooking(u.now(), in.ScheduledAt, in.DurationMinutes, windows, blocked, existing); err != nil {
		return scheduling.Call{}, err
	}

	pricing := scheduling.PriceCall(guide.HourlyRate, in.DurationMinutes, u.feePercent)

	status := scheduling.StatusRequested
	if in.ConfirmImmediately {
		status = scheduling.StatusConfirmed
	}

	call := scheduling.Call{
		GuideID:         in.GuideID,
		SeekerID:        in.SeekerID,
		ScheduledAt:     in.ScheduledAt,
		DurationMinutes: in.DurationMinutes,
		Status:          status,
		Price:           pricing.Price,
		PlatformFee:     pricing.PlatformFee,
		Payout:          pricing.Payout,
	}

	created, err := u.calls.CreateIfFree(ctx, call)
	if err != nil {
		if errors.Is(err, repository.ErrSlotTaken) {
			return scheduling.Call{}, scheduling.ErrBookingConflict
		}
		return scheduling.Call{}, ErrInternal
	}
	return created, nil
}

func (u *Booking) Confirm(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error) {
	return u.transitionAsGuide(ctx, guideID, callID, scheduling.StatusConfirmed)
}

func (u *Booking) Decline(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error) {
	return u.transitionAsGuide(ctx, guideID, callID, scheduling.StatusCancelled)
}

func (u *Booking) Complete(ctx context.Context, guideID, callID uuid.UUID) (scheduling.Call, error) {
	return u.transitionAsGuide(ctx, guideID, callID, scheduling.StatusCompleted)
}

// Cancel is available to either party on the call.
func (u *Booking) Cancel(ctx context.Context, userID, callID uuid.UUID) (scheduling.Call, error) {
	if userID == uuid.Nil {
		return scheduling.Call{}, ErrUnauthorized
	}

	call, err := u.getCall(ctx, callID)
	if err != nil {
		return scheduling.Call{}, err
	}
	if call.GuideID != userID && call.SeekerID != userID {
		return scheduling.Call{}, ErrForbidden
	}

	return u.applyTransition(ctx, call, scheduling.StatusCancelled)
}

func (u *Booking) ListForSeeker(ctx context.Context, seekerID uuid.UUID) ([]scheduling.Call, error) {
	if seekerID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.calls.ListBySeeker(ctx, seekerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Booking) ListForGuide(ctx context.Context, guideID uuid.UUID) ([]scheduling.Call, error) {
	if guideID == uuid.Nil {
		return nil, ErrUnauthorized
	}
	out, err := u.calls.ListByGuide(ctx, guideID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *Booking) transitionAsGuide(ctx context.Context, guideID, callID uuid.UUID, to scheduling.CallStatus) (scheduling.Call, error) {
	if guideID == uuid.Nil {
		return scheduling.Call{}, ErrUnauthorized
	}

	call, err := u.getCall(ctx, callID)
	if err != nil {
		return scheduling.Call{}, err
	}
	if call.GuideID != guideID {
		return scheduling.Call{}, ErrForbidden
	}

	return u.applyTransition(ctx, call, to)
}

func (u *Booking) applyTransition(ctx context.Context, call scheduling.Call, to scheduling.CallStatus) (scheduling.Call, error) {
	if err := scheduling.Transition(call.Status, to); err != nil {
		return scheduling.Call{}, err
	}

	if err := u.calls.UpdateStatus(ctx, call.ID, call.Status, to); err != nil {
		if errors.Is(err, repository.ErrCallStatusChanged) {
			return scheduling.Call{}, scheduling.ErrInvalidTransition
		}
		return scheduling.Call{}, ErrInternal
	}

	return u.getCall(ctx, call.ID)
}

func (u *Booking) getCall(ctx context.Context, callID uuid.UUID) (scheduling.Call, error) {
	if callID == uuid.Nil {
		return scheduling.Call{}, ErrCallNotFound
	}
	call, err := u.calls.GetByID(ctx, callID)
	if err != nil {
		if errors.Is(err, repository.ErrCallNotFound) {
			return scheduling.Call{}, ErrCallNotFound
		}
		return scheduling.Call{}, ErrInternal
	}
	return call, nil
}
