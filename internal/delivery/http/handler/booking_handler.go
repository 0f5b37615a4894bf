package handler

import (
	"context"
	"errors"
	"time"

	"recovery-connect/internal/delivery/http/dto"
	"recovery-connect/internal/delivery/http/middleware"
	"recovery-connect/internal/domain/scheduling"
	"recovery-connect/internal/domain/user"
	"recovery-connect/internal/pkg/response"
	"recovery-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type BookingHandler struct {
	uc usecase.BookingUsecase
}

type createBookingRequest struct {
	GuideID            string    `json:"guide_id"`
	ScheduledAt        time.Time `json:"scheduled_at"`
	DurationMinutes    int       `json:"duration_minutes"`
	ConfirmImmediately bool      `json:"confirm_immediately"`
}

func NewBookingHandler(uc usecase.BookingUsecase) *BookingHandler {
	return &BookingHandler{uc: uc}
}

func (h *BookingHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/", h.List)
	r.Post("/", h.Create, middleware.RequireRole(string(user.RoleSeeker)))
	r.Post("/:call_id/confirm", h.Confirm, middleware.RequireRole(string(user.RoleGuide)))
	r.Post("/:call_id/decline", h.Decline, middleware.RequireRole(string(user.RoleGuide)))
	r.Post("/:call_id/cancel", h.Cancel)
	r.Post("/:call_id/complete", h.Complete, middleware.RequireRole(string(user.RoleGuide)))
}

func (h *BookingHandler) Create(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createBookingRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	guideID, err := uuid.Parse(req.GuideID)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	call, err := h.uc.CreateBooking(c.Context(), usecase.CreateBookingInput{
		SeekerID:           seekerID,
		GuideID:            guideID,
		ScheduledAt:        req.ScheduledAt,
		DurationMinutes:    req.DurationMinutes,
		ConfirmImmediately: req.ConfirmImmediately,
	})
	if err != nil {
		return mapBookingUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, toCallResponse(call))
}

// List returns the caller's calls: bookings they made as a seeker when
// their role is seeker, bookings on their calendar when it is guide.
func (h *BookingHandler) List(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	role, _ := c.Locals(middleware.CtxRoleKey).(string)

	var (
		calls []scheduling.Call
		err   error
	)
	if role == string(user.RoleGuide) {
		calls, err = h.uc.ListForGuide(c.Context(), userID)
	} else {
		calls, err = h.uc.ListForSeeker(c.Context(), userID)
	}
	if err != nil {
		return mapBookingUsecaseError(err)
	}

	out := make([]dto.CallResponse, 0, len(calls))
	for _, call := range calls {
		out = append(out, toCallResponse(call))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *BookingHandler) Confirm(c fiber.Ctx) error {
	return h.transition(c, h.uc.Confirm)
}

func (h *BookingHandler) Decline(c fiber.Ctx) error {
	return h.transition(c, h.uc.Decline)
}

func (h *BookingHandler) Cancel(c fiber.Ctx) error {
	return h.transition(c, h.uc.Cancel)
}

func (h *BookingHandler) Complete(c fiber.Ctx) error {
	return h.transition(c, h.uc.Complete)
}

func (h *BookingHandler) transition(c fiber.Ctx, op func(ctx context.Context, userID, callID uuid.UUID) (scheduling.Call, error)) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	callID, err := uuid.Parse(c.Params("call_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	call, err := op(c.Context(), userID, callID)
	if err != nil {
		return mapBookingUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, toCallResponse(call))
}

func toCallResponse(call scheduling.Call) dto.CallResponse {
	return dto.CallResponse{
		ID:              call.ID,
		GuideID:         call.GuideID,
		SeekerID:        call.SeekerID,
		ScheduledAt:     call.ScheduledAt,
		DurationMinutes: call.DurationMinutes,
		Status:          string(call.Status),
		Price:           call.Price,
		PlatformFee:     call.PlatformFee,
		Payout:          call.Payout,
		CreatedAt:       call.CreatedAt,
	}
}

func mapBookingUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, scheduling.ErrInvalidDuration),
		errors.Is(err, scheduling.ErrPastDate),
		errors.Is(err, scheduling.ErrNotQuantized),
		errors.Is(err, scheduling.ErrOutsideAvailability),
		errors.Is(err, scheduling.ErrBlockedDate):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, scheduling.ErrBookingConflict),
		errors.Is(err, scheduling.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrCallNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Call not found", nil, err)
	case errors.Is(err, usecase.ErrGuideNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Guide not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
