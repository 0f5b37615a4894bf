package handler

import (
	"errors"
	"time"

	"recovery-connect/internal/delivery/http/dto"
	"recovery-connect/internal/delivery/http/middleware"
	"recovery-connect/internal/domain/scheduling"
	"recovery-connect/internal/pkg/response"
	"recovery-connect/internal/repository"
	"recovery-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	uc usecase.AvailabilityUsecase
}

type createWindowRequest struct {
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Timezone  string `json:"timezone"`
}

type createBlockedDateRequest struct {
	Date string `json:"date"`
}

func NewAvailabilityHandler(uc usecase.AvailabilityUsecase) *AvailabilityHandler {
	return &AvailabilityHandler{uc: uc}
}

func (h *AvailabilityHandler) RegisterWindowRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListWindows)
	r.Post("/", h.CreateWindow)
	r.Delete("/:window_id", h.DeleteWindow)
}

func (h *AvailabilityHandler) RegisterBlockedDateRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListBlockedDates)
	r.Post("/", h.CreateBlockedDate)
	r.Delete("/:blocked_date_id", h.DeleteBlockedDate)
}

func (h *AvailabilityHandler) ListWindows(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	windows, err := h.uc.ListWindows(c.Context(), guideID)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}

	out := make([]dto.AvailabilityWindowResponse, 0, len(windows))
	for _, w := range windows {
		out = append(out, toWindowResponse(w))
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AvailabilityHandler) CreateWindow(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createWindowRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateWindow(c.Context(), scheduling.Window{
		GuideID:   guideID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
		Timezone:  req.Timezone,
	})
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}

	return response.Success(c, fiber.StatusCreated, response.MessageOK, toWindowResponse(created))
}

func (h *AvailabilityHandler) DeleteWindow(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	windowID, err := uuid.Parse(c.Params("window_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteWindow(c.Context(), guideID, windowID); err != nil {
		return mapAvailabilityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func (h *AvailabilityHandler) ListBlockedDates(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	blocked, err := h.uc.ListBlockedDates(c.Context(), guideID)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}

	out := make([]dto.BlockedDateResponse, 0, len(blocked))
	for _, b := range blocked {
		out = append(out, dto.BlockedDateResponse{ID: b.ID, Date: b.Date.Format("2006-01-02")})
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *AvailabilityHandler) CreateBlockedDate(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req createBlockedDateRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	created, err := h.uc.CreateBlockedDate(c.Context(), guideID, date)
	if err != nil {
		return mapAvailabilityUsecaseError(err)
	}

	out := dto.BlockedDateResponse{ID: created.ID, Date: created.Date.Format("2006-01-02")}
	return response.Success(c, fiber.StatusCreated, response.MessageOK, out)
}

func (h *AvailabilityHandler) DeleteBlockedDate(c fiber.Ctx) error {
	guideID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	blockedID, err := uuid.Parse(c.Params("blocked_date_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	if err := h.uc.DeleteBlockedDate(c.Context(), guideID, blockedID); err != nil {
		return mapAvailabilityUsecaseError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func toWindowResponse(w scheduling.Window) dto.AvailabilityWindowResponse {
	return dto.AvailabilityWindowResponse{
		ID:        w.ID,
		DayOfWeek: w.DayOfWeek,
		StartTime: w.StartTime,
		EndTime:   w.EndTime,
		Timezone:  w.Timezone,
	}
}

func mapAvailabilityUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, scheduling.ErrOverlappingWindow):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, scheduling.ErrInvalidWindow):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrBlockedDateInPast):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, repository.ErrDuplicateBlockedDate):
		return middleware.NewAppError(fiber.StatusConflict, err.Error(), nil, err)
	case errors.Is(err, repository.ErrWindowNotFound), errors.Is(err, repository.ErrBlockedDateNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, response.MessageNotFound, nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
