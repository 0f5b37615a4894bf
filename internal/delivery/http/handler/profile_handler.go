package handler

import (
	"errors"

	"recovery-connect/internal/delivery/http/dto"
	"recovery-connect/internal/delivery/http/middleware"
	"recovery-connect/internal/domain/profile"
	"recovery-connect/internal/pkg/response"
	"recovery-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	uc usecase.ProfileUsecase
}

type upsertProfileRequest struct {
	ProcedureType       string   `json:"procedure_type"`
	ProcedureTypes      []string `json:"procedure_types"`
	ProcedureDetails    string   `json:"procedure_details"`
	AgeRange            string   `json:"age_range"`
	Gender              string   `json:"gender"`
	ActivityLevel       string   `json:"activity_level"`
	RecoveryGoals       []string `json:"recovery_goals"`
	ComplicatingFactors []string `json:"complicating_factors"`
	LifestyleContext    []string `json:"lifestyle_context"`
	TimeSinceSurgery    string   `json:"time_since_surgery"`
}

func NewProfileHandler(uc usecase.ProfileUsecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

func (h *ProfileHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/me", h.Get)
	r.Put("/me", h.Upsert)
}

func (h *ProfileHandler) Get(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(p))
}

func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req upsertProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	saved, err := h.uc.Upsert(c.Context(), userID, profile.RecoveryProfile{
		ProcedureType:       req.ProcedureType,
		ProcedureTypes:      req.ProcedureTypes,
		ProcedureDetails:    req.ProcedureDetails,
		AgeRange:            req.AgeRange,
		Gender:              req.Gender,
		ActivityLevel:       req.ActivityLevel,
		RecoveryGoals:       req.RecoveryGoals,
		ComplicatingFactors: req.ComplicatingFactors,
		LifestyleContext:    req.LifestyleContext,
		TimeSinceSurgery:    req.TimeSinceSurgery,
	})
	if err != nil {
		return mapProfileUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, toProfileResponse(saved))
}

func toProfileResponse(p profile.RecoveryProfile) dto.RecoveryProfileResponse {
	return dto.RecoveryProfileResponse{
		ID:                  p.ID,
		UserID:              p.UserID,
		ProcedureType:       p.ProcedureType,
		ProcedureTypes:      p.ProcedureTypes,
		ProcedureDetails:    p.ProcedureDetails,
		AgeRange:            p.AgeRange,
		Gender:              p.Gender,
		ActivityLevel:       p.ActivityLevel,
		RecoveryGoals:       p.RecoveryGoals,
		ComplicatingFactors: p.ComplicatingFactors,
		LifestyleContext:    p.LifestyleContext,
		TimeSinceSurgery:    p.TimeSinceSurgery,
		UpdatedAt:           p.UpdatedAt,
	}
}

func mapProfileUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Recovery profile not found", nil, err)
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
