package handler

import (
	"errors"

	"recovery-connect/internal/delivery/http/dto"
	"recovery-connect/internal/delivery/http/middleware"
	"recovery-connect/internal/domain/matching"
	"recovery-connect/internal/pkg/response"
	"recovery-connect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type GuideHandler struct {
	uc usecase.DiscoveryUsecase
}

func NewGuideHandler(uc usecase.DiscoveryUsecase) *GuideHandler {
	return &GuideHandler{uc: uc}
}

func (h *GuideHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.List)
	r.Get("/:guide_id/match", h.Match)
}

func (h *GuideHandler) List(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	ranked, err := h.uc.ListGuides(c.Context(), seekerID)
	if err != nil {
		return mapDiscoveryUsecaseError(err)
	}

	out := make([]dto.GuideListItemResponse, 0, len(ranked))
	for _, rg := range ranked {
		out = append(out, dto.GuideListItemResponse{
			GuideID:        rg.Guide.UserID,
			HourlyRate:     rg.Guide.HourlyRate,
			ProcedureType:  rg.Guide.Profile.ProcedureType,
			ProcedureTypes: rg.Guide.Profile.ProcedureTypes,
			AgeRange:       rg.Guide.Profile.AgeRange,
			Gender:         rg.Guide.Profile.Gender,
			ActivityLevel:  rg.Guide.Profile.ActivityLevel,
			MatchScore:     rg.Match.Score,
			Breakdown:      toBreakdownResponse(rg.Match),
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func (h *GuideHandler) Match(c fiber.Ctx) error {
	seekerID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	guideID, err := uuid.Parse(c.Params("guide_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	res, err := h.uc.MatchGuide(c.Context(), seekerID, guideID)
	if err != nil {
		return mapDiscoveryUsecaseError(err)
	}

	out := dto.MatchResultResponse{
		Score:     res.Score,
		Breakdown: toBreakdownResponse(res),
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func toBreakdownResponse(res matching.Result) []dto.MatchBreakdownItem {
	out := make([]dto.MatchBreakdownItem, 0, len(res.Breakdown))
	for _, item := range res.Breakdown {
		out = append(out, dto.MatchBreakdownItem{
			Attribute: item.Attribute,
			Matched:   item.Matched,
			Weight:    item.Weight,
		})
	}
	return out
}

func mapDiscoveryUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Recovery profile not found", nil, err)
	case errors.Is(err, usecase.ErrGuideNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Guide not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
