package handler

import (
	"errors"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type MatchHandler struct {
	matching usecase.MatchingUsecase
	groups   usecase.MatchGroupUsecase
}

func NewMatchHandler(matching usecase.MatchingUsecase, groups usecase.MatchGroupUsecase) *MatchHandler {
	return &MatchHandler{matching: matching, groups: groups}
}

func (h *MatchHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/requirements/:requirement_id/matches", h.CalculateForRequirement)
	r.Post("/solicitations/:solicitation_id/matches", h.CalculateForSolicitation)
	r.Get("/solicitations/:solicitation_id/matches", h.ListGroups)
	r.Get("/solicitations/:solicitation_id/matches/exists", h.CheckExisting)
}

func (h *MatchHandler) CalculateForRequirement(c fiber.Ctx) error {
	requirementID, err := uuid.Parse(c.Params("requirement_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid requirement id", nil, err)
	}

	res, err := h.matching.CalculateMatch(c.Context(), requirementID)
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RequirementResultResponse{
		RequirementID:   res.RequirementID,
		RoleTitle:       res.RoleTitle,
		TotalCandidates: res.TotalCandidates,
		MatchesProduced: res.MatchesProduced,
	})
}

func (h *MatchHandler) CalculateForSolicitation(c fiber.Ctx) error {
	solicitationID, err := uuid.Parse(c.Params("solicitation_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid solicitation id", nil, err)
	}
	force := fiber.Query(c, "force", false)

	// Progress also streams over the websocket hub; no callback needed here.
	res, err := h.matching.CalculateMatchForSolicitation(c.Context(), solicitationID, force, nil)
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewSolicitationResultResponse(res))
}

func (h *MatchHandler) ListGroups(c fiber.Ctx) error {
	solicitationID, err := uuid.Parse(c.Params("solicitation_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid solicitation id", nil, err)
	}

	groups, err := h.groups.ListBySolicitation(c.Context(), solicitationID)
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchGroupResponses(groups))
}

func (h *MatchHandler) CheckExisting(c fiber.Ctx) error {
	solicitationID, err := uuid.Parse(c.Params("solicitation_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid solicitation id", nil, err)
	}

	exists, err := h.matching.CheckExistingMatches(c.Context(), solicitationID)
	if err != nil {
		return mapMatchingError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.ExistingMatchesResponse{
		SolicitationID: solicitationID,
		HasMatches:     exists,
	})
}

func mapMatchingError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid input", nil, err)
	case errors.Is(err, usecase.ErrRequirementNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "requirement not found", nil, err)
	case errors.Is(err, usecase.ErrNoRequirements):
		return middleware.NewAppError(fiber.StatusNotFound, "solicitation has no requirements", nil, err)
	case errors.Is(err, usecase.ErrNoActiveUsers):
		// Distinct from "nobody qualified": that is a valid zero-match result.
		return middleware.NewAppError(fiber.StatusUnprocessableEntity, "no active users found", nil, err)
	case errors.Is(err, usecase.ErrBatchInProgress):
		return middleware.NewAppError(fiber.StatusConflict, "match computation already in progress", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
