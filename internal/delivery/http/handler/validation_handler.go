package handler

import (
	"errors"

	"bid-match/internal/delivery/http/dto"
	"bid-match/internal/delivery/http/middleware"
	"bid-match/internal/pkg/response"
	"bid-match/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

var validate = validator.New()

type ValidationHandler struct {
	uc usecase.ValidationUsecase
}

func NewValidationHandler(uc usecase.ValidationUsecase) *ValidationHandler {
	return &ValidationHandler{uc: uc}
}

func (h *ValidationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Patch("/matches/:match_id/validation", h.ValidateMatch)
	r.Delete("/matches/:match_id", h.DeleteMatch)
}

func (h *ValidationHandler) ValidateMatch(c fiber.Ctx) error {
	validatorID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid match id", nil, err)
	}

	var req dto.ValidateMatchRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid request body", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "status must be validated or rejected", nil, err)
	}

	m, err := h.uc.ValidateMatch(c.Context(), matchID, req.Status, req.Notes, validatorID)
	if err != nil {
		return mapValidationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewMatchResponse(m))
}

func (h *ValidationHandler) DeleteMatch(c fiber.Ctx) error {
	matchID, err := uuid.Parse(c.Params("match_id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid match id", nil, err)
	}

	if err := h.uc.DeleteMatch(c.Context(), matchID); err != nil {
		return mapValidationError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}

func mapValidationError(err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidInput), errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "invalid validation request", nil, err)
	case errors.Is(err, usecase.ErrMatchNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "match not found", nil, err)
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
