package usecase

import (
	"context"
	"errors"

	"bid-match/internal/domain/match"
	"bid-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ValidationUsecase interface {
	ValidateMatch(ctx context.Context, matchID uuid.UUID, status, notes string, validatedBy uuid.UUID) (match.Match, error)
	DeleteMatch(ctx context.Context, matchID uuid.UUID) error
}

type Validation struct {
	matches      repository.MatchRepository
	requirements repository.RequirementRepository
	cache        MatchCache
	logger       *zap.Logger
}

func NewValidationUsecase(matches repository.MatchRepository, requirements repository.RequirementRepository, cache MatchCache, logger *zap.Logger) *Validation {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Validation{matches: matches, requirements: requirements, cache: cache, logger: logger}
}

// ValidateMatch transitions a match to validated or rejected, recording who
// decided, when (server time), and why, in one atomic update. There is no
// guard against re-deciding a terminal match: the last decision wins.
func (u *Validation) ValidateMatch(ctx context.Context, matchID uuid.UUID, status, notes string, validatedBy uuid.UUID) (match.Match, error) {
	if matchID == uuid.Nil {
		return match.Match{}, ErrInvalidInput
	}
	if validatedBy == uuid.Nil {
		return match.Match{}, ErrUnauthorized
	}
	if status != match.StatusValidated && status != match.StatusRejected {
		return match.Match{}, ErrInvalidStatus
	}

	m, err := u.matches.UpdateValidation(ctx, matchID, status, validatedBy, notes)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}

	u.invalidateFor(ctx, m.RequirementID)

	u.logger.Info("match validation recorded",
		zap.String("match_id", m.ID.String()),
		zap.String("status", m.Status),
		zap.String("validated_by", validatedBy.String()))
	return m, nil
}

// DeleteMatch removes a match regardless of its status; pruning bypasses the
// validation state machine entirely.
func (u *Validation) DeleteMatch(ctx context.Context, matchID uuid.UUID) error {
	if matchID == uuid.Nil {
		return ErrInvalidInput
	}

	m, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	if err := u.matches.Delete(ctx, matchID); err != nil {
		if errors.Is(err, repository.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}

	u.invalidateFor(ctx, m.RequirementID)
	return nil
}

func (u *Validation) invalidateFor(ctx context.Context, requirementID uuid.UUID) {
	if u.cache == nil || u.requirements == nil {
		return
	}
	req, err := u.requirements.FindByID(ctx, requirementID)
	if err != nil {
		return
	}
	_ = u.cache.Delete(ctx, matchGroupCacheKey(req.SolicitationID))
}
