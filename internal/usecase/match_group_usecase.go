package usecase

import (
	"context"
	"time"

	"bid-match/internal/domain/match"
	"bid-match/internal/domain/requirement"
	"bid-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const matchGroupCacheTTL = 2 * time.Minute

// MatchGroup is one requirement's matches, highest score first, with the
// completion status derived from validated counts on every read.
type MatchGroup struct {
	RequirementID    uuid.UUID     `json:"requirement_id"`
	RoleTitle        string        `json:"role_title"`
	QuantityNeeded   int           `json:"quantity_needed"`
	CompletionStatus string        `json:"completion_status"`
	ValidatedCount   int           `json:"validated_count"`
	Matches          []match.Match `json:"matches"`
}

type MatchGroupUsecase interface {
	ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]MatchGroup, error)
}

type MatchGrouping struct {
	requirements repository.RequirementRepository
	matches      repository.MatchRepository
	cache        MatchCache
	logger       *zap.Logger
}

func NewMatchGroupUsecase(requirements repository.RequirementRepository, matches repository.MatchRepository, cache MatchCache, logger *zap.Logger) *MatchGrouping {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchGrouping{requirements: requirements, matches: matches, cache: cache, logger: logger}
}

func (u *MatchGrouping) ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]MatchGroup, error) {
	if solicitationID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	cacheKey := matchGroupCacheKey(solicitationID)
	if u.cache != nil {
		var cached []MatchGroup
		if hit, err := u.cache.GetJSON(ctx, cacheKey, &cached); err == nil && hit {
			return cached, nil
		}
	}

	reqs, err := u.requirements.ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}
	if len(reqs) == 0 {
		return nil, ErrNoRequirements
	}

	all, err := u.matches.ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return nil, err
	}

	byRequirement := make(map[uuid.UUID][]match.Match, len(reqs))
	for _, m := range all {
		byRequirement[m.RequirementID] = append(byRequirement[m.RequirementID], m)
	}

	groups := make([]MatchGroup, 0, len(reqs))
	for _, req := range reqs {
		ms := byRequirement[req.ID]
		if ms == nil {
			ms = make([]match.Match, 0)
		}
		validated := 0
		for _, m := range ms {
			if m.Status == match.StatusValidated {
				validated++
			}
		}
		groups = append(groups, MatchGroup{
			RequirementID:    req.ID,
			RoleTitle:        req.RoleTitle,
			QuantityNeeded:   req.QuantityNeeded,
			CompletionStatus: requirement.Completion(validated, req.QuantityNeeded),
			ValidatedCount:   validated,
			Matches:          ms,
		})
	}

	if u.cache != nil {
		if err := u.cache.SetJSON(ctx, cacheKey, groups, matchGroupCacheTTL); err != nil {
			u.logger.Debug("match group cache write failed", zap.Error(err))
		}
	}
	return groups, nil
}
