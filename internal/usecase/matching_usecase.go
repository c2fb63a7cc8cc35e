package usecase

import (
	"context"
	"errors"
	"time"

	"bid-match/internal/domain/requirement"
	"bid-match/internal/domain/scoring"
	"bid-match/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Candidate scoring inside one requirement is pure and fans out; the
// per-requirement loop stays sequential so progress stays meaningful.
const scoringConcurrency = 8

const batchLockTTL = 5 * time.Minute

// ProgressFunc observes the per-requirement progress of a whole-solicitation
// computation: called with (current, total) after each requirement finishes.
type ProgressFunc func(current, total int)

// ProgressNotifier pushes the same progress to out-of-process observers
// (the websocket hub). Optional.
type ProgressNotifier interface {
	BatchProgress(solicitationID uuid.UUID, current, total int)
}

type RequirementResult struct {
	RequirementID   uuid.UUID
	RoleTitle       string
	TotalCandidates int
	MatchesProduced int
}

type SolicitationResult struct {
	SolicitationID    uuid.UUID
	TotalRequirements int
	Results           []RequirementResult
	TotalMatches      int
	DeletedByForce    int64
}

type MatchingUsecase interface {
	CalculateMatch(ctx context.Context, requirementID uuid.UUID) (RequirementResult, error)
	CalculateMatchForSolicitation(ctx context.Context, solicitationID uuid.UUID, force bool, progress ProgressFunc) (SolicitationResult, error)
	CheckExistingMatches(ctx context.Context, solicitationID uuid.UUID) (bool, error)
}

type Matching struct {
	requirements repository.RequirementRepository
	users        repository.UserRepository
	profiles     repository.ProfileRepository
	matches      repository.MatchRepository
	cache        MatchCache
	notifier     ProgressNotifier
	logger       *zap.Logger

	now func() time.Time
}

func NewMatchingUsecase(
	requirements repository.RequirementRepository,
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	matches repository.MatchRepository,
	cache MatchCache,
	notifier ProgressNotifier,
	logger *zap.Logger,
) *Matching {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matching{
		requirements: requirements,
		users:        users,
		profiles:     profiles,
		matches:      matches,
		cache:        cache,
		notifier:     notifier,
		logger:       logger,
		now:          time.Now,
	}
}

// CalculateMatch scores every active user against one requirement and
// upserts the non-zero results keyed by (requirement_id, user_id). Reruns
// overwrite scores in place; they never duplicate rows.
func (u *Matching) CalculateMatch(ctx context.Context, requirementID uuid.UUID) (RequirementResult, error) {
	if requirementID == uuid.Nil {
		return RequirementResult{}, ErrInvalidInput
	}

	req, err := u.requirements.FindByID(ctx, requirementID)
	if err != nil {
		if errors.Is(err, repository.ErrRequirementNotFound) {
			return RequirementResult{}, ErrRequirementNotFound
		}
		return RequirementResult{}, err
	}

	res, err := u.computeRequirement(ctx, req)
	if err != nil {
		return RequirementResult{}, err
	}

	u.invalidateGroupCache(ctx, req.SolicitationID)
	return res, nil
}

// CalculateMatchForSolicitation runs the single-requirement computation for
// every requirement under a solicitation, strictly in order. With force, all
// existing matches under the solicitation are deleted first. An advisory
// cache lock keeps two callers from racing the same solicitation; this is
// hardening on top of the already idempotent keyed upserts.
func (u *Matching) CalculateMatchForSolicitation(ctx context.Context, solicitationID uuid.UUID, force bool, progress ProgressFunc) (SolicitationResult, error) {
	if solicitationID == uuid.Nil {
		return SolicitationResult{}, ErrInvalidInput
	}

	reqs, err := u.requirements.ListBySolicitation(ctx, solicitationID)
	if err != nil {
		return SolicitationResult{}, err
	}
	if len(reqs) == 0 {
		return SolicitationResult{}, ErrNoRequirements
	}

	unlock, err := u.acquireBatchLock(ctx, solicitationID)
	if err != nil {
		return SolicitationResult{}, err
	}
	defer unlock()

	out := SolicitationResult{
		SolicitationID:    solicitationID,
		TotalRequirements: len(reqs),
		Results:           make([]RequirementResult, 0, len(reqs)),
	}

	if force {
		deleted, err := u.matches.DeleteBySolicitation(ctx, solicitationID)
		if err != nil {
			return SolicitationResult{}, err
		}
		out.DeletedByForce = deleted
		u.logger.Info("forced recalculation: existing matches deleted",
			zap.String("solicitation_id", solicitationID.String()),
			zap.Int64("deleted", deleted))
	}

	for i, req := range reqs {
		// Each requirement's writes are a self-contained upsert batch, so
		// stopping between requirements leaves no partial state behind.
		if err := ctx.Err(); err != nil {
			return SolicitationResult{}, err
		}

		res, err := u.computeRequirement(ctx, req)
		if err != nil {
			return SolicitationResult{}, err
		}
		out.Results = append(out.Results, res)
		out.TotalMatches += res.MatchesProduced

		current := i + 1
		if progress != nil {
			progress(current, len(reqs))
		}
		if u.notifier != nil {
			u.notifier.BatchProgress(solicitationID, current, len(reqs))
		}
	}

	u.invalidateGroupCache(ctx, solicitationID)

	u.logger.Info("solicitation matching finished",
		zap.String("solicitation_id", solicitationID.String()),
		zap.Int("requirements", out.TotalRequirements),
		zap.Int("matches", out.TotalMatches))
	return out, nil
}

func (u *Matching) CheckExistingMatches(ctx context.Context, solicitationID uuid.UUID) (bool, error) {
	if solicitationID == uuid.Nil {
		return false, ErrInvalidInput
	}
	return u.matches.ExistsForSolicitation(ctx, solicitationID)
}

func (u *Matching) computeRequirement(ctx context.Context, req requirement.Requirement) (RequirementResult, error) {
	candidates, err := u.users.ListActiveIDs(ctx)
	if err != nil {
		return RequirementResult{}, err
	}
	if len(candidates) == 0 {
		return RequirementResult{}, ErrNoActiveUsers
	}

	now := u.now()
	scored := make([]repository.MatchUpsert, len(candidates))
	keep := make([]bool, len(candidates))

	// Scoring is pure until the final upsert, so candidates fan out. Each
	// goroutine writes only its own slot.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)

	for i, userID := range candidates {
		g.Go(func() error {
			p, err := u.profiles.BuildProfile(gctx, userID)
			if err != nil {
				return err
			}
			b := scoring.ScoreAt(req, p, now)
			if b.Total() == 0 {
				return nil
			}
			scored[i] = repository.MatchUpsert{
				RequirementID: req.ID,
				UserID:        userID,
				Breakdown:     b,
			}
			keep[i] = true
			return nil
		})
	}
	// One failed profile lookup fails the whole batch; nothing is written.
	if err := g.Wait(); err != nil {
		return RequirementResult{}, err
	}

	batch := make([]repository.MatchUpsert, 0, len(candidates))
	for i := range scored {
		if keep[i] {
			batch = append(batch, scored[i])
		}
	}

	if err := u.matches.UpsertBatch(ctx, batch); err != nil {
		return RequirementResult{}, err
	}

	u.logger.Debug("requirement scored",
		zap.String("requirement_id", req.ID.String()),
		zap.Int("candidates", len(candidates)),
		zap.Int("matches", len(batch)))

	return RequirementResult{
		RequirementID:   req.ID,
		RoleTitle:       req.RoleTitle,
		TotalCandidates: len(candidates),
		MatchesProduced: len(batch),
	}, nil
}

func (u *Matching) acquireBatchLock(ctx context.Context, solicitationID uuid.UUID) (func(), error) {
	if u.cache == nil {
		return func() {}, nil
	}
	key := "matches:lock:" + solicitationID.String()
	ok, err := u.cache.SetIfNotExists(ctx, key, "1", batchLockTTL)
	if err != nil {
		// Cache unavailability never blocks a batch; upserts converge anyway.
		return func() {}, nil
	}
	if !ok {
		return nil, ErrBatchInProgress
	}
	return func() { _ = u.cache.Delete(context.Background(), key) }, nil
}

func (u *Matching) invalidateGroupCache(ctx context.Context, solicitationID uuid.UUID) {
	if u.cache == nil {
		return
	}
	if err := u.cache.Delete(ctx, matchGroupCacheKey(solicitationID)); err != nil {
		u.logger.Warn("match group cache invalidation failed",
			zap.String("solicitation_id", solicitationID.String()),
			zap.Error(err))
	}
}
