package usecase

import (
	"context"
	"errors"
	"testing"

	"bid-match/internal/domain/match"
	"bid-match/internal/domain/requirement"

	"github.com/google/uuid"
)

func statusMatch(requirementID uuid.UUID, status string, score int) match.Match {
	return match.Match{
		ID:            uuid.New(),
		RequirementID: requirementID,
		UserID:        uuid.New(),
		Score:         score,
		Status:        status,
	}
}

func TestListBySolicitationGroupsAndDerivesCompletion(t *testing.T) {
	solicitationID := uuid.New()
	staffed := seedRequirement(solicitationID, 1, nil)
	staffed.QuantityNeeded = 1
	partial := seedRequirement(solicitationID, 2, nil)
	partial.QuantityNeeded = 3
	untouched := seedRequirement(solicitationID, 3, nil)
	untouched.QuantityNeeded = 2

	matches := newMockMatchRepo()
	matches.listOverride = []match.Match{
		statusMatch(staffed.ID, match.StatusValidated, 80),
		statusMatch(staffed.ID, match.StatusRejected, 55),
		statusMatch(partial.ID, match.StatusValidated, 70),
		statusMatch(partial.ID, match.StatusPendingValidation, 60),
		statusMatch(untouched.ID, match.StatusPendingValidation, 40),
	}

	uc := NewMatchGroupUsecase(
		&mockRequirementRepo{reqs: []requirement.Requirement{staffed, partial, untouched}},
		matches,
		nil, nil,
	)

	groups, err := uc.ListBySolicitation(context.Background(), solicitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 3 {
		t.Fatalf("groups = %d, want 3", len(groups))
	}

	want := []struct {
		requirementID uuid.UUID
		completion    string
		validated     int
		matches       int
	}{
		{staffed.ID, requirement.CompletionComplete, 1, 2},
		{partial.ID, requirement.CompletionPartial, 1, 2},
		{untouched.ID, requirement.CompletionPending, 0, 1},
	}
	for i, w := range want {
		g := groups[i]
		if g.RequirementID != w.requirementID {
			t.Errorf("group %d: requirement %s, want %s", i, g.RequirementID, w.requirementID)
		}
		if g.CompletionStatus != w.completion {
			t.Errorf("group %d: completion = %q, want %q", i, g.CompletionStatus, w.completion)
		}
		if g.ValidatedCount != w.validated {
			t.Errorf("group %d: validated = %d, want %d", i, g.ValidatedCount, w.validated)
		}
		if len(g.Matches) != w.matches {
			t.Errorf("group %d: matches = %d, want %d", i, len(g.Matches), w.matches)
		}
	}
}

func TestListBySolicitationEmptyGroupForUnmatchedRequirement(t *testing.T) {
	solicitationID := uuid.New()
	req := seedRequirement(solicitationID, 1, nil)

	uc := NewMatchGroupUsecase(
		&mockRequirementRepo{reqs: []requirement.Requirement{req}},
		newMockMatchRepo(),
		nil, nil,
	)

	groups, err := uc.ListBySolicitation(context.Background(), solicitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 {
		t.Fatalf("groups = %d, want 1", len(groups))
	}
	if groups[0].Matches == nil || len(groups[0].Matches) != 0 {
		t.Error("unmatched requirement must carry an empty, non-nil match list")
	}
	if groups[0].CompletionStatus != requirement.CompletionPending {
		t.Errorf("completion = %q, want %q", groups[0].CompletionStatus, requirement.CompletionPending)
	}
}

func TestListBySolicitationNoRequirements(t *testing.T) {
	uc := NewMatchGroupUsecase(&mockRequirementRepo{}, newMockMatchRepo(), nil, nil)

	if _, err := uc.ListBySolicitation(context.Background(), uuid.New()); !errors.Is(err, ErrNoRequirements) {
		t.Fatalf("expected ErrNoRequirements, got %v", err)
	}
}

func TestListBySolicitationServesCacheHit(t *testing.T) {
	solicitationID := uuid.New()
	cachedGroup := MatchGroup{
		RequirementID:    uuid.New(),
		RoleTitle:        "cached role",
		CompletionStatus: requirement.CompletionPending,
		Matches:          []match.Match{},
	}

	cache := newMockCache()
	cache.getJSON = func(dest any) (bool, error) {
		*dest.(*[]MatchGroup) = []MatchGroup{cachedGroup}
		return true, nil
	}

	// An empty requirement repo would make the uncached path fail, so a
	// successful read proves the cache was served.
	uc := NewMatchGroupUsecase(&mockRequirementRepo{}, newMockMatchRepo(), cache, nil)

	groups, err := uc.ListBySolicitation(context.Background(), solicitationID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(groups) != 1 || groups[0].RoleTitle != "cached role" {
		t.Fatalf("cache hit not served: %+v", groups)
	}
}

func TestListBySolicitationWritesCache(t *testing.T) {
	solicitationID := uuid.New()
	req := seedRequirement(solicitationID, 1, nil)
	cache := newMockCache()

	uc := NewMatchGroupUsecase(
		&mockRequirementRepo{reqs: []requirement.Requirement{req}},
		newMockMatchRepo(),
		cache, nil,
	)

	if _, err := uc.ListBySolicitation(context.Background(), solicitationID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := cache.values[matchGroupCacheKey(solicitationID)]; !ok {
		t.Error("group list not written to cache")
	}
}
