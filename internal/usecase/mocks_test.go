package usecase

import (
	"context"
	"fmt"
	"time"

	"bid-match/internal/domain/match"
	"bid-match/internal/domain/profile"
	"bid-match/internal/domain/requirement"
	"bid-match/internal/domain/user"
	"bid-match/internal/repository"

	"github.com/google/uuid"
)

type mockRequirementRepo struct {
	reqs    []requirement.Requirement
	listErr error
	findErr error
}

func (m *mockRequirementRepo) FindByID(_ context.Context, id uuid.UUID) (requirement.Requirement, error) {
	if m.findErr != nil {
		return requirement.Requirement{}, m.findErr
	}
	for _, req := range m.reqs {
		if req.ID == id {
			return req, nil
		}
	}
	return requirement.Requirement{}, repository.ErrRequirementNotFound
}

func (m *mockRequirementRepo) ListBySolicitation(_ context.Context, solicitationID uuid.UUID) ([]requirement.Requirement, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	out := make([]requirement.Requirement, 0)
	for _, req := range m.reqs {
		if req.SolicitationID == solicitationID {
			out = append(out, req)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	activeIDs []uuid.UUID
	byEmail   map[string]user.User
	err       error
}

func (m *mockUserRepo) ListActiveIDs(context.Context) ([]uuid.UUID, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.activeIDs, nil
}

func (m *mockUserRepo) FindByID(context.Context, uuid.UUID) (user.User, error) {
	return user.User{}, repository.ErrUserNotFound
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (user.User, error) {
	u, ok := m.byEmail[email]
	if !ok {
		return user.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

type mockProfileRepo struct {
	profiles map[uuid.UUID]profile.CandidateProfile
	failFor  map[uuid.UUID]error
}

func (m *mockProfileRepo) BuildProfile(_ context.Context, userID uuid.UUID) (profile.CandidateProfile, error) {
	if err := m.failFor[userID]; err != nil {
		return profile.CandidateProfile{}, err
	}
	p, ok := m.profiles[userID]
	if !ok {
		return profile.CandidateProfile{UserID: userID}, nil
	}
	return p, nil
}

type pairKey struct {
	requirementID uuid.UUID
	userID        uuid.UUID
}

// mockMatchRepo keeps matches keyed by (requirement, user) the way the
// Postgres upsert does: conflicting writes keep the id and validation
// columns, scores refresh.
type mockMatchRepo struct {
	rows map[pairKey]match.Match

	upsertBatches [][]repository.MatchUpsert
	deletedSolic  []uuid.UUID
	upsertErr     error
	listOverride  []match.Match
}

func newMockMatchRepo() *mockMatchRepo {
	return &mockMatchRepo{rows: make(map[pairKey]match.Match)}
}

func (m *mockMatchRepo) UpsertBatch(_ context.Context, batch []repository.MatchUpsert) error {
	if m.upsertErr != nil {
		return m.upsertErr
	}
	m.upsertBatches = append(m.upsertBatches, batch)
	for _, up := range batch {
		key := pairKey{up.RequirementID, up.UserID}
		if existing, ok := m.rows[key]; ok {
			existing.Score = up.Breakdown.Total()
			existing.Breakdown = up.Breakdown
			m.rows[key] = existing
			continue
		}
		m.rows[key] = match.Match{
			ID:            uuid.New(),
			RequirementID: up.RequirementID,
			UserID:        up.UserID,
			Score:         up.Breakdown.Total(),
			Breakdown:     up.Breakdown,
			Status:        match.StatusPendingValidation,
			CreatedAt:     time.Now().UTC(),
		}
	}
	return nil
}

func (m *mockMatchRepo) FindByID(_ context.Context, id uuid.UUID) (match.Match, error) {
	for _, row := range m.rows {
		if row.ID == id {
			return row, nil
		}
	}
	return match.Match{}, repository.ErrMatchNotFound
}

func (m *mockMatchRepo) ListBySolicitation(context.Context, uuid.UUID) ([]match.Match, error) {
	if m.listOverride != nil {
		return m.listOverride, nil
	}
	out := make([]match.Match, 0, len(m.rows))
	for _, row := range m.rows {
		out = append(out, row)
	}
	return out, nil
}

func (m *mockMatchRepo) UpdateValidation(_ context.Context, id uuid.UUID, status string, validatedBy uuid.UUID, notes string) (match.Match, error) {
	for key, row := range m.rows {
		if row.ID == id {
			now := time.Now().UTC()
			row.Status = status
			row.ValidatedBy = &validatedBy
			row.ValidatedAt = &now
			row.ValidationNotes = &notes
			m.rows[key] = row
			return row, nil
		}
	}
	return match.Match{}, repository.ErrMatchNotFound
}

func (m *mockMatchRepo) Delete(_ context.Context, id uuid.UUID) error {
	for key, row := range m.rows {
		if row.ID == id {
			delete(m.rows, key)
			return nil
		}
	}
	return repository.ErrMatchNotFound
}

func (m *mockMatchRepo) DeleteBySolicitation(_ context.Context, solicitationID uuid.UUID) (int64, error) {
	m.deletedSolic = append(m.deletedSolic, solicitationID)
	n := int64(len(m.rows))
	m.rows = make(map[pairKey]match.Match)
	return n, nil
}

func (m *mockMatchRepo) ExistsForSolicitation(context.Context, uuid.UUID) (bool, error) {
	return len(m.rows) > 0, nil
}

type mockCache struct {
	values  map[string]string
	locked  map[string]bool
	getJSON func(dest any) (bool, error)
}

func newMockCache() *mockCache {
	return &mockCache{values: map[string]string{}, locked: map[string]bool{}}
}

func (m *mockCache) GetJSON(_ context.Context, _ string, dest any) (bool, error) {
	if m.getJSON != nil {
		return m.getJSON(dest)
	}
	return false, nil
}

func (m *mockCache) SetJSON(_ context.Context, key string, _ any, _ time.Duration) error {
	m.values[key] = "json"
	return nil
}

func (m *mockCache) Delete(_ context.Context, key string) error {
	delete(m.values, key)
	delete(m.locked, key)
	return nil
}

func (m *mockCache) SetIfNotExists(_ context.Context, key, _ string, _ time.Duration) (bool, error) {
	if m.locked[key] {
		return false, nil
	}
	m.locked[key] = true
	return true, nil
}

func seedRequirement(solicitationID uuid.UUID, years int, skills []uuid.UUID) requirement.Requirement {
	return requirement.Requirement{
		ID:                      uuid.New(),
		SolicitationID:          solicitationID,
		RoleTitle:               fmt.Sprintf("role-%d", years),
		RequiredExperienceYears: years,
		RequiredSkillIDs:        skills,
		QuantityNeeded:          1,
	}
}
