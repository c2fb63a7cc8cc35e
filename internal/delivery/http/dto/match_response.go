package dto

import (
	"time"

	"bid-match/internal/domain/match"
	"bid-match/internal/usecase"

	"github.com/google/uuid"
)

type BreakdownResponse struct {
	EducationMatch      int `json:"education_match"`
	ExperienceMatch     int `json:"experience_years_match"`
	SkillsMatch         int `json:"skills_match"`
	CertificationsMatch int `json:"certifications_match"`
}

type MatchResponse struct {
	ID              uuid.UUID         `json:"id"`
	RequirementID   uuid.UUID         `json:"requirement_id"`
	UserID          uuid.UUID         `json:"user_id"`
	Score           int               `json:"score"`
	Breakdown       BreakdownResponse `json:"breakdown"`
	Status          string            `json:"status"`
	ValidatedBy     *uuid.UUID        `json:"validated_by"`
	ValidatedAt     *time.Time        `json:"validated_at"`
	ValidationNotes *string           `json:"validation_notes"`
}

func NewMatchResponse(m match.Match) MatchResponse {
	return MatchResponse{
		ID:            m.ID,
		RequirementID: m.RequirementID,
		UserID:        m.UserID,
		Score:         m.Score,
		Breakdown: BreakdownResponse{
			EducationMatch:      m.Breakdown.EducationMatch,
			ExperienceMatch:     m.Breakdown.ExperienceMatch,
			SkillsMatch:         m.Breakdown.SkillsMatch,
			CertificationsMatch: m.Breakdown.CertificationsMatch,
		},
		Status:          m.Status,
		ValidatedBy:     m.ValidatedBy,
		ValidatedAt:     m.ValidatedAt,
		ValidationNotes: m.ValidationNotes,
	}
}

type RequirementResultResponse struct {
	RequirementID   uuid.UUID `json:"requirement_id"`
	RoleTitle       string    `json:"role_title"`
	TotalCandidates int       `json:"total_candidates"`
	MatchesProduced int       `json:"matches_produced"`
}

type SolicitationResultResponse struct {
	SolicitationID    uuid.UUID                   `json:"solicitation_id"`
	TotalRequirements int                         `json:"total_requirements"`
	Results           []RequirementResultResponse `json:"results"`
	TotalMatches      int                         `json:"total_matches"`
	DeletedByForce    int64                       `json:"deleted_by_force"`
}

func NewSolicitationResultResponse(res usecase.SolicitationResult) SolicitationResultResponse {
	out := SolicitationResultResponse{
		SolicitationID:    res.SolicitationID,
		TotalRequirements: res.TotalRequirements,
		Results:           make([]RequirementResultResponse, 0, len(res.Results)),
		TotalMatches:      res.TotalMatches,
		DeletedByForce:    res.DeletedByForce,
	}
	for _, r := range res.Results {
		out.Results = append(out.Results, RequirementResultResponse{
			RequirementID:   r.RequirementID,
			RoleTitle:       r.RoleTitle,
			TotalCandidates: r.TotalCandidates,
			MatchesProduced: r.MatchesProduced,
		})
	}
	return out
}

type MatchGroupResponse struct {
	RequirementID    uuid.UUID       `json:"requirement_id"`
	RoleTitle        string          `json:"role_title"`
	QuantityNeeded   int             `json:"quantity_needed"`
	CompletionStatus string          `json:"completion_status"`
	ValidatedCount   int             `json:"validated_count"`
	Matches          []MatchResponse `json:"matches"`
}

func NewMatchGroupResponses(groups []usecase.MatchGroup) []MatchGroupResponse {
	out := make([]MatchGroupResponse, 0, len(groups))
	for _, g := range groups {
		matches := make([]MatchResponse, 0, len(g.Matches))
		for _, m := range g.Matches {
			matches = append(matches, NewMatchResponse(m))
		}
		out = append(out, MatchGroupResponse{
			RequirementID:    g.RequirementID,
			RoleTitle:        g.RoleTitle,
			QuantityNeeded:   g.QuantityNeeded,
			CompletionStatus: g.CompletionStatus,
			ValidatedCount:   g.ValidatedCount,
			Matches:          matches,
		})
	}
	return out
}

type ExistingMatchesResponse struct {
	SolicitationID uuid.UUID `json:"solicitation_id"`
	HasMatches     bool      `json:"has_matches"`
}
