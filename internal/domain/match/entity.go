package match

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const (
	StatusPendingValidation = "pending_validation"
	StatusValidated         = "validated"
	StatusRejected          = "rejected"
)

// Breakdown is the four-component decomposition of a match score. The shape
// is fixed; ranges are validated at the persistence boundary.
type Breakdown struct {
	EducationMatch      int `json:"education_match"`
	ExperienceMatch     int `json:"experience_years_match"`
	SkillsMatch         int `json:"skills_match"`
	CertificationsMatch int `json:"certifications_match"`
}

// Total is always the component sum; the score column is derived from it,
// never independently set.
func (b Breakdown) Total() int {
	return b.EducationMatch + b.ExperienceMatch + b.SkillsMatch + b.CertificationsMatch
}

func (b Breakdown) Validate() error {
	if b.EducationMatch != 0 && b.EducationMatch != 25 {
		return fmt.Errorf("education_match out of range: %d", b.EducationMatch)
	}
	if b.ExperienceMatch < 0 || b.ExperienceMatch > 30 {
		return fmt.Errorf("experience_years_match out of range: %d", b.ExperienceMatch)
	}
	if b.SkillsMatch < 0 || b.SkillsMatch > 30 {
		return fmt.Errorf("skills_match out of range: %d", b.SkillsMatch)
	}
	if b.CertificationsMatch < 0 || b.CertificationsMatch > 15 {
		return fmt.Errorf("certifications_match out of range: %d", b.CertificationsMatch)
	}
	return nil
}

// Match is the persisted outcome of scoring one (requirement, candidate)
// pair. At most one row exists per pair; recomputation upserts on that key.
type Match struct {
	ID              uuid.UUID
	RequirementID   uuid.UUID
	UserID          uuid.UUID
	Score           int
	Breakdown       Breakdown
	Status          string
	ValidatedBy     *uuid.UUID
	ValidatedAt     *time.Time
	ValidationNotes *string
	CreatedAt       time.Time
}

func ValidStatus(s string) bool {
	switch s {
	case StatusPendingValidation, StatusValidated, StatusRejected:
		return true
	}
	return false
}

// TerminalStatus reports whether s is an end state of the validation
// workflow. Re-validating a terminal match is permitted; this exists for
// callers that want to surface it anyway.
func TerminalStatus(s string) bool {
	return s == StatusValidated || s == StatusRejected
}
