package requirement

import (
	"time"

	"github.com/google/uuid"
)

// Education levels recognized by requirement constraints. Stored as plain
// strings so new levels can be added without a migration.
const (
	LevelHighSchool = "high_school"
	LevelTechnical  = "technical"
	LevelBachelors  = "bachelors"
	LevelPostgrad   = "postgrad"
	LevelMasters    = "masters"
	LevelDoctorate  = "doctorate"
)

// Requirement is a technical need under a parent solicitation: the role to
// fill, the thresholds a candidate is scored against, and how many
// professionals are needed.
type Requirement struct {
	ID                       uuid.UUID
	SolicitationID           uuid.UUID
	RoleTitle                string
	RequiredExperienceYears  int
	RequiredEducationLevels  []string
	RequiredFieldsOfStudy    []string
	RequiredSkillIDs         []uuid.UUID
	RequiredCertificationIDs []uuid.UUID
	QuantityNeeded           int
	CreatedAt                time.Time
}

// CompletionStatus is derived on read from validated-match counts, never
// stored.
const (
	CompletionComplete = "complete"
	CompletionPartial  = "partial"
	CompletionPending  = "pending"
)

// Completion maps a validated-match count against the quantity needed.
func Completion(validated, quantityNeeded int) string {
	if quantityNeeded > 0 && validated >= quantityNeeded {
		return CompletionComplete
	}
	if validated > 0 {
		return CompletionPartial
	}
	return CompletionPending
}
