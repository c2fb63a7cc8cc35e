package profile

import (
	"time"

	"github.com/google/uuid"
)

type Education struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	Level        string
	FieldOfStudy string
}

// ExperienceInterval is one employment span. A nil EndDate means the job is
// ongoing as of now.
type ExperienceInterval struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	StartDate time.Time
	EndDate   *time.Time
}

type SkillLink struct {
	ID      uuid.UUID
	UserID  uuid.UUID
	SkillID uuid.UUID
}

type Certification struct {
	ID              uuid.UUID
	UserID          uuid.UUID
	CertificationID uuid.UUID
}

// CandidateProfile is the scoring input for one user. It is assembled fresh
// on every scoring pass and never persisted; callers treat it as a snapshot
// at computation time. Empty collections are a valid, scoreable state.
type CandidateProfile struct {
	UserID         uuid.UUID
	Educations     []Education
	Experiences    []ExperienceInterval
	Skills         []SkillLink
	Certifications []Certification
}
