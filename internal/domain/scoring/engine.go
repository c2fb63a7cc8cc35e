package scoring

import (
	"math"
	"strings"
	"time"

	"bid-match/internal/domain/match"
	"bid-match/internal/domain/profile"
	"bid-match/internal/domain/requirement"

	"github.com/google/uuid"
)

// Component weights. Education is binary, the rest are proportional.
const (
	educationWeight      = 25
	experienceWeight     = 30
	skillsWeight         = 30
	certificationsWeight = 15
)

// Score evaluates one candidate profile against one requirement and returns
// the four-component breakdown. Pure: no I/O, deterministic for a fixed
// "now" (open experience intervals end at now).
func Score(req requirement.Requirement, p profile.CandidateProfile) match.Breakdown {
	return ScoreAt(req, p, time.Now())
}

func ScoreAt(req requirement.Requirement, p profile.CandidateProfile, now time.Time) match.Breakdown {
	return match.Breakdown{
		EducationMatch:      educationScore(req, p.Educations),
		ExperienceMatch:     experienceScore(req.RequiredExperienceYears, TotalYearsAt(p.Experiences, now)),
		SkillsMatch:         overlapScore(req.RequiredSkillIDs, skillIDs(p.Skills), skillsWeight),
		CertificationsMatch: overlapScore(req.RequiredCertificationIDs, certificationIDs(p.Certifications), certificationsWeight),
	}
}

// educationScore is all-or-nothing: full points when any education entry
// satisfies the requirement. A requirement with an empty level set can never
// be satisfied; membership in an empty set is false for every entry. That
// mirrors the production rule this engine replaces and is kept on purpose
// rather than treated as "any level qualifies".
func educationScore(req requirement.Requirement, educations []profile.Education) int {
	for _, edu := range educations {
		if !containsFold(req.RequiredEducationLevels, edu.Level) {
			continue
		}
		if len(req.RequiredFieldsOfStudy) == 0 {
			return educationWeight
		}
		if fieldMatches(req.RequiredFieldsOfStudy, edu.FieldOfStudy) {
			return educationWeight
		}
	}
	return 0
}

// fieldMatches is a case-insensitive bidirectional substring test: a
// "Mechanical Engineering" degree satisfies a required "Engineering" field,
// and vice versa.
func fieldMatches(requiredFields []string, field string) bool {
	f := strings.ToLower(strings.TrimSpace(field))
	if f == "" {
		return false
	}
	for _, want := range requiredFields {
		w := strings.ToLower(strings.TrimSpace(want))
		if w == "" {
			continue
		}
		if strings.Contains(f, w) || strings.Contains(w, f) {
			return true
		}
	}
	return false
}

// experienceScore is proportional up to the required years. A requirement of
// zero years is met by any total, including zero.
func experienceScore(requiredYears, totalYears int) int {
	if requiredYears <= 0 {
		return experienceWeight
	}
	if totalYears >= requiredYears {
		return experienceWeight
	}
	if totalYears <= 0 {
		return 0
	}
	return int(math.Round(experienceWeight * float64(totalYears) / float64(requiredYears)))
}

// overlapScore scales weight by the fraction of required ids the candidate
// holds. An empty requirement scores zero: absence of a requirement grants
// no free points.
func overlapScore(required []uuid.UUID, held map[uuid.UUID]bool, weight int) int {
	if len(required) == 0 {
		return 0
	}
	hit := 0
	for _, id := range required {
		if held[id] {
			hit++
		}
	}
	return int(math.Round(float64(weight) * float64(hit) / float64(len(required))))
}

func skillIDs(links []profile.SkillLink) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(links))
	for _, l := range links {
		if l.SkillID == uuid.Nil {
			continue
		}
		out[l.SkillID] = true
	}
	return out
}

func certificationIDs(certs []profile.Certification) map[uuid.UUID]bool {
	out := make(map[uuid.UUID]bool, len(certs))
	for _, c := range certs {
		if c.CertificationID == uuid.Nil {
			continue
		}
		out[c.CertificationID] = true
	}
	return out
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(strings.TrimSpace(s), strings.TrimSpace(v)) {
			return true
		}
	}
	return false
}
