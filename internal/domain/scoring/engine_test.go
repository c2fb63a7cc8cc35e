package scoring

import (
	"testing"
	"time"

	"bid-match/internal/domain/profile"
	"bid-match/internal/domain/requirement"

	"github.com/google/uuid"
)

var testNow = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestScore_TotalIsComponentSumWithinBounds(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	c1 := uuid.New()
	req := requirement.Requirement{
		RequiredExperienceYears:  3,
		RequiredEducationLevels:  []string{requirement.LevelBachelors},
		RequiredSkillIDs:         []uuid.UUID{s1, s2},
		RequiredCertificationIDs: []uuid.UUID{c1},
	}
	p := profile.CandidateProfile{
		Educations: []profile.Education{{Level: requirement.LevelBachelors, FieldOfStudy: "Law"}},
		Experiences: []profile.ExperienceInterval{
			{StartDate: time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2022, time.January, 1)},
		},
		Skills:         []profile.SkillLink{{SkillID: s1}},
		Certifications: []profile.Certification{{CertificationID: c1}},
	}

	b := ScoreAt(req, p, testNow)
	if err := b.Validate(); err != nil {
		t.Fatalf("breakdown out of bounds: %v", err)
	}
	want := b.EducationMatch + b.ExperienceMatch + b.SkillsMatch + b.CertificationsMatch
	if b.Total() != want {
		t.Fatalf("total %d != component sum %d", b.Total(), want)
	}
}

func TestScore_ExperienceProportional(t *testing.T) {
	// 2 years + 1.5 years = 42 months -> 3.5 -> rounds to 4; round(30*4/5)=24.
	req := requirement.Requirement{RequiredExperienceYears: 5}
	p := profile.CandidateProfile{
		Experiences: []profile.ExperienceInterval{
			{StartDate: time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2020, time.January, 1)},
			{StartDate: time.Date(2021, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2022, time.July, 1)},
		},
	}
	b := ScoreAt(req, p, testNow)
	if b.ExperienceMatch != 24 {
		t.Fatalf("expected experience_years_match=24, got %d", b.ExperienceMatch)
	}
}

func TestScore_ExperienceMeetingRequirementCapsAtFull(t *testing.T) {
	req := requirement.Requirement{RequiredExperienceYears: 2}
	p := profile.CandidateProfile{
		Experiences: []profile.ExperienceInterval{
			{StartDate: time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC), EndDate: datePtr(2025, time.January, 1)},
		},
	}
	if b := ScoreAt(req, p, testNow); b.ExperienceMatch != 30 {
		t.Fatalf("expected experience_years_match=30, got %d", b.ExperienceMatch)
	}
}

func TestScore_ZeroRequiredYearsAlwaysFull(t *testing.T) {
	req := requirement.Requirement{RequiredExperienceYears: 0}
	if b := ScoreAt(req, profile.CandidateProfile{}, testNow); b.ExperienceMatch != 30 {
		t.Fatalf("expected experience_years_match=30 for zero requirement, got %d", b.ExperienceMatch)
	}
}

func TestScore_SkillsOverlapRatio(t *testing.T) {
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	req := requirement.Requirement{RequiredSkillIDs: []uuid.UUID{s1, s2, s3}}
	p := profile.CandidateProfile{Skills: []profile.SkillLink{{SkillID: s1}, {SkillID: s3}}}
	if b := ScoreAt(req, p, testNow); b.SkillsMatch != 20 {
		t.Fatalf("expected skills_match=20 for 2/3 overlap, got %d", b.SkillsMatch)
	}
}

func TestScore_EmptySkillRequirementScoresZero(t *testing.T) {
	p := profile.CandidateProfile{Skills: []profile.SkillLink{{SkillID: uuid.New()}, {SkillID: uuid.New()}}}
	b := ScoreAt(requirement.Requirement{}, p, testNow)
	if b.SkillsMatch != 0 {
		t.Fatalf("expected skills_match=0 when requirement lists no skills, got %d", b.SkillsMatch)
	}
	if b.CertificationsMatch != 0 {
		t.Fatalf("expected certifications_match=0 when requirement lists none, got %d", b.CertificationsMatch)
	}
}

func TestScore_CertificationsScaledTo15(t *testing.T) {
	c1, c2 := uuid.New(), uuid.New()
	req := requirement.Requirement{RequiredCertificationIDs: []uuid.UUID{c1, c2}}
	p := profile.CandidateProfile{Certifications: []profile.Certification{{CertificationID: c2}}}
	if b := ScoreAt(req, p, testNow); b.CertificationsMatch != 8 {
		t.Fatalf("expected certifications_match=round(15*1/2)=8, got %d", b.CertificationsMatch)
	}
}

func TestScore_EducationFieldSubstringCaseInsensitive(t *testing.T) {
	req := requirement.Requirement{
		RequiredEducationLevels: []string{requirement.LevelBachelors},
		RequiredFieldsOfStudy:   []string{"Engineering"},
	}
	p := profile.CandidateProfile{
		Educations: []profile.Education{{Level: requirement.LevelBachelors, FieldOfStudy: "mechanical engineering"}},
	}
	if b := ScoreAt(req, p, testNow); b.EducationMatch != 25 {
		t.Fatalf("expected education_match=25, got %d", b.EducationMatch)
	}

	// Bidirectional: required field narrower than the degree's field.
	req.RequiredFieldsOfStudy = []string{"Mechanical Engineering and Robotics"}
	p.Educations[0].FieldOfStudy = "Mechanical Engineering and Robotics apprenticeship"
	if b := ScoreAt(req, p, testNow); b.EducationMatch != 25 {
		t.Fatalf("expected education_match=25 for containing field, got %d", b.EducationMatch)
	}
}

func TestScore_EducationLevelOnlyWhenNoFieldsRequired(t *testing.T) {
	req := requirement.Requirement{RequiredEducationLevels: []string{requirement.LevelMasters}}
	p := profile.CandidateProfile{
		Educations: []profile.Education{{Level: requirement.LevelMasters, FieldOfStudy: "Anything"}},
	}
	if b := ScoreAt(req, p, testNow); b.EducationMatch != 25 {
		t.Fatalf("expected education_match=25, got %d", b.EducationMatch)
	}
}

func TestScore_EmptyLevelSetNeverSatisfied(t *testing.T) {
	// Membership in an empty level set is false for every entry, so such a
	// requirement cannot award education points. Preserved behavior.
	p := profile.CandidateProfile{
		Educations: []profile.Education{
			{Level: requirement.LevelDoctorate, FieldOfStudy: "Physics"},
			{Level: requirement.LevelBachelors, FieldOfStudy: "Engineering"},
		},
	}
	if b := ScoreAt(requirement.Requirement{}, p, testNow); b.EducationMatch != 0 {
		t.Fatalf("expected education_match=0 for empty level set, got %d", b.EducationMatch)
	}
}

func TestScore_WrongLevelScoresZero(t *testing.T) {
	req := requirement.Requirement{
		RequiredEducationLevels: []string{requirement.LevelDoctorate},
		RequiredFieldsOfStudy:   []string{"Engineering"},
	}
	p := profile.CandidateProfile{
		Educations: []profile.Education{{Level: requirement.LevelBachelors, FieldOfStudy: "Engineering"}},
	}
	if b := ScoreAt(req, p, testNow); b.EducationMatch != 0 {
		t.Fatalf("expected education_match=0 for wrong level, got %d", b.EducationMatch)
	}
}

func TestScore_EmptyProfileScoresZeroWithNonZeroRequirements(t *testing.T) {
	req := requirement.Requirement{
		RequiredExperienceYears: 5,
		RequiredEducationLevels: []string{requirement.LevelBachelors},
		RequiredSkillIDs:        []uuid.UUID{uuid.New()},
	}
	b := ScoreAt(req, profile.CandidateProfile{}, testNow)
	if b.Total() != 0 {
		t.Fatalf("expected total=0 for empty profile, got %d (%+v)", b.Total(), b)
	}
}
