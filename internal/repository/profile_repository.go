package repository

import (
	"context"

	"bid-match/internal/database"
	"bid-match/internal/domain/profile"

	"github.com/google/uuid"
)

// ProfileRepository aggregates the four scoring-input collections for one
// user. A user with no rows in a category gets an empty slice, never an
// error; absence of data is a valid, scoreable state.
type ProfileRepository interface {
	BuildProfile(ctx context.Context, userID uuid.UUID) (profile.CandidateProfile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) BuildProfile(ctx context.Context, userID uuid.UUID) (profile.CandidateProfile, error) {
	p := profile.CandidateProfile{UserID: userID}

	educations, err := r.findEducations(ctx, userID)
	if err != nil {
		return profile.CandidateProfile{}, err
	}
	p.Educations = educations

	experiences, err := r.findExperiences(ctx, userID)
	if err != nil {
		return profile.CandidateProfile{}, err
	}
	p.Experiences = experiences

	skills, err := r.findSkills(ctx, userID)
	if err != nil {
		return profile.CandidateProfile{}, err
	}
	p.Skills = skills

	certifications, err := r.findCertifications(ctx, userID)
	if err != nil {
		return profile.CandidateProfile{}, err
	}
	p.Certifications = certifications

	return p, nil
}

func (r *PostgresProfileRepository) findEducations(ctx context.Context, userID uuid.UUID) ([]profile.Education, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, level, COALESCE(field_of_study, '')
		 FROM user_educations
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Education, 0)
	for rows.Next() {
		var e profile.Education
		if err := rows.Scan(&e.ID, &e.UserID, &e.Level, &e.FieldOfStudy); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) findExperiences(ctx context.Context, userID uuid.UUID) ([]profile.ExperienceInterval, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, start_date, end_date
		 FROM user_experiences
		 WHERE user_id = $1
		 ORDER BY start_date ASC`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.ExperienceInterval, 0)
	for rows.Next() {
		var iv profile.ExperienceInterval
		if err := rows.Scan(&iv.ID, &iv.UserID, &iv.StartDate, &iv.EndDate); err != nil {
			return nil, err
		}
		out = append(out, iv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) findSkills(ctx context.Context, userID uuid.UUID) ([]profile.SkillLink, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, skill_id
		 FROM user_skills
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.SkillLink, 0)
	for rows.Next() {
		var s profile.SkillLink
		if err := rows.Scan(&s.ID, &s.UserID, &s.SkillID); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresProfileRepository) findCertifications(ctx context.Context, userID uuid.UUID) ([]profile.Certification, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, certification_id
		 FROM user_certifications
		 WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]profile.Certification, 0)
	for rows.Next() {
		var c profile.Certification
		if err := rows.Scan(&c.ID, &c.UserID, &c.CertificationID); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
