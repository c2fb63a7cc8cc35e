package repository

import (
	"context"
	"database/sql"
	"errors"

	"bid-match/internal/database"
	"bid-match/internal/domain/requirement"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrRequirementNotFound = errors.New("requirement not found")

type RequirementRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error)
	ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]requirement.Requirement, error)
}

type PostgresRequirementRepository struct {
	db database.DB
}

func NewPostgresRequirementRepository(db database.DB) *PostgresRequirementRepository {
	return &PostgresRequirementRepository{db: db}
}

const requirementColumns = `id, solicitation_id, role_title, required_experience_years,
	 COALESCE(required_education_levels, '{}'), COALESCE(required_fields_of_study, '{}'),
	 COALESCE(required_skill_ids, '{}'), COALESCE(required_certification_ids, '{}'),
	 quantity_needed, created_at`

func (r *PostgresRequirementRepository) FindByID(ctx context.Context, id uuid.UUID) (requirement.Requirement, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+requirementColumns+`
		 FROM bid_requirements
		 WHERE id = $1`,
		id,
	)

	req, err := scanRequirement(row)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return requirement.Requirement{}, ErrRequirementNotFound
		}
		return requirement.Requirement{}, err
	}
	return req, nil
}

func (r *PostgresRequirementRepository) ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]requirement.Requirement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+requirementColumns+`
		 FROM bid_requirements
		 WHERE solicitation_id = $1
		 ORDER BY created_at ASC, id ASC`,
		solicitationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]requirement.Requirement, 0)
	for rows.Next() {
		req, err := scanRequirement(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func scanRequirement(row database.Row) (requirement.Requirement, error) {
	var req requirement.Requirement
	err := row.Scan(
		&req.ID,
		&req.SolicitationID,
		&req.RoleTitle,
		&req.RequiredExperienceYears,
		&req.RequiredEducationLevels,
		&req.RequiredFieldsOfStudy,
		&req.RequiredSkillIDs,
		&req.RequiredCertificationIDs,
		&req.QuantityNeeded,
		&req.CreatedAt,
	)
	return req, err
}
