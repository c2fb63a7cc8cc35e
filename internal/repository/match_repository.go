package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"bid-match/internal/database"
	"bid-match/internal/domain/match"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrMatchNotFound = errors.New("match not found")

// MatchUpsert is one scored (requirement, candidate) pair headed for the
// bid_matches table.
type MatchUpsert struct {
	RequirementID uuid.UUID
	UserID        uuid.UUID
	Breakdown     match.Breakdown
}

type MatchRepository interface {
	UpsertBatch(ctx context.Context, batch []MatchUpsert) error
	FindByID(ctx context.Context, id uuid.UUID) (match.Match, error)
	ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]match.Match, error)
	UpdateValidation(ctx context.Context, id uuid.UUID, status string, validatedBy uuid.UUID, notes string) (match.Match, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBySolicitation(ctx context.Context, solicitationID uuid.UUID) (int64, error)
	ExistsForSolicitation(ctx context.Context, solicitationID uuid.UUID) (bool, error)
}

type PostgresMatchRepository struct {
	db database.DB
}

func NewPostgresMatchRepository(db database.DB) *PostgresMatchRepository {
	return &PostgresMatchRepository{db: db}
}

const matchColumns = `id, requirement_id, user_id, score,
	 education_match, experience_match, skills_match, certifications_match,
	 status, validated_by, validated_at, validation_notes, created_at`

// UpsertBatch writes one requirement's scored candidates in a single
// transaction, keyed on (requirement_id, user_id). A conflicting row keeps
// its id and validation columns and gets fresh scores, so reruns neither
// duplicate rows nor discard reviewer decisions.
func (r *PostgresMatchRepository) UpsertBatch(ctx context.Context, batch []MatchUpsert) error {
	if len(batch) == 0 {
		return nil
	}
	for _, m := range batch {
		if err := m.Breakdown.Validate(); err != nil {
			return err
		}
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	for _, m := range batch {
		_, err := tx.Exec(ctx,
			`INSERT INTO bid_matches
				(id, requirement_id, user_id, score,
				 education_match, experience_match, skills_match, certifications_match,
				 status, created_at)
			 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
			 ON CONFLICT (requirement_id, user_id) DO UPDATE SET
				score = EXCLUDED.score,
				education_match = EXCLUDED.education_match,
				experience_match = EXCLUDED.experience_match,
				skills_match = EXCLUDED.skills_match,
				certifications_match = EXCLUDED.certifications_match`,
			uuid.New(),
			m.RequirementID,
			m.UserID,
			m.Breakdown.Total(),
			m.Breakdown.EducationMatch,
			m.Breakdown.ExperienceMatch,
			m.Breakdown.SkillsMatch,
			m.Breakdown.CertificationsMatch,
			match.StatusPendingValidation,
			time.Now().UTC(),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit(ctx)
}

func (r *PostgresMatchRepository) FindByID(ctx context.Context, id uuid.UUID) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+matchColumns+` FROM bid_matches WHERE id = $1`,
		id,
	)
	return scanMatch(row)
}

// ListBySolicitation returns all matches under a solicitation's
// requirements, highest score first within each requirement.
func (r *PostgresMatchRepository) ListBySolicitation(ctx context.Context, solicitationID uuid.UUID) ([]match.Match, error) {
	rows, err := r.db.Query(ctx,
		`SELECT m.id, m.requirement_id, m.user_id, m.score,
			m.education_match, m.experience_match, m.skills_match, m.certifications_match,
			m.status, m.validated_by, m.validated_at, m.validation_notes, m.created_at
		 FROM bid_matches m
		 JOIN bid_requirements r ON r.id = m.requirement_id
		 WHERE r.solicitation_id = $1
		 ORDER BY m.requirement_id ASC, m.score DESC, m.user_id ASC`,
		solicitationID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]match.Match, 0)
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// UpdateValidation is a single atomic update: status, validator, server
// timestamp, and notes together. No status precondition; re-validating a
// terminal match overwrites the previous decision.
func (r *PostgresMatchRepository) UpdateValidation(ctx context.Context, id uuid.UUID, status string, validatedBy uuid.UUID, notes string) (match.Match, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE bid_matches
		 SET status = $2, validated_by = $3, validated_at = now(), validation_notes = $4
		 WHERE id = $1
		 RETURNING `+matchColumns,
		id, status, validatedBy, notes,
	)
	return scanMatch(row)
}

// Delete is unconditional: any status can be pruned directly.
func (r *PostgresMatchRepository) Delete(ctx context.Context, id uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM bid_matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrMatchNotFound
	}
	return nil
}

func (r *PostgresMatchRepository) DeleteBySolicitation(ctx context.Context, solicitationID uuid.UUID) (int64, error) {
	return r.db.Exec(ctx,
		`DELETE FROM bid_matches
		 WHERE requirement_id IN (
			SELECT id FROM bid_requirements WHERE solicitation_id = $1
		 )`,
		solicitationID,
	)
}

func (r *PostgresMatchRepository) ExistsForSolicitation(ctx context.Context, solicitationID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(
			SELECT 1
			FROM bid_matches m
			JOIN bid_requirements r ON r.id = m.requirement_id
			WHERE r.solicitation_id = $1
		 )`,
		solicitationID,
	)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func scanMatch(row database.Row) (match.Match, error) {
	var m match.Match
	err := row.Scan(
		&m.ID,
		&m.RequirementID,
		&m.UserID,
		&m.Score,
		&m.Breakdown.EducationMatch,
		&m.Breakdown.ExperienceMatch,
		&m.Breakdown.SkillsMatch,
		&m.Breakdown.CertificationsMatch,
		&m.Status,
		&m.ValidatedBy,
		&m.ValidatedAt,
		&m.ValidationNotes,
		&m.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return match.Match{}, ErrMatchNotFound
		}
		return match.Match{}, err
	}
	return m, nil
}
