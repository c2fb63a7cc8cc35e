package repository

import (
	"context"
	"database/sql"
	"errors"

	"bid-match/internal/database"
	"bid-match/internal/domain/user"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	ListActiveIDs(ctx context.Context) ([]uuid.UUID, error)
	FindByID(ctx context.Context, id uuid.UUID) (user.User, error)
	FindByEmail(ctx context.Context, email string) (user.User, error)
}

type PostgresUserRepository struct {
	db database.DB
}

func NewPostgresUserRepository(db database.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// ListActiveIDs returns every user whose profile status is "active"; these
// are the candidates a requirement is scored against.
func (r *PostgresUserRepository) ListActiveIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id
		 FROM users
		 WHERE status = $1
		 ORDER BY created_at ASC`,
		user.StatusActive,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]uuid.UUID, 0)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresUserRepository) FindByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, `WHERE LOWER(email) = LOWER($1)`, email)
}

func (r *PostgresUserRepository) findOne(ctx context.Context, where string, arg any) (user.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT id, email, password_hash, full_name, role, status, created_at, updated_at
		 FROM users `+where,
		arg,
	)

	var u user.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.Status, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}
