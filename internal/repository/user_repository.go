package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/user-service/internal/domain"
)

const uniqueViolation = "23505"

// UserRepository defines persistence access for users.
// FindByEmail returns nil, nil when no user matches.
type UserRepository interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}

// DBTX is the subset of pgx used by the Postgres repository. *pgxpool.Pool satisfies it.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type userRepository struct {
	db DBTX
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(db DBTX) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT user_id, email, name, password, created_at
        FROM users WHERE email=$1`

	var user domain.User
	if err := r.db.QueryRow(ctx, query, email).Scan(
		&user.UserID,
		&user.Email,
		&user.Name,
		&user.Password,
		&user.CreatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &user, nil
}

func (r *userRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (email, name, password)
        VALUES ($1, $2, $3)
        RETURNING user_id, created_at`

	saved := *user
	if err := r.db.QueryRow(ctx, query,
		user.Email,
		user.Name,
		user.Password,
	).Scan(&saved.UserID, &saved.CreatedAt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, domain.ErrEmailTaken
		}
		return nil, fmt.Errorf("save user: %w", err)
	}
	return &saved, nil
}
