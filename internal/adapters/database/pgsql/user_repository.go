package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/SscSPs/biz_books_app/internal/apperrors"
	"github.com/SscSPs/biz_books_app/internal/core/domain"
	portsrepo "github.com/SscSPs/biz_books_app/internal/core/ports/repositories"
)

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new repository for operator accounts.
func NewUserRepository(pool *pgxpool.Pool) portsrepo.UserRepositoryFacade {
	return &userRepository{pool: pool}
}

var _ portsrepo.UserRepositoryFacade = (*userRepository)(nil)

const userColumns = `user_id, username, name, password_hash, created_at, created_by, last_updated_at, last_updated_by`

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.UserID, &u.Username, &u.Name, &u.PasswordHash,
		&u.CreatedAt, &u.CreatedBy, &u.LastUpdatedAt, &u.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// SaveUser inserts a new user.
func (r *userRepository) SaveUser(ctx context.Context, user domain.User) error {
	query := `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		user.UserID, user.Username, user.Name, user.PasswordHash,
		user.CreatedAt, user.CreatedBy, user.LastUpdatedAt, user.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to save user %s: %w", user.UserID, err)
	}
	return nil
}

// FindUserByID retrieves a user by ID.
func (r *userRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	u, err := scanUser(r.pool.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", userID, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", userID, err)
	}
	return u, nil
}

// FindUserByUsername retrieves a user by username.
func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1;`
	u, err := scanUser(r.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("user %s: %w", username, apperrors.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find user %s: %w", username, err)
	}
	return u, nil
}
