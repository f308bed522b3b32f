package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

type userDirectory struct {
	pool *pgxpool.Pool
}

// NewUserDirectory instantiates a Postgres-backed read-only user directory.
func NewUserDirectory(pool *pgxpool.Pool) repository.UserDirectory {
	return &userDirectory{pool: pool}
}

func (r *userDirectory) GetByID(ctx context.Context, id string) (*domain.User, error) {
	const query = `
		SELECT id, email, status, created_at, updated_at
		FROM users
		WHERE id = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, id), "users.get_by_id")
}

func (r *userDirectory) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, email, status, created_at, updated_at
		FROM users
		WHERE email = $1
	`
	return r.scanUser(r.pool.QueryRow(ctx, query, email), "users.get_by_email")
}

func (r *userDirectory) GetPasswordHash(ctx context.Context, userID string) (string, error) {
	const query = `
		SELECT password_hash
		FROM user_logins
		WHERE user_id = $1
	`
	var hash string
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrCredentialNotFound
		}
		return "", domain.StorageFailure("user_logins.get", err)
	}
	return hash, nil
}

func (r *userDirectory) scanUser(row pgx.Row, op string) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(&user.ID, &user.Email, &user.Status, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, domain.StorageFailure(op, err)
	}
	return &user, nil
}
