package repository

import (
	"context"

	"github.com/gatehouse/authengine/domain"
)

// UserDirectory is the read-only view of the user collaborator. Lookups that
// find no row return domain.ErrUserNotFound / domain.ErrCredentialNotFound;
// infrastructure failures are wrapped as storage errors.
type UserDirectory interface {
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetPasswordHash(ctx context.Context, userID string) (string, error)
}
