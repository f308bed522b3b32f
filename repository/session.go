package repository

import (
	"context"
	"time"

	"github.com/gatehouse/authengine/domain"
)

// SessionStore is the durable record of (user, token) sessions. All
// operations are idempotent with respect to repeated identical calls.
// A missing session is reported as domain.ErrSessionNotFound, never as a
// storage failure; the store does not evaluate staleness because the
// timeout is caller policy.
type SessionStore interface {
	// Upsert refreshes the existing row for (userID, token) or creates a
	// new one with empty permission caches. Uniqueness is enforced by the
	// storage layer, so concurrent callers converge on a single row.
	Upsert(ctx context.Context, userID, token string) (*domain.Session, error)

	// FindActive returns the row for (userID, token) regardless of age.
	FindActive(ctx context.Context, userID, token string) (*domain.Session, error)

	// Touch advances LastAccessTime to now.
	Touch(ctx context.Context, sessionID string) error

	// Expire deletes the row. Calling it for a missing id is a no-op.
	Expire(ctx context.Context, sessionID string) error

	// WriteCachedPermissions overwrites the cached chains on the row.
	WriteCachedPermissions(ctx context.Context, sessionID string, userPerms, groupPerms, groups []string) error

	// ReadCachedPermissions returns the deduplicated union of the cached
	// chains from the most recently accessed row for the user that is
	// younger than maxAge. An empty set means cache miss.
	ReadCachedPermissions(ctx context.Context, userID string, maxAge time.Duration) (domain.PermissionSet, error)

	// DeleteExpired removes rows older than maxAge. Storage hygiene only;
	// liveness never depends on it.
	DeleteExpired(ctx context.Context, maxAge time.Duration) (int64, error)
}
