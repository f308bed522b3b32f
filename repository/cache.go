package repository

import (
	"context"
	"time"

	"github.com/gatehouse/authengine/domain"
)

// PermissionCache is an optional read-through cache sitting in front of the
// session row's permission chains. A miss is (empty, false, nil); cache
// failures are reported but callers degrade to the slower path instead of
// failing.
type PermissionCache interface {
	Get(ctx context.Context, userID string) (domain.PermissionSet, bool, error)
	Set(ctx context.Context, userID string, set domain.PermissionSet, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
