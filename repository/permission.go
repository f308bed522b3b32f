package repository

import "context"

// PermissionAssignments exposes the raw grant tables consumed by the
// resolver. Only rows whose effect is ALLOW are returned; DENY rows are
// ignored by resolution policy.
type PermissionAssignments interface {
	// UserPermissions returns permissions assigned directly to the user.
	UserPermissions(ctx context.Context, userID string) ([]string, error)

	// GroupPermissions returns permissions granted to every group the user
	// actively belongs to.
	GroupPermissions(ctx context.Context, userID string) ([]string, error)

	// ActiveGroups returns the names of the user's active group memberships.
	ActiveGroups(ctx context.Context, userID string) ([]string, error)
}
