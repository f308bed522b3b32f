package permission

import (
	"context"

	"go.uber.org/zap"

	"github.com/gatehouse/authengine/domain"
	"github.com/gatehouse/authengine/repository"
)

// Resolver computes a user's effective permission set: the union of direct
// grants and grants inherited through active group memberships. Resolution
// is ALLOW-only; a permission present in any contributing source is granted.
type Resolver struct {
	assignments repository.PermissionAssignments
	logger      *zap.Logger
}

func NewResolver(assignments repository.PermissionAssignments, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{
		assignments: assignments,
		logger:      logger,
	}
}

// Resolve returns the deduplicated effective permission set. Output order
// is not significant.
func (r *Resolver) Resolve(ctx context.Context, userID string) (domain.PermissionSet, error) {
	direct, err := r.assignments.UserPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}
	inherited, err := r.assignments.GroupPermissions(ctx, userID)
	if err != nil {
		return nil, err
	}

	set := domain.NewPermissionSet(direct...).Union(domain.NewPermissionSet(inherited...))
	r.logger.Debug("permissions resolved",
		zap.String("user_id", userID),
		zap.Int("direct", len(direct)),
		zap.Int("inherited", len(inherited)),
		zap.Int("effective", len(set)),
	)
	return set, nil
}

// ResolveChains returns the direct and inherited chains separately, for the
// session row's permission cache.
func (r *Resolver) ResolveChains(ctx context.Context, userID string) (direct, inherited []string, err error) {
	direct, err = r.assignments.UserPermissions(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	inherited, err = r.assignments.GroupPermissions(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	return direct, inherited, nil
}

// ResolveGroupMemberships returns the names of the user's active groups.
func (r *Resolver) ResolveGroupMemberships(ctx context.Context, userID string) ([]string, error) {
	return r.assignments.ActiveGroups(ctx, userID)
}
